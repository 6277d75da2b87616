package models

import "time"

// ChatMessage is a direct message between two users, addressed by email.
// Messages are append-only: nothing in the API updates or deletes them.
type ChatMessage struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	SenderEmail   string    `json:"senderEmail" gorm:"index;type:text;not null"`
	ReceiverEmail string    `json:"receiverEmail" gorm:"index;type:text;not null"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"timestamp"`
}

// ConversationSummary is the per-counterpart view returned by the
// conversation list endpoint. Derived on every request, never stored.
type ConversationSummary struct {
	Email       string    `json:"email"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
}
