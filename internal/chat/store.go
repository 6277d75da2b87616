package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/metrics"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/models"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/utils"
	"gorm.io/gorm"
)

// ErrMissingFields is returned by Append when sender, receiver or message
// is empty. Handlers map it to the fixed 400 response.
var ErrMissingFields = errors.New("all fields are required")

// Store is the persistent record of chat messages. It is the only
// durability path; the socket relay never writes here.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Append validates and persists a new message, returning the stored record
// with its assigned id and timestamp.
func (s *Store) Append(senderEmail, receiverEmail, message string) (*models.ChatMessage, error) {
	if senderEmail == "" || receiverEmail == "" || message == "" {
		return nil, ErrMissingFields
	}

	msg := models.ChatMessage{
		ID:            utils.GenerateUUID(),
		SenderEmail:   senderEmail,
		ReceiverEmail: receiverEmail,
		Message:       message,
		CreatedAt:     time.Now(),
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	metrics.MessagesStored.Inc()
	return &msg, nil
}

// Conversation returns every message between the two users, in either
// direction, oldest first. An empty conversation is an empty slice, not an
// error. Symmetric in its arguments.
func (s *Store) Conversation(user1, user2 string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.db.Where(
		"(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)",
		user1, user2, user2, user1,
	).Order("created_at asc").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return messages, nil
}

// ConversationsFor returns one summary per counterpart the user has
// exchanged messages with. The matching messages are read newest first and
// the first occurrence per counterpart kept, so each summary carries the
// pair's latest message.
func (s *Store) ConversationsFor(email string) ([]models.ConversationSummary, error) {
	var messages []models.ChatMessage
	err := s.db.Where(
		"sender_email = ? OR receiver_email = ?",
		email, email,
	).Order("created_at desc").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}

	summaries := []models.ConversationSummary{}
	seen := make(map[string]bool)
	for _, msg := range messages {
		other := msg.SenderEmail
		if msg.SenderEmail == email {
			other = msg.ReceiverEmail
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		summaries = append(summaries, models.ConversationSummary{
			Email:       other,
			LastMessage: msg.Message,
			Timestamp:   msg.CreatedAt,
		})
	}
	return summaries, nil
}
