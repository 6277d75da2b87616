package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// openTestDB gives each test its own in-memory SQLite database
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatMessage{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedMessage(t *testing.T, db *gorm.DB, sender, receiver, body string, at time.Time) {
	t.Helper()
	err := db.Create(&models.ChatMessage{
		ID:            fmt.Sprintf("%s-%d", t.Name(), at.UnixNano()),
		SenderEmail:   sender,
		ReceiverEmail: receiver,
		Message:       body,
		CreatedAt:     at,
	}).Error
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
}

func TestAppendThenRead(t *testing.T) {
	store := NewStore(openTestDB(t))

	msg, err := store.Append("a@x.com", "b@x.com", "hi")
	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	conv, err := store.Conversation("a@x.com", "b@x.com")
	assert.NoError(t, err)
	assert.Len(t, conv, 1)
	assert.Equal(t, "hi", conv[0].Message)
	assert.Equal(t, "a@x.com", conv[0].SenderEmail)
}

func TestAppendPlacesNewMessageLast(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	now := time.Now()
	seedMessage(t, db, "a@x.com", "b@x.com", "first", now.Add(-2*time.Hour))
	seedMessage(t, db, "b@x.com", "a@x.com", "second", now.Add(-1*time.Hour))

	_, err := store.Append("a@x.com", "b@x.com", "third")
	assert.NoError(t, err)

	conv, err := store.Conversation("a@x.com", "b@x.com")
	assert.NoError(t, err)
	assert.Len(t, conv, 3)
	assert.Equal(t, "first", conv[0].Message)
	assert.Equal(t, "second", conv[1].Message)
	assert.Equal(t, "third", conv[2].Message)
}

func TestAppendRejectsMissingFields(t *testing.T) {
	store := NewStore(openTestDB(t))

	cases := []struct {
		name     string
		sender   string
		receiver string
		body     string
	}{
		{"missing sender", "", "b@x.com", "hi"},
		{"missing receiver", "a@x.com", "", "hi"},
		{"missing body", "a@x.com", "b@x.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Append(tc.sender, tc.receiver, tc.body)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}

	// Nothing may have been persisted
	conv, err := store.Conversation("a@x.com", "b@x.com")
	assert.NoError(t, err)
	assert.Empty(t, conv)
}

func TestConversationIsSymmetric(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	now := time.Now()
	seedMessage(t, db, "a@x.com", "b@x.com", "one", now.Add(-3*time.Minute))
	seedMessage(t, db, "b@x.com", "a@x.com", "two", now.Add(-2*time.Minute))
	seedMessage(t, db, "a@x.com", "b@x.com", "three", now.Add(-1*time.Minute))

	ab, err := store.Conversation("a@x.com", "b@x.com")
	assert.NoError(t, err)
	ba, err := store.Conversation("b@x.com", "a@x.com")
	assert.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Len(t, ab, 3)
}

func TestConversationEmptyIsNotAnError(t *testing.T) {
	store := NewStore(openTestDB(t))

	conv, err := store.Conversation("a@x.com", "b@x.com")
	assert.NoError(t, err)
	assert.NotNil(t, conv)
	assert.Empty(t, conv)
}

func TestConversationsForGroupsByCounterpart(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	now := time.Now()
	// Two counterparts, multiple messages each, interleaved directions
	seedMessage(t, db, "me@x.com", "u1@x.com", "old to u1", now.Add(-2*time.Hour))
	seedMessage(t, db, "u1@x.com", "me@x.com", "latest from u1", now.Add(-30*time.Minute))
	seedMessage(t, db, "u2@x.com", "me@x.com", "old from u2", now.Add(-1*time.Hour))
	seedMessage(t, db, "me@x.com", "u2@x.com", "latest to u2", now.Add(-1*time.Minute))
	// Unrelated pair must not show up
	seedMessage(t, db, "u1@x.com", "u2@x.com", "not mine", now)

	summaries, err := store.ConversationsFor("me@x.com")
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	// Newest-first scan order: u2's pair has the most recent message
	assert.Equal(t, "u2@x.com", summaries[0].Email)
	assert.Equal(t, "latest to u2", summaries[0].LastMessage)
	assert.Equal(t, "u1@x.com", summaries[1].Email)
	assert.Equal(t, "latest from u1", summaries[1].LastMessage)
}

func TestConversationsForNoMessages(t *testing.T) {
	store := NewStore(openTestDB(t))

	summaries, err := store.ConversationsFor("me@x.com")
	assert.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSelfMessagingIsAllowed(t *testing.T) {
	store := NewStore(openTestDB(t))

	_, err := store.Append("a@x.com", "a@x.com", "note to self")
	assert.NoError(t, err)

	conv, err := store.Conversation("a@x.com", "a@x.com")
	assert.NoError(t, err)
	assert.Len(t, conv, 1)

	summaries, err := store.ConversationsFor("a@x.com")
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "a@x.com", summaries[0].Email)
}
