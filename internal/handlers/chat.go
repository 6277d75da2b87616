package handlers

import (
	"errors"
	"net/http"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/chat"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ChatHandler serves the chat history REST endpoints
type ChatHandler struct {
	store *chat.Store
}

func NewChatHandler(store *chat.Store) *ChatHandler {
	return &ChatHandler{store: store}
}

// SendMessage persists a chat message.
// POST /api/chat/send  body: {senderEmail, receiverEmail, message}
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		SenderEmail   string `json:"senderEmail"`
		ReceiverEmail string `json:"receiverEmail"`
		Message       string `json:"message"`
	}

	// A malformed body reads as all-empty and fails field validation below
	_ = c.ShouldBindJSON(&req)

	msg, err := h.store.Append(req.SenderEmail, req.ReceiverEmail, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required."})
			return
		}
		logger.Error().Err(err).Msg("Failed to store chat message")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversations lists one summary per counterpart, carrying the pair's
// most recent message.
// GET /api/chat/all/:email
func (h *ChatHandler) GetConversations(c *gin.Context) {
	email := c.Param("email")

	summaries, err := h.store.ConversationsFor(email)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Failed to list conversations")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetHistory returns the full transcript between two users, oldest first.
// GET /api/chat/:user1/:user2
func (h *ChatHandler) GetHistory(c *gin.Context) {
	user1 := c.Param("user1")
	user2 := c.Param("user2")

	messages, err := h.store.Conversation(user1, user2)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
