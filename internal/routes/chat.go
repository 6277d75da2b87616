package routes

import (
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/handlers"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes mounts the chat history endpoints. Paths mirror the
// mobile client's expectations exactly.
func RegisterChatRoutes(r gin.IRouter, h *handlers.ChatHandler) {
	chat := r.Group("/chat")
	{
		chat.POST("/send", middleware.ChatRateLimit(), h.SendMessage)
		chat.GET("/all/:email", h.GetConversations)
		chat.GET("/:user1/:user2", h.GetHistory)
	}
}
