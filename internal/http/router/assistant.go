package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func AssistantRouter(rg *gin.RouterGroup, h *handler.AssistantHandler) {
	rg.POST("/ask", h.Ask)
	rg.GET("/conversations", h.ListConversations)
	rg.GET("/conversations/:id", h.GetConversation)
	rg.GET("/stats", h.Stats)
}
