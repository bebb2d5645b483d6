package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func IssueRouter(rg *gin.RouterGroup, h *handler.IssueHandler, ai *handler.AssistantHandler, insights *handler.InsightHandler) {
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/:id/transition", h.Transition)
	rg.GET("/:id/transitions", h.AvailableTransitions)
	rg.POST("/:id/move", h.Move)

	rg.POST("/:id/comments", h.AddComment)
	rg.GET("/:id/comments", h.ListComments)
	rg.POST("/:id/links", h.AddLink)
	rg.GET("/:id/links", h.ListLinks)

	rg.GET("/:id/summary", ai.SummarizeIssue)
	rg.GET("/:id/predict", insights.PredictEffort)
	rg.GET("/:id/recommend-assignees", insights.RecommendAssignees)
}
