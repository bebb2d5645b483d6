package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func SprintRouter(rg *gin.RouterGroup, h *handler.SprintHandler, ai *handler.AssistantHandler, insights *handler.InsightHandler) {
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)

	rg.POST("/:id/start", h.Start)
	rg.POST("/:id/complete", h.Complete)
	rg.POST("/:id/cancel", h.Cancel)

	rg.GET("/:id/progress", h.Progress)
	rg.GET("/:id/burndown", h.Burndown)
	rg.GET("/:id/risks", insights.AnalyzeSprint)
	rg.GET("/:id/summary", ai.SummarizeSprint)
}
