package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler, issues *handler.IssueHandler, sprints *handler.SprintHandler, ai *handler.AssistantHandler, insights *handler.InsightHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/archive", h.Archive)

	rg.POST("/:id/members", h.AddMember)
	rg.GET("/:id/members", h.ListMembers)
	rg.DELETE("/:id/members/:userID", h.RemoveMember)

	rg.GET("/:id/issue-types", h.ListIssueTypes)
	rg.GET("/:id/statuses", h.ListStatuses)
	rg.GET("/:id/board", h.Board)

	rg.POST("/:id/issues", issues.Create)
	rg.GET("/:id/issues", issues.List)
	rg.GET("/:id/issues/:keyNumber", issues.GetByKey)

	rg.POST("/:id/sprints", sprints.Create)
	rg.GET("/:id/sprints", sprints.ListByProject)
	rg.GET("/:id/velocity", sprints.Velocity)

	rg.GET("/:id/summary", ai.SummarizeProject)

	rg.GET("/:id/anomalies", insights.ListAnomalies)
	rg.POST("/:id/anomalies/scan", insights.ScanProject)
}
