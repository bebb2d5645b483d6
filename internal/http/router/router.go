package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/http/handler"
	"ficct.app/scrum/internal/insight"
	"ficct.app/scrum/internal/service"
)

// AIDeps carries the AI-facing collaborators. Assistant and Summarizer
// are nil when no LLM backend is configured; their routes answer 503.
type AIDeps struct {
	Assistant   assistant.AssistantService
	Summarizer  assistant.Summarizer
	Proxy       *llm.Proxy
	Detector    insight.Detector
	Predictor   insight.Predictor
	Recommender insight.Recommender
}

func SetupRoutes(router *gin.Engine, services *service.Services, ai AIDeps) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	userHandler := handler.NewUserHandler(services.Users())
	orgHandler := handler.NewOrganizationHandler(services.Organizations(), services.Workspaces())
	wsHandler := handler.NewWorkspaceHandler(services.Workspaces(), services.Projects())
	projectHandler := handler.NewProjectHandler(services.Projects(), services.Board())
	issueHandler := handler.NewIssueHandler(services.Issues(), services.Projects())
	sprintHandler := handler.NewSprintHandler(services.Sprints(), services.Projects())
	assistantHandler := handler.NewAssistantHandler(ai.Assistant, ai.Summarizer, ai.Proxy)
	insightHandler := handler.NewInsightHandler(ai.Detector, ai.Predictor, ai.Recommender)
	notificationHandler := handler.NewNotificationHandler(services.Notifications())

	v1 := router.Group("/api/v1")
	{
		UserRouter(v1.Group("/users"), userHandler)
		OrganizationRouter(v1.Group("/organizations"), orgHandler)
		WorkspaceRouter(v1.Group("/workspaces"), wsHandler)
		ProjectRouter(v1.Group("/projects"), projectHandler, issueHandler, sprintHandler, assistantHandler, insightHandler)
		IssueRouter(v1.Group("/issues"), issueHandler, assistantHandler, insightHandler)
		SprintRouter(v1.Group("/sprints"), sprintHandler, assistantHandler, insightHandler)
		AssistantRouter(v1.Group("/assistant"), assistantHandler)
		InsightRouter(v1.Group("/anomalies"), insightHandler)
		NotificationRouter(v1.Group("/notifications"), notificationHandler)
	}
}
