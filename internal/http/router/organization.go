package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/workspaces", h.CreateWorkspace)
	rg.GET("/:id/workspaces", h.ListWorkspaces)
}
