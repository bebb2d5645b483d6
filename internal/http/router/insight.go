package router

import (
	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/handler"
)

func InsightRouter(rg *gin.RouterGroup, h *handler.InsightHandler) {
	rg.POST("/:id/resolve", h.ResolveAnomaly)
}
