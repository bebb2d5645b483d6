package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/service"
)

type WorkspaceHandler struct {
	wsService      service.WorkspaceService
	projectService service.ProjectService
}

func NewWorkspaceHandler(wsService service.WorkspaceService, projectService service.ProjectService) *WorkspaceHandler {
	return &WorkspaceHandler{wsService: wsService, projectService: projectService}
}

func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ws, err := h.wsService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	ws, err := h.wsService.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		respondError(c, ctx, err, "failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.wsService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err, "failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	projects, err := h.projectService.ListByWorkspace(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectResponses(projects)})
}
