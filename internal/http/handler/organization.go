package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
	wsService  service.WorkspaceService
}

func NewOrganizationHandler(orgService service.OrganizationService, wsService service.WorkspaceService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService, wsService: wsService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	org, err := h.orgService.Create(ctx, req.Name, req.Slug)
	if err != nil {
		respondError(c, ctx, err, "failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	orgs, err := h.orgService.List(ctx)
	if err != nil {
		respondError(c, ctx, err, "failed to list organizations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": dto.ToOrganizationResponses(orgs)})
}

func (h *OrganizationHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	org, err := h.orgService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	org, err := h.orgService.Update(ctx, id, req.Name)
	if err != nil {
		respondError(c, ctx, err, "failed to update organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err, "failed to delete organization")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrganizationHandler) CreateWorkspace(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	ws, err := h.wsService.Create(ctx, orgID, req.Name, req.Slug, req.Description)
	if err != nil {
		respondError(c, ctx, err, "failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *OrganizationHandler) ListWorkspaces(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	workspaces, err := h.wsService.ListByOrganization(ctx, orgID)
	if err != nil {
		respondError(c, ctx, err, "failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": dto.ToWorkspaceResponses(workspaces)})
}
