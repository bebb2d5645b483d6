package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
)

type SprintHandler struct {
	sprintService  service.SprintService
	projectService service.ProjectService
}

func NewSprintHandler(sprintService service.SprintService, projectService service.ProjectService) *SprintHandler {
	return &SprintHandler{sprintService: sprintService, projectService: projectService}
}

// requireMember verifies the acting user may mutate the sprint's
// project. A false return means the response has been written.
func (h *SprintHandler) requireMember(c *gin.Context, projectID int64) bool {
	userID, ok := actingUser(c)
	if !ok {
		return false
	}
	if err := h.projectService.RequireRole(c.Request.Context(), projectID, userID, model.MemberRoleMember); err != nil {
		respondError(c, c.Request.Context(), err, "failed to authorize sprint change")
		return false
	}
	return true
}

func (h *SprintHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if err := h.projectService.RequireRole(ctx, projectID, userID, model.MemberRoleMember); err != nil {
		respondError(c, ctx, err, "failed to create sprint")
		return
	}

	sprint, err := h.sprintService.Create(ctx, projectID, req.Name, req.Goal, req.StartDate, req.EndDate, userID)
	if err != nil {
		respondError(c, ctx, err, "failed to create sprint")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) ListByProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	sprints, err := h.sprintService.ListByProject(ctx, projectID)
	if err != nil {
		respondError(c, ctx, err, "failed to list sprints")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sprints": dto.ToSprintResponses(sprints)})
}

func (h *SprintHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sprint, err := h.sprintService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	sprint, err := h.sprintService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint")
		return
	}
	if !h.requireMember(c, sprint.ProjectID) {
		return
	}

	sprint, err = h.sprintService.Update(ctx, id, req.Name, req.Goal, req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, ctx, err, "failed to update sprint")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) Start(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sprint, err := h.sprintService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint")
		return
	}
	if !h.requireMember(c, sprint.ProjectID) {
		return
	}

	sprint, err = h.sprintService.Start(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to start sprint")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	sprint, err := h.sprintService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint")
		return
	}
	if !h.requireMember(c, sprint.ProjectID) {
		return
	}

	sprint, err = h.sprintService.Complete(ctx, id, req.MoveToSprintID)
	if err != nil {
		respondError(c, ctx, err, "failed to complete sprint")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sprint, err := h.sprintService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint")
		return
	}
	if !h.requireMember(c, sprint.ProjectID) {
		return
	}

	sprint, err = h.sprintService.Cancel(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to cancel sprint")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintResponse(sprint))
}

func (h *SprintHandler) Progress(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	progress, err := h.sprintService.Progress(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load sprint progress")
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintProgressResponse(progress))
}

func (h *SprintHandler) Burndown(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	points, err := h.sprintService.Burndown(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to build burndown")
		return
	}

	out := make([]dto.BurndownPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.BurndownPointResponse{
			Date:            p.Date,
			RemainingPoints: p.RemainingPoints,
			IdealPoints:     p.IdealPoints,
		})
	}
	c.JSON(http.StatusOK, dto.BurndownResponse{Points: out})
}

func (h *SprintHandler) Velocity(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.sprintService.Velocity(ctx, projectID, 5)
	if err != nil {
		respondError(c, ctx, err, "failed to compute velocity")
		return
	}

	out := make([]dto.VelocityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.VelocityEntryResponse{
			SprintID:        e.SprintID,
			Name:            e.Name,
			CommittedPoints: e.CommittedPoints,
			CompletedPoints: e.CompletedPoints,
			CompletedAt:     e.CompletedAt,
		})
	}
	c.JSON(http.StatusOK, dto.VelocityResponse{Entries: out})
}
