package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
	boardService   service.BoardService
}

func NewProjectHandler(projectService service.ProjectService, boardService service.BoardService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, boardService: boardService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	project, err := h.projectService.Create(ctx, req.WorkspaceID, req.Name, req.Key, req.Description, req.LeadID, userID)
	if err != nil {
		respondError(c, ctx, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if err := h.projectService.RequireRole(ctx, id, userID, model.MemberRoleAdmin); err != nil {
		respondError(c, ctx, err, "failed to update project")
		return
	}

	project, err := h.projectService.Update(ctx, id, req.Name, req.Description, req.LeadID)
	if err != nil {
		respondError(c, ctx, err, "failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.projectService.RequireRole(ctx, id, userID, model.MemberRoleAdmin); err != nil {
		respondError(c, ctx, err, "failed to archive project")
		return
	}

	project, err := h.projectService.Archive(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to archive project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.projectService.RequireRole(ctx, id, userID, model.MemberRoleAdmin); err != nil {
		respondError(c, ctx, err, "failed to delete project")
		return
	}

	if err := h.projectService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err, "failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if err := h.projectService.RequireRole(ctx, id, userID, model.MemberRoleAdmin); err != nil {
		respondError(c, ctx, err, "failed to add member")
		return
	}

	member, err := h.projectService.AddMember(ctx, id, req.UserID, model.MemberRole(req.Role))
	if err != nil {
		respondError(c, ctx, err, "failed to add member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.ToMemberResponses(members)})
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.projectService.RequireRole(ctx, id, userID, model.MemberRoleAdmin); err != nil {
		respondError(c, ctx, err, "failed to remove member")
		return
	}

	if err := h.projectService.RemoveMember(ctx, id, memberUserID); err != nil {
		respondError(c, ctx, err, "failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListIssueTypes(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	types, err := h.projectService.ListIssueTypes(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list issue types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"issue_types": dto.ToIssueTypeResponses(types)})
}

func (h *ProjectHandler) ListStatuses(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	statuses, err := h.projectService.ListStatuses(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list statuses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": dto.ToStatusResponses(statuses)})
}

func (h *ProjectHandler) Board(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sprintID, err := queryInt64(c, "sprint_id")
	if err != nil {
		badRequest(c, ctx, err)
		return
	}

	project, err := h.projectService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load project")
		return
	}

	columns, err := h.boardService.Board(ctx, id, sprintID)
	if err != nil {
		respondError(c, ctx, err, "failed to build board")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(columns, project.Key))
}
