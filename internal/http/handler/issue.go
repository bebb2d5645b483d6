package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

type IssueHandler struct {
	issueService   service.IssueService
	projectService service.ProjectService
}

func NewIssueHandler(issueService service.IssueService, projectService service.ProjectService) *IssueHandler {
	return &IssueHandler{issueService: issueService, projectService: projectService}
}

// projectKey resolves the key used to render issue identifiers like
// PAY-42. Lookup failures degrade to key-less responses rather than
// failing the request.
func (h *IssueHandler) projectKey(c *gin.Context, projectID int64) string {
	project, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		return ""
	}
	return project.Key
}

// loadForWrite loads the issue and verifies the acting user holds at
// least the member role on its project. A nil return means the response
// has been written.
func (h *IssueHandler) loadForWrite(c *gin.Context, issueID int64) *model.Issue {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return nil
	}

	issue, err := h.issueService.Get(ctx, issueID)
	if err != nil {
		respondError(c, ctx, err, "failed to load issue")
		return nil
	}

	if err := h.projectService.RequireRole(ctx, issue.ProjectID, userID, model.MemberRoleMember); err != nil {
		respondError(c, ctx, err, "failed to authorize issue change")
		return nil
	}
	return issue
}

func (h *IssueHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if err := h.projectService.RequireRole(ctx, projectID, userID, model.MemberRoleMember); err != nil {
		respondError(c, ctx, err, "failed to create issue")
		return
	}

	issue, err := h.issueService.Create(ctx, service.CreateIssueInput{
		ProjectID:      projectID,
		IssueTypeID:    req.IssueTypeID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       model.Priority(req.Priority),
		SprintID:       req.SprintID,
		ParentID:       req.ParentID,
		AssigneeID:     req.AssigneeID,
		ReporterID:     userID,
		StoryPoints:    req.StoryPoints,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		respondError(c, ctx, err, "failed to create issue")
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueResponse(issue, h.projectKey(c, projectID)))
}

func (h *IssueHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	filter := store.IssueFilter{}
	var err error
	if filter.SprintID, err = queryInt64(c, "sprint_id"); err != nil {
		badRequest(c, ctx, err)
		return
	}
	if filter.StatusID, err = queryInt64(c, "status_id"); err != nil {
		badRequest(c, ctx, err)
		return
	}
	if filter.AssigneeID, err = queryInt64(c, "assignee_id"); err != nil {
		badRequest(c, ctx, err)
		return
	}
	if p := c.Query("priority"); p != "" {
		priority := model.Priority(p)
		filter.Priority = &priority
	}
	if q := c.Query("search"); q != "" {
		filter.Search = &q
	}

	issues, err := h.issueService.List(ctx, projectID, filter)
	if err != nil {
		respondError(c, ctx, err, "failed to list issues")
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": dto.ToIssueResponses(issues, h.projectKey(c, projectID))})
}

func (h *IssueHandler) GetByKey(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	keyNumber, err := strconv.ParseInt(c.Param("keyNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key number"})
		return
	}

	issue, err := h.issueService.GetByKey(ctx, projectID, keyNumber)
	if err != nil {
		respondError(c, ctx, err, "failed to load issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue, h.projectKey(c, projectID)))
}

func (h *IssueHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue, h.projectKey(c, issue.ProjectID)))
}

func (h *IssueHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if issue := h.loadForWrite(c, id); issue == nil {
		return
	}

	input := service.UpdateIssueInput{
		Title:          req.Title,
		Description:    req.Description,
		IssueTypeID:    req.IssueTypeID,
		AssigneeID:     req.AssigneeID,
		ClearAssignee:  req.ClearAssignee,
		StoryPoints:    req.StoryPoints,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		IsBlocked:      req.IsBlocked,
		Rank:           req.Rank,
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		input.Priority = &priority
	}

	issue, err := h.issueService.Update(ctx, id, input)
	if err != nil {
		respondError(c, ctx, err, "failed to update issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue, h.projectKey(c, issue.ProjectID)))
}

func (h *IssueHandler) Transition(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if issue := h.loadForWrite(c, id); issue == nil {
		return
	}

	issue, err := h.issueService.Transition(ctx, id, req.ToStatusID)
	if err != nil {
		respondError(c, ctx, err, "failed to transition issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue, h.projectKey(c, issue.ProjectID)))
}

func (h *IssueHandler) AvailableTransitions(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	statuses, err := h.issueService.AvailableTransitions(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list transitions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transitions": dto.ToStatusResponses(statuses)})
}

func (h *IssueHandler) Move(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MoveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if issue := h.loadForWrite(c, id); issue == nil {
		return
	}

	issue, err := h.issueService.MoveToSprint(ctx, id, req.SprintID)
	if err != nil {
		respondError(c, ctx, err, "failed to move issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(issue, h.projectKey(c, issue.ProjectID)))
}

func (h *IssueHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if issue := h.loadForWrite(c, id); issue == nil {
		return
	}

	if err := h.issueService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err, "failed to delete issue")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *IssueHandler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	comment, err := h.issueService.AddComment(ctx, id, userID, req.Body)
	if err != nil {
		respondError(c, ctx, err, "failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *IssueHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.issueService.ListComments(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentResponses(comments)})
}

func (h *IssueHandler) AddLink(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	link, err := h.issueService.AddLink(ctx, id, req.TargetIssueID, model.LinkType(req.LinkType), userID)
	if err != nil {
		respondError(c, ctx, err, "failed to add link")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLinkResponse(link))
}

func (h *IssueHandler) ListLinks(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	links, err := h.issueService.ListLinks(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to list links")
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": dto.ToLinkResponses(links)})
}
