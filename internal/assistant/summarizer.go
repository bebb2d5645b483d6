package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

const (
	EntityTypeIssue   = "issue"
	EntityTypeSprint  = "sprint"
	EntityTypeProject = "project"
)

type Summarizer interface {
	SummarizeIssue(ctx context.Context, issueID int64, length model.SummaryLength) (*model.Summary, error)
	SummarizeSprint(ctx context.Context, sprintID int64, length model.SummaryLength) (*model.Summary, error)
	SummarizeProject(ctx context.Context, projectID int64, length model.SummaryLength) (*model.Summary, error)
	Invalidate(ctx context.Context, entityType string, entityID int64) error
}

type summarizer struct {
	issueStore   store.IssueStore
	sprintStore  store.SprintStore
	projectStore store.ProjectStore
	summaryStore store.SummaryStore
	generator    Generator
}

func NewSummarizer(stores *store.Stores, generator Generator) Summarizer {
	return &summarizer{
		issueStore:   stores.Issues(),
		sprintStore:  stores.Sprints(),
		projectStore: stores.Projects(),
		summaryStore: stores.Summaries(),
		generator:    generator,
	}
}

func (s *summarizer) SummarizeIssue(ctx context.Context, issueID int64, length model.SummaryLength) (*model.Summary, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IssueID:   logger.Ptr(issueID),
		Component: "scrum.assistant.summarizer",
	})

	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading issue: %w", err)
	}
	comments, err := s.issueStore.ListComments(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Issue: %s\nPriority: %s\n", issue.Title, issue.Priority)
	if issue.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", issue.Description)
	}
	if len(comments) > 0 {
		b.WriteString("Discussion:\n")
		for _, c := range comments {
			fmt.Fprintf(&b, "- %s\n", c.Body)
		}
	}

	return s.summarize(ctx, EntityTypeIssue, issueID, length, b.String())
}

func (s *summarizer) SummarizeSprint(ctx context.Context, sprintID int64, length model.SummaryLength) (*model.Summary, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SprintID:  logger.Ptr(sprintID),
		Component: "scrum.assistant.summarizer",
	})

	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("loading sprint: %w", err)
	}
	issues, err := s.issueStore.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("loading sprint issues: %w", err)
	}
	progress, err := s.issueStore.SprintProgress(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("loading sprint progress: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sprint: %s (%s)\n", sprint.Name, sprint.Status)
	if sprint.Goal != "" {
		fmt.Fprintf(&b, "Goal: %s\n", sprint.Goal)
	}
	fmt.Fprintf(&b, "Issues: %d total, %d done, %d blocked. Points: %d of %d done.\n",
		progress.TotalIssues, progress.CompletedIssues, progress.BlockedIssues,
		progress.CompletedPoints, progress.TotalPoints)
	for _, issue := range issues {
		state := "open"
		if issue.ResolvedAt != nil {
			state = "resolved"
		}
		fmt.Fprintf(&b, "- %s [%s, %s]\n", issue.Title, issue.Priority, state)
	}

	return s.summarize(ctx, EntityTypeSprint, sprintID, length, b.String())
}

func (s *summarizer) SummarizeProject(ctx context.Context, projectID int64, length model.SummaryLength) (*model.Summary, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ProjectID: logger.Ptr(projectID),
		Component: "scrum.assistant.summarizer",
	})

	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	issues, err := s.issueStore.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project issues: %w", err)
	}
	sprints, err := s.sprintStore.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project sprints: %w", err)
	}

	var open, resolved, blocked int
	for _, issue := range issues {
		switch {
		case issue.ResolvedAt != nil:
			resolved++
		case issue.IsBlocked:
			blocked++
			open++
		default:
			open++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s (%s)\n", project.Name, project.Key)
	if project.Description != nil && *project.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", *project.Description)
	}
	fmt.Fprintf(&b, "Issues: %d open (%d blocked), %d resolved. Sprints: %d.\n",
		open, blocked, resolved, len(sprints))
	for _, sp := range sprints {
		fmt.Fprintf(&b, "- Sprint %s: %s, %d/%d points\n", sp.Name, sp.Status, sp.CompletedPoints, sp.CommittedPoints)
	}

	return s.summarize(ctx, EntityTypeProject, projectID, length, b.String())
}

// summarize serves from the cache when the source content is unchanged,
// otherwise generates through the provider chain and refreshes the cache.
func (s *summarizer) summarize(ctx context.Context, entityType string, entityID int64, length model.SummaryLength, content string) (*model.Summary, error) {
	if s.generator == nil {
		return nil, ErrUnavailable
	}
	if length == "" {
		length = model.SummaryLengthStandard
	}
	if _, ok := summaryWordBudget[length]; !ok {
		return nil, fmt.Errorf("invalid summary length %q", length)
	}

	hash := contentHash(content)

	cached, storedHash, err := s.summaryStore.Get(ctx, entityType, entityID, length)
	if err == nil && storedHash == hash {
		cached.Cached = true
		slog.DebugContext(ctx, "summary served from cache", "entity_type", entityType, "length", length)
		return cached, nil
	}
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("checking summary cache: %w", err)
	}

	resp, err := s.generator.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: summarySystemPrompt(length)},
			{Role: llm.RoleUser, Content: content},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w", err)
	}

	if err := s.summaryStore.Upsert(ctx, entityType, entityID, length, hash, resp.Content); err != nil {
		// A failed cache write costs a regeneration later, not the response.
		slog.WarnContext(ctx, "failed to cache summary", "error", err)
	}

	slog.InfoContext(ctx, "summary generated",
		"entity_type", entityType,
		"length", length,
		"provider", resp.Provider,
		"cost_usd", resp.CostUSD)

	return &model.Summary{
		EntityType: entityType,
		EntityID:   entityID,
		Length:     length,
		Content:    resp.Content,
		Cached:     false,
	}, nil
}

func (s *summarizer) Invalidate(ctx context.Context, entityType string, entityID int64) error {
	return s.summaryStore.DeleteByEntity(ctx, entityType, entityID)
}
