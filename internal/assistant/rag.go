package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/common/vector"
	"ficct.app/scrum/core/config"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// RetrievedIssue is a semantic search hit enriched from Postgres.
type RetrievedIssue struct {
	Issue model.Issue
	Key   string
	Score float32
}

// ReindexResult reports the outcome of a bulk reindex.
type ReindexResult struct {
	Indexed int
	Skipped int
	Failed  int
}

// RAGService indexes issues into the vector store and retrieves the
// ones relevant to a question.
type RAGService interface {
	// IndexIssue embeds and upserts one issue. Returns false when the
	// content hash is unchanged and force is off.
	IndexIssue(ctx context.Context, issueID int64, force bool) (bool, error)
	RemoveIssue(ctx context.Context, issueID int64) error
	// ReindexProject reindexes every live issue of a project with
	// bounded concurrency and rate limiting.
	ReindexProject(ctx context.Context, projectID int64, force bool) (*ReindexResult, error)
	Search(ctx context.Context, question string, projectID *int64) ([]RetrievedIssue, SearchStrategy, error)
}

type ragService struct {
	issueStore     store.IssueStore
	projectStore   store.ProjectStore
	workflowStore  store.WorkflowStore
	sprintStore    store.SprintStore
	userStore      store.UserStore
	embeddingStore store.EmbeddingStore
	embedder       llm.Embedder
	vectors        vector.Store
	workers        int
	limiter        *rate.Limiter
}

func NewRAGService(
	stores *store.Stores,
	embedder llm.Embedder,
	vectors vector.Store,
	cfg config.IndexerConfig,
) RAGService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps)
	}
	return &ragService{
		issueStore:     stores.Issues(),
		projectStore:   stores.Projects(),
		workflowStore:  stores.Workflows(),
		sprintStore:    stores.Sprints(),
		userStore:      stores.Users(),
		embeddingStore: stores.Embeddings(),
		embedder:       embedder,
		vectors:        vectors,
		workers:        workers,
		limiter:        rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func vectorID(issueID int64) string {
	return fmt.Sprintf("issue_%d", issueID)
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (s *ragService) IndexIssue(ctx context.Context, issueID int64, force bool) (bool, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IssueID:   logger.Ptr(issueID),
		Component: "scrum.assistant.rag",
	})

	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return false, fmt.Errorf("loading issue: %w", err)
	}

	text, metadata, err := s.buildIssueDocument(ctx, issue)
	if err != nil {
		return false, err
	}

	hash := contentHash(text)
	if !force {
		if existing, err := s.embeddingStore.Get(ctx, issueID); err == nil {
			if existing.IsIndexed && existing.ContentHash == hash {
				slog.DebugContext(ctx, "issue content unchanged, skipping index")
				return false, nil
			}
		} else if err != store.ErrNotFound {
			return false, fmt.Errorf("loading embedding record: %w", err)
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}
	vec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return false, fmt.Errorf("embedding issue: %w", err)
	}

	vid := vectorID(issueID)
	doc := vector.Document{ID: vid, Values: vec, Metadata: metadata}
	if err := s.vectors.Upsert(ctx, vector.NamespaceIssues, []vector.Document{doc}); err != nil {
		return false, fmt.Errorf("upserting vector: %w", err)
	}

	if _, err := s.embeddingStore.Upsert(ctx, issueID, issue.ProjectID, vid, hash); err != nil {
		return false, fmt.Errorf("recording embedding: %w", err)
	}

	slog.InfoContext(ctx, "issue indexed", "vector_id", vid)
	return true, nil
}

func (s *ragService) RemoveIssue(ctx context.Context, issueID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IssueID:   logger.Ptr(issueID),
		Component: "scrum.assistant.rag",
	})

	if err := s.vectors.DeleteByID(ctx, vector.NamespaceIssues, []string{vectorID(issueID)}); err != nil {
		return fmt.Errorf("deleting vector: %w", err)
	}
	if err := s.embeddingStore.Delete(ctx, issueID); err != nil && err != store.ErrNotFound {
		return fmt.Errorf("deleting embedding record: %w", err)
	}

	slog.InfoContext(ctx, "issue removed from index")
	return nil
}

func (s *ragService) ReindexProject(ctx context.Context, projectID int64, force bool) (*ReindexResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ProjectID: logger.Ptr(projectID),
		Component: "scrum.assistant.rag",
	})

	issues, err := s.issueStore.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project issues: %w", err)
	}

	var (
		mu     sync.Mutex
		result ReindexResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, issue := range issues {
		g.Go(func() error {
			indexed, err := s.IndexIssue(gctx, issue.ID, force)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				slog.WarnContext(gctx, "reindex failed for issue", "issue_id", issue.ID, "error", err)
			case indexed:
				result.Indexed++
			default:
				result.Skipped++
			}
			// Individual failures are counted, not fatal.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &result, err
	}

	slog.InfoContext(ctx, "project reindex finished",
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return &result, nil
}

func (s *ragService) Search(ctx context.Context, question string, projectID *int64) ([]RetrievedIssue, SearchStrategy, error) {
	strategy := Route(question)

	if projectID != nil {
		if strategy.Filter == nil {
			strategy.Filter = map[string]any{}
		}
		strategy.Filter["project_id"] = *projectID
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, strategy, err
	}
	vec, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, strategy, fmt.Errorf("embedding question: %w", err)
	}

	var matches []vector.Match
	for _, ns := range strategy.Namespaces {
		nsMatches, err := s.vectors.Query(ctx, ns, vec, strategy.TopK, strategy.Filter)
		if err != nil {
			return nil, strategy, fmt.Errorf("querying namespace %s: %w", ns, err)
		}
		matches = append(matches, nsMatches...)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > strategy.TopK {
		matches = matches[:strategy.TopK]
	}

	return s.enrich(ctx, matches, strategy)
}

// enrich swaps vector metadata for current Postgres rows, dropping hits
// whose issue has been deleted since indexing.
func (s *ragService) enrich(ctx context.Context, matches []vector.Match, strategy SearchStrategy) ([]RetrievedIssue, SearchStrategy, error) {
	ids := make([]int64, 0, len(matches))
	scores := make(map[int64]float32, len(matches))
	for _, m := range matches {
		var issueID int64
		if _, err := fmt.Sscanf(m.ID, "issue_%d", &issueID); err != nil {
			continue
		}
		if _, ok := scores[issueID]; !ok {
			ids = append(ids, issueID)
		}
		if m.Score > scores[issueID] {
			scores[issueID] = m.Score
		}
	}
	if len(ids) == 0 {
		return nil, strategy, nil
	}

	issues, err := s.issueStore.ListByIDs(ctx, ids)
	if err != nil {
		return nil, strategy, fmt.Errorf("loading matched issues: %w", err)
	}

	projectKeys := map[int64]string{}
	retrieved := make([]RetrievedIssue, 0, len(issues))
	for _, issue := range issues {
		key, ok := projectKeys[issue.ProjectID]
		if !ok {
			project, err := s.projectStore.GetByID(ctx, issue.ProjectID)
			if err != nil {
				return nil, strategy, fmt.Errorf("loading project: %w", err)
			}
			key = project.Key
			projectKeys[issue.ProjectID] = key
		}
		retrieved = append(retrieved, RetrievedIssue{
			Issue: issue,
			Key:   issue.Key(key),
			Score: scores[issue.ID],
		})
	}
	sort.Slice(retrieved, func(i, j int) bool { return retrieved[i].Score > retrieved[j].Score })
	return retrieved, strategy, nil
}

// buildIssueDocument assembles the text that gets embedded plus the
// metadata used for filtered retrieval.
func (s *ragService) buildIssueDocument(ctx context.Context, issue *model.Issue) (string, map[string]any, error) {
	project, err := s.projectStore.GetByID(ctx, issue.ProjectID)
	if err != nil {
		return "", nil, fmt.Errorf("loading project: %w", err)
	}
	issueType, err := s.workflowStore.GetIssueType(ctx, issue.IssueTypeID)
	if err != nil {
		return "", nil, fmt.Errorf("loading issue type: %w", err)
	}
	status, err := s.workflowStore.GetStatus(ctx, issue.StatusID)
	if err != nil {
		return "", nil, fmt.Errorf("loading status: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", issue.Key(project.Key), issue.Title)
	if issue.Description != "" {
		fmt.Fprintf(&b, "%s\n", issue.Description)
	}
	fmt.Fprintf(&b, "Type: %s. Status: %s. Priority: %s.", issueType.Name, status.Name, issue.Priority)

	metadata := map[string]any{
		"issue_id":        issue.ID,
		"project_id":      issue.ProjectID,
		"key":             issue.Key(project.Key),
		"title":           logger.Truncate(issue.Title, 200),
		"type":            issueType.Name,
		"status":          status.Name,
		"status_category": string(status.Category),
		"priority":        string(issue.Priority),
		"is_blocked":      issue.IsBlocked,
		"updated_at":      issue.UpdatedAt.Unix(),
	}

	if issue.AssigneeID != nil {
		assignee, err := s.userStore.GetByID(ctx, *issue.AssigneeID)
		if err == nil {
			fmt.Fprintf(&b, " Assignee: %s.", assignee.Name)
			metadata["assignee_name"] = assignee.Name
		}
	}
	if issue.SprintID != nil {
		sprint, err := s.sprintStore.GetByID(ctx, *issue.SprintID)
		if err == nil {
			fmt.Fprintf(&b, " Sprint: %s.", sprint.Name)
			metadata["sprint_id"] = *issue.SprintID
			metadata["sprint_name"] = sprint.Name
		}
	}

	return b.String(), metadata, nil
}
