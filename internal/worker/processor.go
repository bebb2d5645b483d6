package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/insight"
	"ficct.app/scrum/internal/queue"
	"ficct.app/scrum/internal/store"
)

// Processor dispatches a queue message to the subsystem that handles
// its task type.
type Processor struct {
	rag        assistant.RAGService
	summarizer assistant.Summarizer
	detector   insight.Detector
}

func NewProcessor(rag assistant.RAGService, summarizer assistant.Summarizer, detector insight.Detector) *Processor {
	return &Processor{
		rag:        rag,
		summarizer: summarizer,
		detector:   detector,
	}
}

func (p *Processor) Process(ctx context.Context, msg queue.Message) error {
	switch msg.TaskType {
	case queue.TaskTypeIndexIssue:
		if p.rag == nil {
			slog.WarnContext(ctx, "vector backends not configured, dropping index task", "issue_id", *msg.IssueID)
			return nil
		}
		_, err := p.rag.IndexIssue(ctx, *msg.IssueID, msg.Force)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between enqueue and processing.
			slog.InfoContext(ctx, "issue gone, skipping index", "issue_id", *msg.IssueID)
			return nil
		}
		return err

	case queue.TaskTypeRemoveIssue:
		if p.rag == nil {
			return nil
		}
		return p.rag.RemoveIssue(ctx, *msg.IssueID)

	case queue.TaskTypeReindexProject:
		if p.rag == nil {
			slog.WarnContext(ctx, "vector backends not configured, dropping reindex task", "project_id", *msg.ProjectID)
			return nil
		}
		_, err := p.rag.ReindexProject(ctx, *msg.ProjectID, msg.Force)
		return err

	case queue.TaskTypeInvalidateSummary:
		return p.summarizer.Invalidate(ctx, msg.EntityType, *msg.EntityID)

	case queue.TaskTypeScanAnomalies:
		_, err := p.detector.ScanProject(ctx, *msg.ProjectID)
		return err

	default:
		return fmt.Errorf("unknown task type %q", msg.TaskType)
	}
}
