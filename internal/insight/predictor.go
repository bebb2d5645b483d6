package insight

import (
	"context"
	"fmt"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

const predictorSampleLimit = 20

// Predictor estimates effort for an issue by looking at how similar
// resolved issues actually went.
type Predictor interface {
	PredictEffort(ctx context.Context, issueID int64) (*model.EffortPrediction, error)
}

type predictor struct {
	issueStore store.IssueStore
}

func NewPredictor(issueStore store.IssueStore) Predictor {
	return &predictor{issueStore: issueStore}
}

func (p *predictor) PredictEffort(ctx context.Context, issueID int64) (*model.EffortPrediction, error) {
	issue, err := p.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading issue: %w", err)
	}

	resolved, err := p.issueStore.ListResolvedByType(ctx, issue.ProjectID, issue.IssueTypeID, predictorSampleLimit)
	if err != nil {
		return nil, fmt.Errorf("loading resolved issues: %w", err)
	}

	// Same priority is a better signal; fall back to the whole type
	// when the narrow sample is too small.
	samePriority := filterByPriority(resolved, issue.Priority)
	sample := samePriority
	if len(sample) < 3 {
		sample = resolved
	}
	if len(sample) == 0 {
		return &model.EffortPrediction{IssueID: issueID}, nil
	}

	var (
		pointsSum float64
		pointsN   int
		hoursSum  float64
		hoursN    int
	)
	for _, r := range sample {
		if r.StoryPoints != nil {
			pointsSum += float64(*r.StoryPoints)
			pointsN++
		}
		switch {
		case r.ActualHours != nil:
			hoursSum += *r.ActualHours
			hoursN++
		case r.EstimatedHours != nil:
			hoursSum += *r.EstimatedHours
			hoursN++
		}
	}

	prediction := &model.EffortPrediction{
		IssueID:    issueID,
		SampleSize: len(sample),
		Confidence: confidenceFromSample(len(sample)),
	}
	if pointsN > 0 {
		prediction.StoryPoints = pointsSum / float64(pointsN)
	}
	if hoursN > 0 {
		prediction.EstimatedHours = hoursSum / float64(hoursN)
	}
	return prediction, nil
}

func filterByPriority(issues []model.Issue, priority model.Priority) []model.Issue {
	var out []model.Issue
	for _, issue := range issues {
		if issue.Priority == priority {
			out = append(out, issue)
		}
	}
	return out
}

// confidenceFromSample grows with sample size and saturates at 0.9.
// A heuristic over historical averages never deserves full confidence.
func confidenceFromSample(n int) float64 {
	c := float64(n) / 10
	if c > 0.9 {
		c = 0.9
	}
	return c
}
