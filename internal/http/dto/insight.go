package dto

import (
	"time"

	"ficct.app/scrum/internal/insight"
	"ficct.app/scrum/internal/model"
)

type AnomalyResponse struct {
	ID          int64          `json:"id,string"`
	ProjectID   int64          `json:"project_id,string"`
	SprintID    *int64         `json:"sprint_id,string,omitempty"`
	Type        string         `json:"type"`
	Severity    string         `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	DetectedAt  time.Time      `json:"detected_at"`
}

func ToAnomalyResponses(anomalies []model.Anomaly) []AnomalyResponse {
	out := make([]AnomalyResponse, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, AnomalyResponse{
			ID:          a.ID,
			ProjectID:   a.ProjectID,
			SprintID:    a.SprintID,
			Type:        string(a.Type),
			Severity:    string(a.Severity),
			Description: a.Description,
			Details:     a.Details,
			DetectedAt:  a.DetectedAt,
		})
	}
	return out
}

type EffortPredictionResponse struct {
	IssueID        int64   `json:"issue_id,string"`
	StoryPoints    float64 `json:"story_points"`
	EstimatedHours float64 `json:"estimated_hours"`
	Confidence     float64 `json:"confidence"`
	SampleSize     int     `json:"sample_size"`
}

func ToEffortPredictionResponse(p *model.EffortPrediction) *EffortPredictionResponse {
	return &EffortPredictionResponse{
		IssueID:        p.IssueID,
		StoryPoints:    p.StoryPoints,
		EstimatedHours: p.EstimatedHours,
		Confidence:     p.Confidence,
		SampleSize:     p.SampleSize,
	}
}

type RecommendationResponse struct {
	UserID           int64   `json:"user_id,string"`
	Name             string  `json:"name"`
	Score            float64 `json:"score"`
	OpenIssues       int64   `json:"open_issues"`
	ResolvedSameType int     `json:"resolved_same_type"`
}

func ToRecommendationResponses(recs []insight.AssigneeRecommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecommendationResponse{
			UserID:           r.UserID,
			Name:             r.Name,
			Score:            r.Score,
			OpenIssues:       r.OpenIssues,
			ResolvedSameType: r.ResolvedSameType,
		})
	}
	return out
}

type VelocityResponse struct {
	Entries []VelocityEntryResponse `json:"entries"`
}

type VelocityEntryResponse struct {
	SprintID        int64      `json:"sprint_id,string"`
	Name            string     `json:"name"`
	CommittedPoints int32      `json:"committed_points"`
	CompletedPoints int32      `json:"completed_points"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type BurndownResponse struct {
	Points []BurndownPointResponse `json:"points"`
}

type BurndownPointResponse struct {
	Date            time.Time `json:"date"`
	RemainingPoints int64     `json:"remaining_points"`
	IdealPoints     float64   `json:"ideal_points"`
}
