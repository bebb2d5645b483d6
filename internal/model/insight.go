package model

import "time"

type AnomalyType string

const (
	AnomalyBurndownBehind   AnomalyType = "burndown_behind"
	AnomalyBlockedRatio     AnomalyType = "high_blocked_ratio"
	AnomalyUnestimated      AnomalyType = "unestimated_issues"
	AnomalyScopeCreep       AnomalyType = "scope_creep"
	AnomalyCapacityOverload AnomalyType = "capacity_overload"
	AnomalyVelocityDrop     AnomalyType = "velocity_drop"
	AnomalyStaleIssues      AnomalyType = "stale_issues"
	AnomalyCreationSpike    AnomalyType = "creation_spike"
	AnomalyStatusBottleneck AnomalyType = "status_bottleneck"
)

type Anomaly struct {
	ID          int64          `json:"id"`
	ProjectID   int64          `json:"project_id"`
	SprintID    *int64         `json:"sprint_id,omitempty"`
	Type        AnomalyType    `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
	DetectedAt  time.Time      `json:"detected_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SummaryLength selects the target size of a generated summary.
type SummaryLength string

const (
	SummaryLengthShort    SummaryLength = "short"
	SummaryLengthStandard SummaryLength = "standard"
	SummaryLengthDetailed SummaryLength = "detailed"
)

type Summary struct {
	EntityType string        `json:"entity_type"`
	EntityID   int64         `json:"entity_id"`
	Length     SummaryLength `json:"length"`
	Content    string        `json:"content"`
	Cached     bool          `json:"cached"`
	CreatedAt  time.Time     `json:"created_at"`
}

// EffortPrediction is a similarity-weighted estimate for an issue.
type EffortPrediction struct {
	IssueID        int64   `json:"issue_id"`
	StoryPoints    float64 `json:"story_points"`
	EstimatedHours float64 `json:"estimated_hours"`
	Confidence     float64 `json:"confidence"`
	SampleSize     int     `json:"sample_size"`
}
