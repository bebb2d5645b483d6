package store

import (
	"context"
	"encoding/json"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type anomalyStore struct {
	queries *sqlc.Queries
}

func newAnomalyStore(queries *sqlc.Queries) AnomalyStore {
	return &anomalyStore{queries: queries}
}

func (s *anomalyStore) Create(ctx context.Context, a *model.Anomaly) error {
	details := a.Details
	if details == nil {
		details = map[string]any{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	row, err := s.queries.CreateAnomaly(ctx, sqlc.CreateAnomalyParams{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		SprintID:    a.SprintID,
		AnomalyType: string(a.Type),
		Severity:    string(a.Severity),
		Description: a.Description,
		Details:     detailsJSON,
	})
	if err != nil {
		return err
	}
	anomaly, err := toAnomalyModel(row)
	if err != nil {
		return err
	}
	*a = *anomaly
	return nil
}

func (s *anomalyStore) ListOpenByProject(ctx context.Context, projectID int64) ([]model.Anomaly, error) {
	rows, err := s.queries.ListOpenAnomaliesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	anomalies := make([]model.Anomaly, 0, len(rows))
	for _, row := range rows {
		anomaly, err := toAnomalyModel(row)
		if err != nil {
			return nil, err
		}
		anomalies = append(anomalies, *anomaly)
	}
	return anomalies, nil
}

func (s *anomalyStore) Resolve(ctx context.Context, id int64) error {
	return s.queries.ResolveAnomaly(ctx, id)
}

func (s *anomalyStore) ResolveByType(ctx context.Context, projectID int64, anomalyType model.AnomalyType) error {
	return s.queries.ResolveAnomaliesByType(ctx, sqlc.ResolveAnomaliesByTypeParams{
		ProjectID:   projectID,
		AnomalyType: string(anomalyType),
	})
}

func toAnomalyModel(row sqlc.Anomaly) (*model.Anomaly, error) {
	var details map[string]any
	if len(row.Details) > 0 {
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return nil, err
		}
	}
	return &model.Anomaly{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		SprintID:    row.SprintID,
		Type:        model.AnomalyType(row.AnomalyType),
		Severity:    model.Severity(row.Severity),
		Description: row.Description,
		Details:     details,
		DetectedAt:  fromTimestamptz(row.DetectedAt),
		ResolvedAt:  fromNullableTimestamptz(row.ResolvedAt),
	}, nil
}
