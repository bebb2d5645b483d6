package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type summaryStore struct {
	queries *sqlc.Queries
}

func newSummaryStore(queries *sqlc.Queries) SummaryStore {
	return &summaryStore{queries: queries}
}

// Get returns the cached summary and its content hash, or ErrNotFound.
func (s *summaryStore) Get(ctx context.Context, entityType string, entityID int64, length model.SummaryLength) (*model.Summary, string, error) {
	row, err := s.queries.GetCachedSummary(ctx, sqlc.GetCachedSummaryParams{
		EntityType: entityType,
		EntityID:   entityID,
		Length:     string(length),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return &model.Summary{
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Length:     model.SummaryLength(row.Length),
		Content:    row.Summary,
		Cached:     true,
		CreatedAt:  fromTimestamptz(row.CreatedAt),
	}, row.ContentHash, nil
}

func (s *summaryStore) Upsert(ctx context.Context, entityType string, entityID int64, length model.SummaryLength, contentHash, summary string) error {
	_, err := s.queries.UpsertCachedSummary(ctx, sqlc.UpsertCachedSummaryParams{
		ID:          id.New(),
		EntityType:  entityType,
		EntityID:    entityID,
		Length:      string(length),
		ContentHash: contentHash,
		Summary:     summary,
	})
	return err
}

func (s *summaryStore) DeleteByEntity(ctx context.Context, entityType string, entityID int64) error {
	return s.queries.DeleteCachedSummaries(ctx, sqlc.DeleteCachedSummariesParams{
		EntityType: entityType,
		EntityID:   entityID,
	})
}
