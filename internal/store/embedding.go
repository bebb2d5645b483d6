package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type embeddingStore struct {
	queries *sqlc.Queries
}

func newEmbeddingStore(queries *sqlc.Queries) EmbeddingStore {
	return &embeddingStore{queries: queries}
}

func (s *embeddingStore) Upsert(ctx context.Context, issueID, projectID int64, vectorID, contentHash string) (*model.IssueEmbedding, error) {
	row, err := s.queries.UpsertIssueEmbedding(ctx, sqlc.UpsertIssueEmbeddingParams{
		IssueID:     issueID,
		ProjectID:   projectID,
		VectorID:    vectorID,
		ContentHash: contentHash,
	})
	if err != nil {
		return nil, err
	}
	return toEmbeddingModel(row), nil
}

func (s *embeddingStore) Get(ctx context.Context, issueID int64) (*model.IssueEmbedding, error) {
	row, err := s.queries.GetIssueEmbedding(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toEmbeddingModel(row), nil
}

func (s *embeddingStore) Delete(ctx context.Context, issueID int64) error {
	return s.queries.DeleteIssueEmbedding(ctx, issueID)
}

func (s *embeddingStore) ListByProject(ctx context.Context, projectID int64) ([]model.IssueEmbedding, error) {
	rows, err := s.queries.ListIssueEmbeddingsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toEmbeddingModels(rows), nil
}

func (s *embeddingStore) ListIndexed(ctx context.Context) ([]model.IssueEmbedding, error) {
	rows, err := s.queries.ListIndexedEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	return toEmbeddingModels(rows), nil
}

func toEmbeddingModel(row sqlc.IssueEmbedding) *model.IssueEmbedding {
	return &model.IssueEmbedding{
		IssueID:     row.IssueID,
		ProjectID:   row.ProjectID,
		VectorID:    row.VectorID,
		ContentHash: row.ContentHash,
		IsIndexed:   row.IsIndexed,
		IndexedAt:   fromNullableTimestamptz(row.IndexedAt),
		UpdatedAt:   fromTimestamptz(row.UpdatedAt),
	}
}

func toEmbeddingModels(rows []sqlc.IssueEmbedding) []model.IssueEmbedding {
	embeddings := make([]model.IssueEmbedding, 0, len(rows))
	for _, row := range rows {
		embeddings = append(embeddings, *toEmbeddingModel(row))
	}
	return embeddings
}
