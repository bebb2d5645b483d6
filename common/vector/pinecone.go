// Package vector wraps the Pinecone serverless index behind a small
// namespaced document store.
package vector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"ficct.app/scrum/core/config"
)

// Namespaces partition the index by entity kind.
const (
	NamespaceIssues   = "issues"
	NamespaceSprints  = "sprints"
	NamespaceProjects = "projects"
)

const upsertBatchSize = 100

type Document struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

type Match struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// Store is the vector index surface used by the indexer and RAG layers.
type Store interface {
	Upsert(ctx context.Context, namespace string, docs []Document) error
	Query(ctx context.Context, namespace string, vec []float32, topK int, filter map[string]any) ([]Match, error)
	DeleteByID(ctx context.Context, namespace string, ids []string) error
	DeleteByFilter(ctx context.Context, namespace string, filter map[string]any) error
}

type pineconeStore struct {
	client *pinecone.Client
	host   string

	mu    sync.Mutex
	conns map[string]*pinecone.IndexConnection
}

// New connects to Pinecone and creates the serverless index if it does
// not exist yet.
func New(ctx context.Context, cfg config.PineconeConfig) (Store, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}

	host, err := ensureIndex(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	return &pineconeStore{
		client: client,
		host:   host,
		conns:  make(map[string]*pinecone.IndexConnection),
	}, nil
}

func ensureIndex(ctx context.Context, client *pinecone.Client, cfg config.PineconeConfig) (string, error) {
	indexes, err := client.ListIndexes(ctx)
	if err != nil {
		return "", fmt.Errorf("listing pinecone indexes: %w", err)
	}
	for _, idx := range indexes {
		if idx.Name == cfg.IndexName {
			return idx.Host, nil
		}
	}

	slog.InfoContext(ctx, "creating pinecone index",
		"index", cfg.IndexName, "dimension", cfg.Dimension, "metric", cfg.Metric)

	dimension := cfg.Dimension
	metric := pinecone.IndexMetric(cfg.Metric)
	idx, err := client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      cfg.IndexName,
		Dimension: &dimension,
		Metric:    &metric,
		Cloud:     pinecone.Aws,
		Region:    cfg.Region,
	})
	if err != nil {
		return "", fmt.Errorf("creating pinecone index %q: %w", cfg.IndexName, err)
	}
	return idx.Host, nil
}

func (s *pineconeStore) conn(namespace string) (*pinecone.IndexConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conn, ok := s.conns[namespace]; ok {
		return conn, nil
	}
	conn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      s.host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to index namespace %q: %w", namespace, err)
	}
	s.conns[namespace] = conn
	return conn, nil
}

func (s *pineconeStore) Upsert(ctx context.Context, namespace string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	conn, err := s.conn(namespace)
	if err != nil {
		return err
	}

	for start := 0; start < len(docs); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		vectors := make([]*pinecone.Vector, 0, end-start)
		for _, doc := range docs[start:end] {
			metadata, err := structpb.NewStruct(doc.Metadata)
			if err != nil {
				return fmt.Errorf("building metadata for %q: %w", doc.ID, err)
			}
			values := doc.Values
			vectors = append(vectors, &pinecone.Vector{
				Id:       doc.ID,
				Values:   &values,
				Metadata: metadata,
			})
		}

		if _, err := conn.UpsertVectors(ctx, vectors); err != nil {
			return fmt.Errorf("upserting %d vectors into %q: %w", len(vectors), namespace, err)
		}
	}
	return nil
}

func (s *pineconeStore) Query(ctx context.Context, namespace string, vec []float32, topK int, filter map[string]any) ([]Match, error) {
	conn, err := s.conn(namespace)
	if err != nil {
		return nil, err
	}

	req := &pinecone.QueryByVectorValuesRequest{
		Vector:          vec,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	}
	if len(filter) > 0 {
		metadataFilter, err := structpb.NewStruct(filter)
		if err != nil {
			return nil, fmt.Errorf("building metadata filter: %w", err)
		}
		req.MetadataFilter = metadataFilter
	}

	resp, err := conn.QueryByVectorValues(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("querying namespace %q: %w", namespace, err)
	}

	matches := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		match := Match{
			ID:    m.Vector.Id,
			Score: m.Score,
		}
		if m.Vector.Metadata != nil {
			match.Metadata = m.Vector.Metadata.AsMap()
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (s *pineconeStore) DeleteByID(ctx context.Context, namespace string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	conn, err := s.conn(namespace)
	if err != nil {
		return err
	}
	if err := conn.DeleteVectorsById(ctx, ids); err != nil {
		return fmt.Errorf("deleting %d vectors from %q: %w", len(ids), namespace, err)
	}
	return nil
}

func (s *pineconeStore) DeleteByFilter(ctx context.Context, namespace string, filter map[string]any) error {
	conn, err := s.conn(namespace)
	if err != nil {
		return err
	}
	metadataFilter, err := structpb.NewStruct(filter)
	if err != nil {
		return fmt.Errorf("building metadata filter: %w", err)
	}
	if err := conn.DeleteVectorsByFilter(ctx, metadataFilter); err != nil {
		return fmt.Errorf("deleting vectors by filter from %q: %w", namespace, err)
	}
	return nil
}
