package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/common/vector"
	"ficct.app/scrum/core/config"
	"ficct.app/scrum/core/db"
	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "scrumctl",
	Short: "Operational tooling for the scrum service",
	Long: `scrumctl runs maintenance tasks against the scrum database and the
vector index: demo data seeding, bulk reindexing, vector hygiene and
anomaly scans.`,
	SilenceUsage: true,
}

// app bundles the dependencies every subcommand shares. Close releases
// the database pool.
type app struct {
	cfg    config.Config
	db     *db.DB
	stores *store.Stores
}

func (a *app) Close() {
	a.db.Close()
}

// newApp connects to Postgres and initializes logging and ID
// generation. Subcommands build what else they need on top.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger.Setup(cfg)

	// Node 3 keeps CLI snowflakes distinct from server and worker.
	if err := id.Init(3); err != nil {
		return nil, fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &app{
		cfg:    cfg,
		db:     database,
		stores: store.NewStores(database.Queries()),
	}, nil
}

func (a *app) services() *service.Services {
	return service.NewServices(a.stores, service.NewTxRunner(a.db), nil)
}

func (a *app) rag(ctx context.Context) (assistant.RAGService, vector.Store, error) {
	if !a.cfg.Azure.Enabled() {
		return nil, nil, fmt.Errorf("azure openai is not configured (AZURE_OPENAI_API_KEY, AZURE_OPENAI_ENDPOINT)")
	}
	if !a.cfg.Pinecone.Enabled() {
		return nil, nil, fmt.Errorf("pinecone is not configured (PINECONE_API_KEY)")
	}
	vectors, err := vector.New(ctx, a.cfg.Pinecone)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to vector store: %w", err)
	}
	return assistant.NewRAGService(a.stores, llm.NewAzureEmbedder(a.cfg.Azure), vectors, a.cfg.Indexer), vectors, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
