package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/common/otel"
	"ficct.app/scrum/common/vector"
	"ficct.app/scrum/core/config"
	"ficct.app/scrum/core/db"
	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/http/middleware"
	httprouter "ficct.app/scrum/internal/http/router"
	"ficct.app/scrum/internal/insight"
	"ficct.app/scrum/internal/queue"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "scrum server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	taskProducer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, nil)
	defer taskProducer.Close()

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), taskProducer)

	ai := setupAI(ctx, cfg, stores)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, ai)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupAI wires the optional AI surface. Each backend degrades
// independently: without LLM credentials the assistant and summarizer
// stay nil, without Pinecone the RAG index does, and the rule-based
// insight engine always runs.
func setupAI(ctx context.Context, cfg config.Config, stores *store.Stores) httprouter.AIDeps {
	deps := httprouter.AIDeps{
		Detector:    insight.NewDetector(stores),
		Predictor:   insight.NewPredictor(stores.Issues()),
		Recommender: insight.NewRecommender(stores.Issues(), stores.Projects(), stores.Users()),
	}

	if cfg.Bedrock.Enabled() || cfg.Azure.Enabled() {
		proxy, err := llm.NewProxyFromConfig(ctx, cfg)
		if err != nil {
			slog.WarnContext(ctx, "llm proxy unavailable", "error", err)
		} else {
			deps.Proxy = proxy
			deps.Summarizer = assistant.NewSummarizer(stores, proxy)
		}
	} else {
		slog.InfoContext(ctx, "llm proxy disabled (no provider credentials)")
	}

	if cfg.Azure.Enabled() && cfg.Pinecone.Enabled() {
		vectors, err := vector.New(ctx, cfg.Pinecone)
		if err != nil {
			slog.WarnContext(ctx, "vector store unavailable", "error", err)
		} else {
			rag := assistant.NewRAGService(stores, llm.NewAzureEmbedder(cfg.Azure), vectors, cfg.Indexer)
			if deps.Proxy != nil {
				deps.Assistant = assistant.NewAssistantService(stores.Chats(), rag, deps.Proxy)
			}
		}
	} else {
		slog.InfoContext(ctx, "semantic search disabled (embeddings or pinecone not configured)")
	}

	return deps
}

func setupRouter(cfg config.Config, services *service.Services, ai httprouter.AIDeps) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, ai)

	return router
}

const banner = `
███████╗ ██████╗██████╗ ██╗   ██╗███╗   ███╗
██╔════╝██╔════╝██╔══██╗██║   ██║████╗ ████║
███████╗██║     ██████╔╝██║   ██║██╔████╔██║
╚════██║██║     ██╔══██╗██║   ██║██║╚██╔╝██║
███████║╚██████╗██║  ██║╚██████╔╝██║ ╚═╝ ██║
╚══════╝ ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝
`
