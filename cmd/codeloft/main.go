package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"codeloft/internal/config"
	"codeloft/internal/embedder"
	"codeloft/internal/generator"
	"codeloft/internal/indexer"
	"codeloft/internal/mcp"
	"codeloft/internal/retriever"
	"codeloft/internal/server"
	"codeloft/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "codeloft",
		Short:        "RAG-powered code workspace backend",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMCPCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("codeloft %s\n", version)
			fmt.Printf("Build Time: %s\n", buildTime)
			fmt.Printf("Build Mode: %s\n", storage.BuildMode)
			fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().String("listen", "", "listen address (default :8080)")
	cmd.Flags().String("db", "", "SQLite database path")
	cmd.Flags().String("embedding-provider", "", "embedding provider (openai or local)")
	cmd.Flags().String("chat-model", "", "chat completion model")
	cmd.Flags().Float64("retrieval-threshold", 0, "minimum similarity for retrieved chunks")
	cmd.Flags().Int("retrieval-max", 0, "maximum retrieved chunks per question")
	return cmd
}

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd)
		},
	}
	cmd.Flags().String("db", "", "SQLite database path")
	return cmd
}

// core bundles the wired components shared by both server surfaces.
type core struct {
	store     storage.Store
	indexer   *indexer.Indexer
	retriever *retriever.Retriever
	chat      generator.ChatProvider
	chatModel string
}

func buildCore(ctx context.Context, cfg *config.Config) (*core, error) {
	store, err := storage.NewSQLiteStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	emb, err := embedder.New(embedder.Config{
		Provider:  cfg.Embedding.Provider,
		APIKey:    cfg.Embedding.APIKey,
		CacheSize: cfg.Embedding.CacheSize,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	chat := generator.NewClient(cfg.Chat.APIKey)

	return &core{
		store:   store,
		indexer: indexer.New(store, emb),
		retriever: retriever.New(store, emb, retriever.Config{
			Threshold:  cfg.Retrieval.Threshold,
			MaxResults: cfg.Retrieval.MaxResults,
		}),
		chat:      chat,
		chatModel: cfg.Chat.Model,
	}, nil
}

func runServe(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd, cwd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.store.Close() }()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	api := server.New(server.Options{
		Store:     c.store,
		Indexer:   c.indexer,
		Retriever: c.retriever,
		Chat:      c.chat,
		ChatModel: c.chatModel,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Printf("codeloft %s listening on %s (driver=%s)", version, cfg.ListenAddr, storage.DriverName)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runMCP(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd, cwd)
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log.SetOutput(os.Stderr)
	log.Printf("codeloft MCP server %s starting (driver=%s)", version, storage.DriverName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.store.Close() }()

	s := mcp.NewServer(mcp.Options{
		Store:     c.store,
		Indexer:   c.indexer,
		Retriever: c.retriever,
		Chat:      c.chat,
		ChatModel: c.chatModel,
	})
	return s.Serve(ctx)
}
