package server

import (
	"log"
	"net/http"

	"codeloft/internal/generator"
	"codeloft/internal/indexer"
	"codeloft/internal/retriever"
	"codeloft/internal/storage"
	"codeloft/internal/streamer"
)

// Server is the HTTP API over the store, the indexing pipeline, and the
// chat pipeline.
type Server struct {
	store     storage.Store
	indexer   *indexer.Indexer
	retriever *retriever.Retriever
	chat      generator.ChatProvider
	chatModel string
	streamer  *streamer.Streamer
	logger    *log.Logger
}

// Options configures a Server.
type Options struct {
	Store     storage.Store
	Indexer   *indexer.Indexer
	Retriever *retriever.Retriever
	Chat      generator.ChatProvider
	ChatModel string
	Logger    *log.Logger
}

// New creates a Server. A nil logger falls back to the stdlib default.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	model := opts.ChatModel
	if model == "" {
		model = generator.DefaultChatModel
	}
	return &Server{
		store:     opts.Store,
		indexer:   opts.Indexer,
		retriever: opts.Retriever,
		chat:      opts.Chat,
		chatModel: model,
		streamer:  streamer.New(0),
		logger:    logger,
	}
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	mux.HandleFunc("GET /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /api/projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)

	mux.HandleFunc("POST /api/index", s.handleIndex)
	mux.HandleFunc("POST /api/chat", s.handleChat)

	return s.logMiddleware(mux)
}
