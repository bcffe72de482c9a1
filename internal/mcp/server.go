package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"codeloft/internal/generator"
	"codeloft/internal/indexer"
	"codeloft/internal/retriever"
	"codeloft/internal/storage"
)

const (
	// ServerName is the MCP server name.
	ServerName = "codeloft"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"
)

// Server exposes the indexing and question-answering core as MCP tools
// over stdio.
type Server struct {
	mcp       *server.MCPServer
	store     storage.Store
	indexer   *indexer.Indexer
	retriever *retriever.Retriever
	chat      generator.ChatProvider
	chatModel string
}

// Options carries the Server's dependencies.
type Options struct {
	Store     storage.Store
	Indexer   *indexer.Indexer
	Retriever *retriever.Retriever
	Chat      generator.ChatProvider
	ChatModel string
}

// NewServer creates an MCP server over an already-wired core.
func NewServer(opts Options) *Server {
	model := opts.ChatModel
	if model == "" {
		model = generator.DefaultChatModel
	}
	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion),
		store:     opts.Store,
		indexer:   opts.Indexer,
		retriever: opts.Retriever,
		chat:      opts.Chat,
		chatModel: model,
	}
	s.registerTools()
	return s
}

// Serve runs the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	_ = ctx
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(indexProjectTool(), s.handleIndexProject)
	s.mcp.AddTool(searchProjectTool(), s.handleSearchProject)
	s.mcp.AddTool(askQuestionTool(), s.handleAskQuestion)
	s.mcp.AddTool(listProjectsTool(), s.handleListProjects)
}
