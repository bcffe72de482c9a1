package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeloft/internal/embedder"
	"codeloft/internal/generator"
	"codeloft/internal/indexer"
	"codeloft/internal/retriever"
	"codeloft/internal/storage"
	"codeloft/pkg/types"
)

// staticChat answers every question with the same text.
type staticChat struct {
	answer string
}

func (c *staticChat) Stream(_ context.Context, _ string, _ []generator.Message) (generator.Stream, error) {
	return generator.NewStaticStream(c.answer), nil
}

func newTestServer(t *testing.T) (*Server, storage.Store) {
	t.Helper()
	store, err := storage.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	emb, err := embedder.NewLocalProvider(nil)
	require.NoError(t, err)

	s := NewServer(Options{
		Store:     store,
		Indexer:   indexer.New(store, emb),
		Retriever: retriever.New(store, emb, retriever.Config{}),
		Chat:      &staticChat{answer: "grounded answer"},
	})
	return s, store
}

func seedProject(t *testing.T, store storage.Store, id string) {
	t.Helper()
	require.NoError(t, store.CreateProject(context.Background(), &types.Project{
		ID:   id,
		Name: "demo",
		FileContents: map[string]string{
			"src/auth.js": "function login() {}\n",
		},
	}))
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestIndexProjectTool(t *testing.T) {
	s, _ := newTestServer(t)
	seedProject(t, s.store, "p1")

	result, err := s.handleIndexProject(context.Background(),
		callRequest(map[string]interface{}{"project_id": "p1"}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"chunks_indexed": 1`)
	assert.Contains(t, text, `"indexed": true`)
}

func TestIndexProjectToolUnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleIndexProject(context.Background(),
		callRequest(map[string]interface{}{"project_id": "missing"}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeProjectNotFound, mcpErr.Code)
}

func TestIndexProjectToolMissingParam(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleIndexProject(context.Background(),
		callRequest(map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestSearchProjectTool(t *testing.T) {
	s, _ := newTestServer(t)
	seedProject(t, s.store, "p1")

	_, err := s.handleIndexProject(context.Background(),
		callRequest(map[string]interface{}{"project_id": "p1"}))
	require.NoError(t, err)

	result, err := s.handleSearchProject(context.Background(), callRequest(map[string]interface{}{
		"project_id": "p1",
		"query":      "function login() {}",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"count"`)
	assert.Contains(t, text, `"query": "function login() {}"`)
}

func TestSearchProjectToolEmptyIndex(t *testing.T) {
	s, _ := newTestServer(t)
	seedProject(t, s.store, "p1")

	result, err := s.handleSearchProject(context.Background(), callRequest(map[string]interface{}{
		"project_id": "p1",
		"query":      "anything",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `"count": 0`)
}

func TestAskQuestionTool(t *testing.T) {
	s, _ := newTestServer(t)
	seedProject(t, s.store, "p1")

	result, err := s.handleAskQuestion(context.Background(), callRequest(map[string]interface{}{
		"project_id": "p1",
		"question":   "how does login work?",
	}))
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", resultText(t, result))
}

func TestAskQuestionToolMissingQuestion(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleAskQuestion(context.Background(),
		callRequest(map[string]interface{}{"project_id": "p1"}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestListProjectsTool(t *testing.T) {
	s, _ := newTestServer(t)
	seedProject(t, s.store, "p1")

	result, err := s.handleListProjects(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"count": 1`)
	assert.Contains(t, text, `"name": "demo"`)
}
