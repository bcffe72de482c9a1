package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"codeloft/internal/generator"
	"codeloft/internal/prompt"
	"codeloft/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeProjectNotFound = -32001 // Unknown project id
)

// handleIndexProject handles the index_project tool invocation.
func (s *Server) handleIndexProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	projectID, ok := args["project_id"].(string)
	if !ok || projectID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "project_id parameter is required", map[string]interface{}{
			"param":  "project_id",
			"reason": "missing or empty",
		})
	}

	stats, err := s.indexer.Index(ctx, projectID)
	if err != nil {
		if errors.Is(err, types.ErrProjectNotFound) {
			return nil, newMCPError(ErrorCodeProjectNotFound, "project not found", map[string]interface{}{
				"project_id": projectID,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"indexed":        true,
		"chunks_indexed": stats.ChunksIndexed,
		"files_chunked":  stats.FilesChunked,
		"duration_ms":    stats.Duration.Milliseconds(),
	})), nil
}

// handleSearchProject handles the search_project tool invocation.
func (s *Server) handleSearchProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	projectID, query, err := requireProjectAndText(args, "query")
	if err != nil {
		return nil, err
	}

	chunks, err := s.retriever.Retrieve(ctx, projectID, query)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, len(chunks))
	for i, chunk := range chunks {
		results[i] = map[string]interface{}{
			"file_path":   chunk.FilePath,
			"chunk_index": chunk.ChunkIndex,
			"similarity":  chunk.Similarity,
			"content":     chunk.Content,
		}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})), nil
}

// handleAskQuestion handles the ask_question tool invocation. The answer
// is generated with retrieved chunks as grounding context and returned
// whole; MCP tool results do not stream.
func (s *Server) handleAskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	projectID, question, err := requireProjectAndText(args, "question")
	if err != nil {
		return nil, err
	}

	chunks, err := s.retriever.Retrieve(ctx, projectID, question)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	messages := prompt.Build(question, chunks, nil, nil)
	stream, err := s.chat.Stream(ctx, s.chatModel, messages)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	answer, err := generator.Drain(stream)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(answer), nil
}

// handleListProjects handles the list_projects tool invocation.
func (s *Server) handleListProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "list failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	projects := make([]map[string]interface{}, len(infos))
	for i, info := range infos {
		projects[i] = map[string]interface{}{
			"id":         info.ID,
			"name":       info.Name,
			"updated_at": info.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"count":    len(projects),
		"projects": projects,
	})), nil
}

// Helper functions

func requireProjectAndText(args map[string]interface{}, textParam string) (string, string, error) {
	projectID, ok := args["project_id"].(string)
	if !ok || projectID == "" {
		return "", "", newMCPError(ErrorCodeInvalidParams, "project_id parameter is required", map[string]interface{}{
			"param":  "project_id",
			"reason": "missing or empty",
		})
	}
	text, ok := args[textParam].(string)
	if !ok || text == "" {
		return "", "", newMCPError(ErrorCodeInvalidParams, textParam+" parameter is required", map[string]interface{}{
			"param":  textParam,
			"reason": "missing or empty",
		})
	}
	return projectID, text, nil
}

// newMCPError creates a properly formatted MCP error.
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{Code: code, Message: message, Data: data}
}

// MCPError represents an MCP protocol error.
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON.
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}
