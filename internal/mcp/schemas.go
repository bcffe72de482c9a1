package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexProjectTool returns the tool definition for index_project.
func indexProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_project",
		Description: "Rebuild the semantic index for a stored project, replacing any previous index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of a stored project",
				},
			},
			Required: []string{"project_id"},
		},
	}
}

// searchProjectTool returns the tool definition for search_project.
func searchProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_project",
		Description: "Semantic similarity search over a project's indexed code chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of an indexed project",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language or keyword query",
				},
			},
			Required: []string{"project_id", "query"},
		},
	}
}

// askQuestionTool returns the tool definition for ask_question.
func askQuestionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question about a project's code using retrieval-grounded generation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of an indexed project",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
			},
			Required: []string{"project_id", "question"},
		},
	}
}

// listProjectsTool returns the tool definition for list_projects.
func listProjectsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_projects",
		Description: "List stored projects with ids and names",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
