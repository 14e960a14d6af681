package mcp

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// buildToolCatalog returns all tools the bridge exposes.
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "whoami",
			Description: "Report the bridge's session state and the authenticated user",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},

		// Projects
		{
			Name:        "list_projects",
			Description: "List all projects visible to the authenticated user",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_project",
			Description: "Get details for a specific project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "integer",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "create_project",
			Description: "Create a new project to organize issues",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Project display name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Project description",
					},
				},
				"required": []string{"name"},
			},
		},

		// Issues
		{
			Name:        "list_issues",
			Description: "List issues, optionally scoped to a project and filtered by status, priority, or search text",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "integer",
						"description": "Project ID (omit to list across all projects)",
					},
					"status": map[string]any{
						"type":        "string",
						"description": "Filter by status",
						"enum":        []string{"open", "in_progress", "closed"},
					},
					"priority": map[string]any{
						"type":        "string",
						"description": "Filter by priority",
						"enum":        []string{"low", "medium", "high", "critical"},
					},
					"search": map[string]any{
						"type":        "string",
						"description": "Search text matched against title and description",
					},
				},
			},
		},
		{
			Name:        "get_issue",
			Description: "Get a single issue by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "integer",
						"description": "Issue ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "create_issue",
			Description: "Create a new issue under a project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "integer",
						"description": "Project the issue belongs to",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "Issue title",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Issue description",
					},
					"priority": map[string]any{
						"type":        "string",
						"description": "Issue priority",
						"enum":        []string{"low", "medium", "high", "critical"},
					},
				},
				"required": []string{"project_id", "title"},
			},
		},
		{
			Name:        "update_issue_status",
			Description: "Move an issue to a new status (open, in_progress, closed)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "integer",
						"description": "Issue ID",
					},
					"status": map[string]any{
						"type":        "string",
						"description": "Target status",
						"enum":        []string{"open", "in_progress", "closed"},
					},
				},
				"required": []string{"id", "status"},
			},
		},
		{
			Name:        "assign_issue",
			Description: "Assign an issue to a user",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "integer",
						"description": "Issue ID",
					},
					"assignee_id": map[string]any{
						"type":        "integer",
						"description": "User ID of the assignee",
					},
				},
				"required": []string{"id", "assignee_id"},
			},
		},

		// Comments
		{
			Name:        "list_comments",
			Description: "List comments on an issue",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"issue_id": map[string]any{
						"type":        "integer",
						"description": "Issue ID",
					},
				},
				"required": []string{"issue_id"},
			},
		},
		{
			Name:        "add_comment",
			Description: "Post a comment on an issue",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"issue_id": map[string]any{
						"type":        "integer",
						"description": "Issue ID",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Comment text",
					},
				},
				"required": []string{"issue_id", "content"},
			},
		},
	}
}
