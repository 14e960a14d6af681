package mcp

import "github.com/rpggio/bugdeck/internal/api"

type GetProjectParams struct {
	ID int64 `json:"id"`
}

type CreateProjectParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ListIssuesParams struct {
	ProjectID int64  `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Search    string `json:"search,omitempty"`
}

type GetIssueParams struct {
	ID int64 `json:"id"`
}

type CreateIssueParams struct {
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type UpdateIssueStatusParams struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type AssignIssueParams struct {
	ID         int64 `json:"id"`
	AssigneeID int64 `json:"assignee_id"`
}

type ListCommentsParams struct {
	IssueID int64 `json:"issue_id"`
}

type AddCommentParams struct {
	IssueID int64  `json:"issue_id"`
	Content string `json:"content"`
}

// WhoamiResponse reports the bridge's session state.
type WhoamiResponse struct {
	Status    string    `json:"status"`
	User      *api.User `json:"user,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}
