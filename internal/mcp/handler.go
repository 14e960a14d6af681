package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/session"
)

// TrackerClient defines the tracker operations the bridge exposes as tools.
type TrackerClient interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
	GetProject(ctx context.Context, id int64) (*api.Project, error)
	CreateProject(ctx context.Context, req api.ProjectRequest) (*api.Project, error)
	ProjectIssues(ctx context.Context, id int64, filter api.IssueFilter) ([]api.Issue, error)
	ListIssues(ctx context.Context, filter api.IssueFilter) ([]api.Issue, error)
	GetIssue(ctx context.Context, id int64) (*api.Issue, error)
	CreateIssueForProject(ctx context.Context, projectID int64, req api.IssueRequest) (*api.Issue, error)
	UpdateIssueStatus(ctx context.Context, id int64, status api.IssueStatus) (*api.Issue, error)
	AssignIssue(ctx context.Context, id, assigneeID int64) (*api.Issue, error)
	ListComments(ctx context.Context, issueID int64) ([]api.Comment, error)
	CreateCommentForIssue(ctx context.Context, issueID int64, req api.CommentRequest) (*api.Comment, error)
}

// SessionManager is the slice of the session manager the bridge needs.
type SessionManager interface {
	State() session.State
}

// Handler dispatches tool calls to the tracker client.
type Handler struct {
	tracker  TrackerClient
	sessions SessionManager
}

// NewHandler creates a tool dispatch handler.
func NewHandler(tracker TrackerClient, sessions SessionManager) *Handler {
	return &Handler{tracker: tracker, sessions: sessions}
}

// Handle dispatches one tool invocation by name.
func (h *Handler) Handle(ctx context.Context, name string, params json.RawMessage) (any, error) {
	switch name {
	case "whoami":
		state := h.sessions.State()
		resp := WhoamiResponse{Status: string(state.Status)}
		if state.User != nil {
			resp.User = state.User
		}
		if state.Err != "" {
			resp.LastError = state.Err
		}
		return resp, nil
	case "list_projects":
		projects, err := h.tracker.ListProjects(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return projects, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		project, err := h.tracker.GetProject(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return project, nil
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		project, err := h.tracker.CreateProject(ctx, api.ProjectRequest{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return project, nil
	case "list_issues":
		var req ListIssuesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		filter := api.IssueFilter{
			Status:   api.IssueStatus(req.Status),
			Priority: api.IssuePriority(req.Priority),
			Search:   req.Search,
		}
		var issues []api.Issue
		var err error
		if req.ProjectID > 0 {
			issues, err = h.tracker.ProjectIssues(ctx, req.ProjectID, filter)
		} else {
			issues, err = h.tracker.ListIssues(ctx, filter)
		}
		if err != nil {
			return nil, mapError(err)
		}
		return issues, nil
	case "get_issue":
		var req GetIssueParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		issue, err := h.tracker.GetIssue(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return issue, nil
	case "create_issue":
		var req CreateIssueParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		issue, err := h.tracker.CreateIssueForProject(ctx, req.ProjectID, api.IssueRequest{
			Title:       req.Title,
			Description: req.Description,
			Priority:    api.IssuePriority(req.Priority),
		})
		if err != nil {
			return nil, mapError(err)
		}
		return issue, nil
	case "update_issue_status":
		var req UpdateIssueStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		issue, err := h.tracker.UpdateIssueStatus(ctx, req.ID, api.IssueStatus(req.Status))
		if err != nil {
			return nil, mapError(err)
		}
		return issue, nil
	case "assign_issue":
		var req AssignIssueParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		issue, err := h.tracker.AssignIssue(ctx, req.ID, req.AssigneeID)
		if err != nil {
			return nil, mapError(err)
		}
		return issue, nil
	case "list_comments":
		var req ListCommentsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		comments, err := h.tracker.ListComments(ctx, req.IssueID)
		if err != nil {
			return nil, mapError(err)
		}
		return comments, nil
	case "add_comment":
		var req AddCommentParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		comment, err := h.tracker.CreateCommentForIssue(ctx, req.IssueID, api.CommentRequest{
			Content: req.Content,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return comment, nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
