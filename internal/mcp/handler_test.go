package mcp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/mcp"
	"github.com/rpggio/bugdeck/internal/mcp/mocks"
	"github.com/rpggio/bugdeck/internal/session"
)

func TestHandler_Whoami(t *testing.T) {
	ctx := context.Background()
	user := &api.User{ID: 7, Email: "dev@example.com"}

	sessions := &mocks.SessionManager{}
	sessions.On("State").Return(session.State{Status: session.StatusAuthenticated, User: user})

	handler := mcp.NewHandler(&mocks.TrackerClient{}, sessions)
	result, err := handler.Handle(ctx, "whoami", nil)
	require.NoError(t, err)

	resp, ok := result.(mcp.WhoamiResponse)
	require.True(t, ok)
	require.Equal(t, "authenticated", resp.Status)
	require.Equal(t, user, resp.User)
	require.Empty(t, resp.LastError)
}

func TestHandler_WhoamiExpiredSession(t *testing.T) {
	ctx := context.Background()
	sessions := &mocks.SessionManager{}
	sessions.On("State").Return(session.State{Status: session.StatusUnauthenticated, Err: "Session expired"})

	handler := mcp.NewHandler(&mocks.TrackerClient{}, sessions)
	result, err := handler.Handle(ctx, "whoami", nil)
	require.NoError(t, err)

	resp := result.(mcp.WhoamiResponse)
	require.Equal(t, "unauthenticated", resp.Status)
	require.Equal(t, "Session expired", resp.LastError)
}

func TestHandler_ListIssuesScopedToProject(t *testing.T) {
	ctx := context.Background()
	issues := []api.Issue{{ID: 1, Title: "Crash on login"}}

	tracker := &mocks.TrackerClient{}
	tracker.On("ProjectIssues", ctx, int64(4), api.IssueFilter{Status: api.StatusOpen}).
		Return(issues, nil)

	handler := mcp.NewHandler(tracker, &mocks.SessionManager{})
	result, err := handler.Handle(ctx, "list_issues",
		json.RawMessage(`{"project_id": 4, "status": "open"}`))
	require.NoError(t, err)
	require.Equal(t, issues, result)

	tracker.AssertNotCalled(t, "ListIssues", ctx, api.IssueFilter{Status: api.StatusOpen})
}

func TestHandler_ListIssuesUnscoped(t *testing.T) {
	ctx := context.Background()
	issues := []api.Issue{{ID: 1}, {ID: 2}}

	tracker := &mocks.TrackerClient{}
	tracker.On("ListIssues", ctx, api.IssueFilter{}).Return(issues, nil)

	handler := mcp.NewHandler(tracker, &mocks.SessionManager{})
	result, err := handler.Handle(ctx, "list_issues", nil)
	require.NoError(t, err)
	require.Equal(t, issues, result)
}

func TestHandler_CreateIssue(t *testing.T) {
	ctx := context.Background()
	issue := &api.Issue{ID: 10, Title: "Crash on login"}

	tracker := &mocks.TrackerClient{}
	tracker.On("CreateIssueForProject", ctx, int64(4), api.IssueRequest{
		Title:    "Crash on login",
		Priority: api.PriorityHigh,
	}).Return(issue, nil)

	handler := mcp.NewHandler(tracker, &mocks.SessionManager{})
	result, err := handler.Handle(ctx, "create_issue",
		json.RawMessage(`{"project_id": 4, "title": "Crash on login", "priority": "high"}`))
	require.NoError(t, err)
	require.Equal(t, issue, result)
}

func TestHandler_AuthExpiredMapsToToolError(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	tracker.On("ListProjects", ctx).
		Return(nil, &api.APIError{Status: http.StatusUnauthorized, Detail: "Unauthorized"})

	handler := mcp.NewHandler(tracker, &mocks.SessionManager{})
	_, err := handler.Handle(ctx, "list_projects", nil)

	var toolErr *mcp.ToolError
	require.ErrorAs(t, err, &toolErr)
	require.Equal(t, "AUTH_EXPIRED", toolErr.Code)
	require.NotEmpty(t, toolErr.RecoveryHint)
}

func TestHandler_NotFoundMapsToToolError(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	tracker.On("GetIssue", ctx, int64(99)).
		Return(nil, &api.APIError{Status: http.StatusNotFound, Detail: "The requested resource was not found."})

	handler := mcp.NewHandler(tracker, &mocks.SessionManager{})
	_, err := handler.Handle(ctx, "get_issue", json.RawMessage(`{"id": 99}`))

	var toolErr *mcp.ToolError
	require.ErrorAs(t, err, &toolErr)
	require.Equal(t, "NOT_FOUND", toolErr.Code)
}

func TestHandler_UnknownTool(t *testing.T) {
	handler := mcp.NewHandler(&mocks.TrackerClient{}, &mocks.SessionManager{})
	_, err := handler.Handle(context.Background(), "launch_missiles", nil)
	require.Error(t, err)
}
