package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/mcp/mocks"
	"github.com/rpggio/bugdeck/internal/session"
)

func TestToolCatalogSchemas(t *testing.T) {
	catalog := buildToolCatalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool)
	for _, tool := range catalog {
		require.NotEmpty(t, tool.Name)
		require.NotEmpty(t, tool.Description, "tool %s", tool.Name)
		require.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true

		require.Equal(t, "object", tool.InputSchema["type"], "tool %s", tool.Name)

		// Schemas must convert cleanly for registration.
		_, err := toSchema(tool.InputSchema)
		require.NoError(t, err, "tool %s", tool.Name)
	}
}

func TestToolCatalogCoversDispatch(t *testing.T) {
	// Every cataloged tool must reach a dispatch arm, never the
	// unknown-tool default.
	failure := &api.APIError{Status: http.StatusInternalServerError, Detail: "boom"}

	tracker := &mocks.TrackerClient{}
	tracker.On("ListProjects", mock.Anything).Return(nil, failure).Maybe()
	tracker.On("GetProject", mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("CreateProject", mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("ProjectIssues", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("ListIssues", mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("GetIssue", mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("CreateIssueForProject", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("UpdateIssueStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("AssignIssue", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("ListComments", mock.Anything, mock.Anything).Return(nil, failure).Maybe()
	tracker.On("CreateCommentForIssue", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure).Maybe()

	sessions := &mocks.SessionManager{}
	sessions.On("State").Return(session.State{Status: session.StatusUnauthenticated}).Maybe()

	handler := NewHandler(tracker, sessions)
	for _, tool := range buildToolCatalog() {
		_, err := handler.Handle(context.Background(), tool.Name, json.RawMessage(`{}`))
		if err != nil {
			require.NotContains(t, err.Error(), "unknown tool", "tool %s", tool.Name)
		}
	}
}
