// Package mocks provides testify mocks for the bridge's collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/session"
)

// TrackerClient is a mock for mcp.TrackerClient.
type TrackerClient struct {
	mock.Mock
}

func (m *TrackerClient) ListProjects(ctx context.Context) ([]api.Project, error) {
	args := m.Called(ctx)
	if projects, ok := args.Get(0).([]api.Project); ok {
		return projects, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) GetProject(ctx context.Context, id int64) (*api.Project, error) {
	args := m.Called(ctx, id)
	if project, ok := args.Get(0).(*api.Project); ok {
		return project, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) CreateProject(ctx context.Context, req api.ProjectRequest) (*api.Project, error) {
	args := m.Called(ctx, req)
	if project, ok := args.Get(0).(*api.Project); ok {
		return project, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) ProjectIssues(ctx context.Context, id int64, filter api.IssueFilter) ([]api.Issue, error) {
	args := m.Called(ctx, id, filter)
	if issues, ok := args.Get(0).([]api.Issue); ok {
		return issues, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) ListIssues(ctx context.Context, filter api.IssueFilter) ([]api.Issue, error) {
	args := m.Called(ctx, filter)
	if issues, ok := args.Get(0).([]api.Issue); ok {
		return issues, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) GetIssue(ctx context.Context, id int64) (*api.Issue, error) {
	args := m.Called(ctx, id)
	if issue, ok := args.Get(0).(*api.Issue); ok {
		return issue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) CreateIssueForProject(ctx context.Context, projectID int64, req api.IssueRequest) (*api.Issue, error) {
	args := m.Called(ctx, projectID, req)
	if issue, ok := args.Get(0).(*api.Issue); ok {
		return issue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) UpdateIssueStatus(ctx context.Context, id int64, status api.IssueStatus) (*api.Issue, error) {
	args := m.Called(ctx, id, status)
	if issue, ok := args.Get(0).(*api.Issue); ok {
		return issue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) AssignIssue(ctx context.Context, id, assigneeID int64) (*api.Issue, error) {
	args := m.Called(ctx, id, assigneeID)
	if issue, ok := args.Get(0).(*api.Issue); ok {
		return issue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) ListComments(ctx context.Context, issueID int64) ([]api.Comment, error) {
	args := m.Called(ctx, issueID)
	if comments, ok := args.Get(0).([]api.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackerClient) CreateCommentForIssue(ctx context.Context, issueID int64, req api.CommentRequest) (*api.Comment, error) {
	args := m.Called(ctx, issueID, req)
	if comment, ok := args.Get(0).(*api.Comment); ok {
		return comment, args.Error(1)
	}
	return nil, args.Error(1)
}

// SessionManager is a mock for mcp.SessionManager.
type SessionManager struct {
	mock.Mock
}

func (m *SessionManager) State() session.State {
	args := m.Called()
	return args.Get(0).(session.State)
}
