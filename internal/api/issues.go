package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (f IssueFilter) values() url.Values {
	query := url.Values{}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		query.Set("priority", string(f.Priority))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	return query
}

// ListIssues returns issues across all projects.
func (c *Client) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	query := filter.values()
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, "/issues/", query, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue creates an issue; the project comes from the request body.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodPost, "/issues/", nil, req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetIssue fetches one issue.
func (c *Client) GetIssue(ctx context.Context, id int64) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/issues/%d/", id), nil, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue patches an issue.
func (c *Client) UpdateIssue(ctx context.Context, id int64, req IssueRequest) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/issues/%d/", id), nil, req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// DeleteIssue removes an issue.
func (c *Client) DeleteIssue(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/issues/%d/", id), nil, nil, nil)
}

// CreateIssueForProject creates an issue directly under a project.
func (c *Client) CreateIssueForProject(ctx context.Context, projectID int64, req IssueRequest) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/issues/create-for-project/%d/", projectID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssueStatus moves an issue to a new status.
func (c *Client) UpdateIssueStatus(ctx context.Context, id int64, status IssueStatus) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/issues/%d/update_status/", id)
	body := map[string]IssueStatus{"status": status}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// AssignIssue sets the issue's assignee.
func (c *Client) AssignIssue(ctx context.Context, id, assigneeID int64) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/issues/%d/assign/", id)
	body := map[string]int64{"assignee_id": assigneeID}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}
