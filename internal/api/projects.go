package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListProjects returns all projects visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req ProjectRequest) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects/", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject patches a project.
func (c *Client) UpdateProject(ctx context.Context, id int64, req ProjectRequest) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d/", id), nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project and its issues.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d/", id), nil, nil, nil)
}

// ProjectIssues lists a project's issues, optionally filtered.
func (c *Client) ProjectIssues(ctx context.Context, id int64, filter IssueFilter) ([]Issue, error) {
	query := filter.values()
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/issues/", id), query, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}
