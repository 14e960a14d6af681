package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListComments returns comments, optionally scoped to one issue.
func (c *Client) ListComments(ctx context.Context, issueID int64) ([]Comment, error) {
	query := url.Values{}
	if issueID > 0 {
		query.Set("issue", strconv.FormatInt(issueID, 10))
	}
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/comments/", query, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment creates a comment; the issue comes from the request body.
func (c *Client) CreateComment(ctx context.Context, req CommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments/", nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComment fetches one comment.
func (c *Client) GetComment(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/%d/", id), nil, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment patches a comment.
func (c *Client) UpdateComment(ctx context.Context, id int64, req CommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/comments/%d/", id), nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/", id), nil, nil, nil)
}

// CreateCommentForIssue creates a comment directly under an issue.
func (c *Client) CreateCommentForIssue(ctx context.Context, issueID int64, req CommentRequest) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/comments/create-for-issue/%d/", issueID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
