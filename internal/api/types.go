package api

import "time"

// IssueStatus enumerates the tracker's issue lifecycle states.
type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in_progress"
	StatusClosed     IssueStatus = "closed"
)

// IssuePriority enumerates issue priorities.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

// User is the backend's account representation. Read-only on the client.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns a human-readable name, falling back to the email.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TokenPairResponse is the login payload.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Project groups issues.
type Project struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedBy     *int64    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	IssueCount    int       `json:"issue_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Issue is a single tracked bug or task.
type Issue struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       IssueStatus   `json:"status"`
	Priority     IssuePriority `json:"priority"`
	Project      int64         `json:"project"`
	ProjectName  string        `json:"project_name"`
	Reporter     *int64        `json:"reporter"`
	ReporterName string        `json:"reporter_name"`
	Assignee     *int64        `json:"assignee"`
	AssigneeName string        `json:"assignee_name"`
	CommentCount int           `json:"comment_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Comment is a discussion entry on an issue.
type Comment struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Issue       int64     `json:"issue"`
	Author      *int64    `json:"author"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// RegisterResponse wraps the created profile.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ProjectRequest creates or patches a project.
type ProjectRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// IssueRequest creates or patches an issue.
type IssueRequest struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      IssueStatus   `json:"status,omitempty"`
	Priority    IssuePriority `json:"priority,omitempty"`
	Project     int64         `json:"project,omitempty"`
	Assignee    *int64        `json:"assignee,omitempty"`
}

// CommentRequest creates or patches a comment.
type CommentRequest struct {
	Content string `json:"content,omitempty"`
	Issue   int64  `json:"issue,omitempty"`
}

// IssueFilter narrows issue listings.
type IssueFilter struct {
	Status   IssueStatus
	Priority IssuePriority
	Search   string
}
