package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/session"
)

// Messages
type sessionRestoredMsg struct {
	state session.State
}

type loginFinishedMsg struct {
	state session.State
}

type registerFinishedMsg struct {
	user *api.User
	err  error
}

type loggedOutMsg struct{}

// SessionChangedMsg is delivered from outside the program loop when the
// session state changes, including token invalidation mid-request.
type SessionChangedMsg struct {
	State session.State
}

type projectsLoadedMsg struct {
	projects []api.Project
	err      error
}

type projectCreatedMsg struct {
	project *api.Project
	err     error
}

type issuesLoadedMsg struct {
	issues []api.Issue
	err    error
}

type issueLoadedMsg struct {
	issue    *api.Issue
	comments []api.Comment
	err      error
}

type issueCreatedMsg struct {
	issue *api.Issue
	err   error
}

type issueUpdatedMsg struct {
	issue *api.Issue
	err   error
}

type commentCreatedMsg struct {
	comment *api.Comment
	err     error
}

func (m Model) restoreSessionCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return sessionRestoredMsg{state: sessions.Restore(context.Background())}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		sessions.Login(context.Background(), email, password)
		return loginFinishedMsg{state: sessions.State()}
	}
}

func (m Model) registerCmd(req api.RegisterRequest) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		user, err := sessions.Register(context.Background(), req)
		return registerFinishedMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		sessions.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (m Model) loadProjectsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m Model) createProjectCmd(req api.ProjectRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		project, err := client.CreateProject(context.Background(), req)
		return projectCreatedMsg{project: project, err: err}
	}
}

func (m Model) loadIssuesCmd(projectID int64, filter api.IssueFilter) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		issues, err := client.ProjectIssues(context.Background(), projectID, filter)
		return issuesLoadedMsg{issues: issues, err: err}
	}
}

func (m Model) loadIssueCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		issue, err := client.GetIssue(context.Background(), id)
		if err != nil {
			return issueLoadedMsg{err: err}
		}
		comments, err := client.ListComments(context.Background(), id)
		return issueLoadedMsg{issue: issue, comments: comments, err: err}
	}
}

func (m Model) createIssueCmd(projectID int64, req api.IssueRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		issue, err := client.CreateIssueForProject(context.Background(), projectID, req)
		return issueCreatedMsg{issue: issue, err: err}
	}
}

func (m Model) updateStatusCmd(id int64, status api.IssueStatus) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		issue, err := client.UpdateIssueStatus(context.Background(), id, status)
		return issueUpdatedMsg{issue: issue, err: err}
	}
}

func (m Model) assignIssueCmd(id, assigneeID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		issue, err := client.AssignIssue(context.Background(), id, assigneeID)
		return issueUpdatedMsg{issue: issue, err: err}
	}
}

func (m Model) addCommentCmd(issueID int64, content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		comment, err := client.CreateCommentForIssue(context.Background(), issueID, api.CommentRequest{Content: content})
		return commentCreatedMsg{comment: comment, err: err}
	}
}
