package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/credstore"
	"github.com/rpggio/bugdeck/internal/session"
	"github.com/rpggio/bugdeck/internal/session/mocks"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	auth := &mocks.AuthClient{}
	sessions := session.NewManager(auth, credstore.NewMemoryStore(), nil)
	return NewModel(sessions, nil)
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestModel_StartsOnLogin(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, ViewLogin, m.viewMode)
	require.True(t, m.loading)
}

func TestModel_RestoreUnauthenticatedStaysOnLogin(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(sessionRestoredMsg{
		state: session.State{Status: session.StatusUnauthenticated},
	})
	m = updated.(Model)

	require.Equal(t, ViewLogin, m.viewMode)
	require.False(t, m.loading)
	require.Nil(t, cmd)
}

func TestModel_RestoreAuthenticatedLoadsProjects(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(sessionRestoredMsg{
		state: session.State{Status: session.StatusAuthenticated, User: &api.User{ID: 1}},
	})
	m = updated.(Model)

	require.Equal(t, ViewProjects, m.viewMode)
	require.True(t, m.loading)
	require.NotNil(t, cmd)
}

func TestModel_LoginFailureShowsMessage(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(loginFinishedMsg{
		state: session.State{Status: session.StatusUnauthenticated, Err: "Invalid credentials"},
	})
	m = updated.(Model)

	require.Equal(t, ViewLogin, m.viewMode)
	require.Equal(t, "Invalid credentials", m.errText)

	m = sized(t, m)
	require.Contains(t, m.View(), "Invalid credentials")
}

func TestModel_SessionExpiryBouncesToLogin(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(sessionRestoredMsg{
		state: session.State{Status: session.StatusAuthenticated, User: &api.User{ID: 1}},
	})
	m = updated.(Model)
	require.Equal(t, ViewProjects, m.viewMode)

	updated, _ = m.Update(SessionChangedMsg{
		State: session.State{Status: session.StatusUnauthenticated, Err: "Session expired"},
	})
	m = updated.(Model)

	require.Equal(t, ViewLogin, m.viewMode)
	require.Equal(t, "Session expired", m.errText)
}

func TestModel_SessionChangeOnLoginViewIsQuiet(t *testing.T) {
	// Transitions reported while already on the auth screens must not
	// clobber what the user is doing there.
	m := newTestModel(t)
	updated, _ := m.Update(SessionChangedMsg{
		State: session.State{Status: session.StatusLoading},
	})
	m = updated.(Model)
	require.Equal(t, ViewLogin, m.viewMode)
	require.Empty(t, m.errText)
}

func TestModel_RegistrationReturnsToLoginPrefilled(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = ViewRegister
	m.regInputs[regEmail].SetValue("new@example.com")

	updated, _ := m.Update(registerFinishedMsg{user: &api.User{ID: 3, Email: "new@example.com"}})
	m = updated.(Model)

	require.Equal(t, ViewLogin, m.viewMode)
	require.Equal(t, "new@example.com", m.loginInputs[0].Value())
	require.Empty(t, m.loginInputs[1].Value())
	require.NotEmpty(t, m.notice)
}

func TestModel_ProjectsLoaded(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = ViewProjects
	m.loading = true

	updated, _ := m.Update(projectsLoadedMsg{projects: []api.Project{
		{ID: 1, Name: "Backend"},
		{ID: 2, Name: "Frontend"},
	}})
	m = updated.(Model)

	require.False(t, m.loading)
	require.Len(t, m.projects, 2)

	m = sized(t, m)
	view := m.View()
	require.Contains(t, view, "Backend")
	require.Contains(t, view, "Frontend")
}

func TestModel_IssueDetailRendersComments(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(issueLoadedMsg{
		issue: &api.Issue{ID: 5, Title: "Crash on login", Status: api.StatusOpen, Priority: api.PriorityHigh},
		comments: []api.Comment{
			{ID: 1, Content: "Reproduced locally.", AuthorName: "Ada Lovelace"},
		},
	})
	m = updated.(Model)

	require.Equal(t, ViewIssueDetail, m.viewMode)

	m = sized(t, m)
	view := m.View()
	require.Contains(t, view, "Crash on login")
	require.Contains(t, view, "Reproduced locally.")
	require.Contains(t, view, "Ada Lovelace")
}

func TestNextStatusCycles(t *testing.T) {
	require.Equal(t, api.StatusInProgress, nextStatus(api.StatusOpen))
	require.Equal(t, api.StatusClosed, nextStatus(api.StatusInProgress))
	require.Equal(t, api.StatusOpen, nextStatus(api.StatusClosed))
}

func TestStatusFilterCyclesThroughAll(t *testing.T) {
	var filter api.IssueStatus
	seen := map[api.IssueStatus]bool{}
	for i := 0; i < 4; i++ {
		filter = nextStatusFilter(filter)
		seen[filter] = true
	}
	require.Equal(t, api.IssueStatus(""), filter)
	require.Len(t, seen, 4)
}
