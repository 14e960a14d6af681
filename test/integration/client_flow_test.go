package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/credstore"
	"github.com/rpggio/bugdeck/internal/session"
	"github.com/rpggio/bugdeck/internal/testbackend"
)

// newStack wires the production pieces together the way the binaries do:
// sealed SQLite credentials, HTTP client, session manager, 401 handler.
func newStack(t *testing.T, backend *testbackend.Backend) (*api.Client, *session.Manager, credstore.Store) {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := credstore.OpenSQLite(filepath.Join(dir, "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	creds, err := credstore.NewSealedStore(sqliteStore, filepath.Join(dir, "bugdeck.key"))
	require.NoError(t, err)

	client := api.NewClient(backend.URL(), creds, 5*time.Second, nil)
	sessions := session.NewManager(client, creds, nil)
	client.SetUnauthorizedHandler(sessions.Invalidate)
	return client, sessions, creds
}

func TestFullSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	backend := testbackend.New()
	defer backend.Close()

	client, sessions, creds := newStack(t, backend)

	// Cold start with nothing stored.
	state := sessions.Restore(ctx)
	require.Equal(t, session.StatusUnauthenticated, state.Status)

	// Registering does not sign the user in; a separate login follows.
	user, err := sessions.Register(ctx, api.RegisterRequest{
		Email:           "dev@example.com",
		Username:        "dev",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Password:        "hunter2",
		PasswordConfirm: "hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "dev@example.com", user.Email)
	require.False(t, sessions.State().Authenticated())

	require.True(t, sessions.Login(ctx, "dev@example.com", "hunter2"))
	state = sessions.State()
	require.True(t, state.Authenticated())
	require.Equal(t, "Ada Lovelace", state.User.DisplayName())

	// Tokens are persisted for the next process start.
	pair, ok, err := creds.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	// Work with the tracker through the authenticated client.
	project, err := client.CreateProject(ctx, api.ProjectRequest{Name: "Backend"})
	require.NoError(t, err)

	issue, err := client.CreateIssueForProject(ctx, project.ID, api.IssueRequest{
		Title:    "Crash on login",
		Priority: api.PriorityCritical,
	})
	require.NoError(t, err)

	_, err = client.CreateCommentForIssue(ctx, issue.ID, api.CommentRequest{Content: "On it."})
	require.NoError(t, err)

	issue, err = client.UpdateIssueStatus(ctx, issue.ID, api.StatusInProgress)
	require.NoError(t, err)
	require.Equal(t, api.StatusInProgress, issue.Status)
	require.Equal(t, 1, issue.CommentCount)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backend := testbackend.New()
	defer backend.Close()

	dir := t.TempDir()
	backend.AddUser("dev@example.com", "hunter2", "dev")

	open := func() (*api.Client, *session.Manager, func()) {
		sqliteStore, err := credstore.OpenSQLite(filepath.Join(dir, "credentials.db"))
		require.NoError(t, err)
		creds, err := credstore.NewSealedStore(sqliteStore, filepath.Join(dir, "bugdeck.key"))
		require.NoError(t, err)
		client := api.NewClient(backend.URL(), creds, 5*time.Second, nil)
		sessions := session.NewManager(client, creds, nil)
		client.SetUnauthorizedHandler(sessions.Invalidate)
		return client, sessions, func() { sqliteStore.Close() }
	}

	client, sessions, closeFirst := open()
	require.True(t, sessions.Login(ctx, "dev@example.com", "hunter2"))
	_, err := client.CreateProject(ctx, api.ProjectRequest{Name: "Backend"})
	require.NoError(t, err)
	closeFirst()

	// A new process picks the session back up from disk.
	client, sessions, closeSecond := open()
	defer closeSecond()

	state := sessions.Restore(ctx)
	require.True(t, state.Authenticated())
	require.Equal(t, "dev@example.com", state.User.Email)

	projects, err := client.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
}

func TestTokenRevocationInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	backend := testbackend.New()
	defer backend.Close()

	backend.AddUser("dev@example.com", "hunter2", "dev")
	client, sessions, creds := newStack(t, backend)

	require.True(t, sessions.Login(ctx, "dev@example.com", "hunter2"))

	var notified []session.State
	sessions.SetOnChange(func(s session.State) { notified = append(notified, s) })

	// Backend-side expiry: the next request comes back 401, the client
	// clears the stored pair and the session manager is invalidated.
	backend.RevokeTokens()

	_, err := client.ListProjects(ctx)
	require.True(t, api.IsUnauthorized(err))

	state := sessions.State()
	require.Equal(t, session.StatusUnauthenticated, state.Status)
	require.Equal(t, "Session expired", state.Err)
	require.NotEmpty(t, notified)

	_, ok, err := creds.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Restore after expiry settles without touching the network.
	state = sessions.Restore(ctx)
	require.Equal(t, session.StatusUnauthenticated, state.Status)

	// Logging back in recovers cleanly.
	require.True(t, sessions.Login(ctx, "dev@example.com", "hunter2"))
	require.True(t, sessions.State().Authenticated())
}

func TestLogoutEndsSessionEverywhere(t *testing.T) {
	ctx := context.Background()
	backend := testbackend.New()
	defer backend.Close()

	backend.AddUser("dev@example.com", "hunter2", "dev")
	client, sessions, creds := newStack(t, backend)

	require.True(t, sessions.Login(ctx, "dev@example.com", "hunter2"))
	pair, ok, err := creds.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	sessions.Logout(ctx)
	require.Equal(t, session.StatusUnauthenticated, sessions.State().Status)

	_, ok, err = creds.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// The backend no longer honors the old access token.
	require.NoError(t, creds.Save(ctx, pair))
	_, err = client.CurrentUser(ctx)
	require.True(t, api.IsUnauthorized(err))
}
