// Package session owns the client's authentication lifecycle: restoring a
// session from stored credentials at startup, logging in and out, and
// absorbing forced invalidation when the backend rejects the access token.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/credstore"
)

// Status is the session lifecycle state.
type Status string

const (
	// StatusLoading covers startup and in-flight auth operations.
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State is a snapshot of the session. Err carries the last normalized
// failure message while the session is unauthenticated.
type State struct {
	Status Status
	User   *api.User
	Err    string
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// AuthClient is the slice of the API client the manager drives.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*api.TokenPairResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Manager is the session state machine. Construct one per client process and
// pass it explicitly; there is no package-level instance.
type Manager struct {
	auth   AuthClient
	creds  credstore.Store
	logger *slog.Logger

	// opMu serializes auth operations so overlapping calls cannot race on
	// the final state assignment.
	opMu sync.Mutex

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// NewManager creates a session manager in the Loading state. Call Restore to
// resolve it.
func NewManager(auth AuthClient, creds credstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		auth:   auth,
		creds:  creds,
		logger: logger,
		state:  State{Status: StatusLoading},
	}
}

// SetOnChange registers a callback invoked after every state transition.
func (m *Manager) SetOnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore resolves the initial session from stored credentials. With no
// stored pair it settles Unauthenticated without touching the network;
// otherwise it makes exactly one current-user fetch, clearing the store if
// the backend rejects it.
func (m *Manager) Restore(ctx context.Context) State {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	_, ok, err := m.creds.Read(ctx)
	if err != nil {
		m.logger.Error("credential read failed during restore", "error", err)
	}
	if !ok {
		return m.setState(State{Status: StatusUnauthenticated})
	}
	return m.fetchCurrentUser(ctx)
}

// Login authenticates with the backend. It reports success; on failure the
// normalized message is recorded on the session state rather than returned.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.setState(State{Status: StatusLoading})

	tokens, err := m.auth.Login(ctx, email, password)
	if err != nil {
		message := normalizeMessage(err, "Login failed")
		m.logger.Info("login rejected", "error", err)
		m.setState(State{Status: StatusUnauthenticated, Err: message})
		return false
	}

	pair := credstore.TokenPair{Access: tokens.Access, Refresh: tokens.Refresh}
	if err := m.creds.Save(ctx, pair); err != nil {
		m.logger.Error("failed to persist credentials", "error", err)
		m.setState(State{Status: StatusUnauthenticated, Err: "Login failed"})
		return false
	}

	state := m.fetchCurrentUser(ctx)
	return state.Authenticated()
}

// Register creates an account without establishing a session. The caller is
// expected to invoke Login separately.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		message := normalizeMessage(err, "Registration failed")
		m.logger.Info("registration rejected", "error", err)
		return nil, &RegistrationError{Message: message}
	}
	return &resp.User, nil
}

// Logout ends the session. The backend call is best-effort; local state and
// stored credentials are discarded regardless. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Warn("backend logout failed", "error", err)
	}
	if err := m.creds.Clear(ctx); err != nil {
		m.logger.Error("failed to clear credentials", "error", err)
	}
	m.setState(State{Status: StatusUnauthenticated})
}

// Invalidate forces the session to Unauthenticated. Wired to the HTTP
// client's 401 handler, so it can fire from any state at any time.
func (m *Manager) Invalidate() {
	m.setState(State{Status: StatusUnauthenticated, Err: "Session expired"})
}

// fetchCurrentUser performs the shared login/restore user fetch. Any failure
// clears stored credentials; callers already hold opMu.
func (m *Manager) fetchCurrentUser(ctx context.Context) State {
	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.creds.Clear(ctx); clearErr != nil {
			m.logger.Error("failed to clear credentials", "error", clearErr)
		}
		message := normalizeMessage(err, "Login failed")
		return m.setState(State{Status: StatusUnauthenticated, Err: message})
	}
	return m.setState(State{Status: StatusAuthenticated, User: user})
}

func (m *Manager) setState(state State) State {
	m.mu.Lock()
	m.state = state
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(state)
	}
	return state
}
