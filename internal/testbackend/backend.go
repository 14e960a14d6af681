// Package testbackend is an in-memory tracker backend implementing the REST
// contract the client consumes. Tests drive the real HTTP client against it.
package testbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/bugdeck/internal/api"
)

// Backend is a fake tracker server with a single registered account.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[int64]*account
	byEmail  map[string]*account
	tokens   map[string]int64 // access token -> user ID
	projects map[int64]*api.Project
	issues   map[int64]*api.Issue
	comments map[int64]*api.Comment
	nextID   int64
	loginSeq int
}

type account struct {
	user     api.User
	password string
}

// New starts a fake backend. Callers own Server.Close via Close.
func New() *Backend {
	b := &Backend{
		users:    make(map[int64]*account),
		byEmail:  make(map[string]*account),
		tokens:   make(map[string]int64),
		projects: make(map[int64]*api.Project),
		issues:   make(map[int64]*api.Issue),
		comments: make(map[int64]*api.Comment),
		nextID:   1,
	}

	r := chi.NewRouter()
	r.Post("/auth/register/", b.handleRegister)
	r.Post("/auth/login/", b.handleLogin)
	r.Post("/auth/logout/", b.requireAuth(b.handleLogout))
	r.Get("/auth/users/me/", b.requireAuth(b.handleMe))

	r.Get("/projects/", b.requireAuth(b.handleListProjects))
	r.Post("/projects/", b.requireAuth(b.handleCreateProject))
	r.Get("/projects/{id}/", b.requireAuth(b.handleGetProject))
	r.Patch("/projects/{id}/", b.requireAuth(b.handleUpdateProject))
	r.Delete("/projects/{id}/", b.requireAuth(b.handleDeleteProject))
	r.Get("/projects/{id}/issues/", b.requireAuth(b.handleProjectIssues))

	r.Get("/issues/", b.requireAuth(b.handleListIssues))
	r.Post("/issues/", b.requireAuth(b.handleCreateIssue))
	r.Get("/issues/{id}/", b.requireAuth(b.handleGetIssue))
	r.Patch("/issues/{id}/", b.requireAuth(b.handleUpdateIssue))
	r.Delete("/issues/{id}/", b.requireAuth(b.handleDeleteIssue))
	r.Post("/issues/create-for-project/{projectId}/", b.requireAuth(b.handleCreateIssueForProject))
	r.Patch("/issues/{id}/update_status/", b.requireAuth(b.handleUpdateStatus))
	r.Patch("/issues/{id}/assign/", b.requireAuth(b.handleAssign))

	r.Get("/comments/", b.requireAuth(b.handleListComments))
	r.Post("/comments/", b.requireAuth(b.handleCreateComment))
	r.Get("/comments/{id}/", b.requireAuth(b.handleGetComment))
	r.Patch("/comments/{id}/", b.requireAuth(b.handleUpdateComment))
	r.Delete("/comments/{id}/", b.requireAuth(b.handleDeleteComment))
	r.Post("/comments/create-for-issue/{issueId}/", b.requireAuth(b.handleCreateCommentForIssue))

	b.Server = httptest.NewServer(r)
	return b
}

// Close shuts the fake backend down.
func (b *Backend) Close() {
	b.Server.Close()
}

// URL returns the backend base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// AddUser registers an account directly, bypassing the HTTP surface.
func (b *Backend) AddUser(email, password, username string) api.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	user := api.User{ID: b.allocID(), Email: email, Username: username}
	acct := &account{user: user, password: password}
	b.users[user.ID] = acct
	b.byEmail[email] = acct
	return user
}

// RevokeTokens invalidates every issued access token, simulating expiry.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]int64)
}

// AddProject seeds a project.
func (b *Backend) AddProject(name, description string) api.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	project := api.Project{
		ID:          b.allocID(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	b.projects[project.ID] = &project
	return project
}

// AddIssue seeds an issue under a project.
func (b *Backend) AddIssue(projectID int64, title string, status api.IssueStatus, priority api.IssuePriority) api.Issue {
	b.mu.Lock()
	defer b.mu.Unlock()
	issue := api.Issue{
		ID:        b.allocID(),
		Title:     title,
		Status:    status,
		Priority:  priority,
		Project:   projectID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if project, ok := b.projects[projectID]; ok {
		issue.ProjectName = project.Name
		project.IssueCount++
	}
	b.issues[issue.ID] = &issue
	return issue
}

// allocID must be called with the lock held.
func (b *Backend) allocID() int64 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		b.mu.Lock()
		userID, ok := b.tokens[token]
		b.mu.Unlock()

		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "Unauthorized",
				"message": "Authentication credentials were not provided or are invalid.",
			})
			return
		}
		r.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
		next(w, r)
	}
}

func (b *Backend) currentUser(r *http.Request) *account {
	id, _ := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.users[id]
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}
	if req.Password != req.PasswordConfirm {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"password": {"Passwords do not match."}})
		return
	}

	b.mu.Lock()
	if _, exists := b.byEmail[req.Email]; exists {
		b.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {"A user with that email already exists."}})
		return
	}
	user := api.User{
		ID:        b.allocID(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	acct := &account{user: user, password: req.Password}
	b.users[user.ID] = acct
	b.byEmail[user.Email] = acct
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, api.RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.byEmail[req.Email]
	if !ok || acct.password != req.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid credentials"})
		return
	}

	b.loginSeq++
	access := fmt.Sprintf("access-%d", b.loginSeq)
	refresh := fmt.Sprintf("refresh-%d", b.loginSeq)
	b.tokens[access] = acct.user.ID
	writeJSON(w, http.StatusOK, api.TokenPairResponse{Access: access, Refresh: refresh})
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	b.mu.Lock()
	delete(b.tokens, token)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	acct := b.currentUser(r)
	if acct == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "User not found."})
		return
	}
	writeJSON(w, http.StatusOK, acct.user)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id
}
