package testbackend

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/bugdeck/internal/api"
)

func (b *Backend) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	projects := make([]api.Project, 0, len(b.projects))
	for _, project := range b.projects {
		projects = append(projects, *project)
	}
	b.mu.Unlock()

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	writeJSON(w, http.StatusOK, projects)
}

func (b *Backend) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req api.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"name": {"This field is required."}})
		return
	}

	acct := b.currentUser(r)

	b.mu.Lock()
	project := api.Project{
		ID:          b.allocID(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if acct != nil {
		id := acct.user.ID
		project.CreatedBy = &id
		project.CreatedByName = acct.user.DisplayName()
	}
	b.projects[project.ID] = &project
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, project)
}

func (b *Backend) handleGetProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	project, ok := b.projects[pathID(r, "id")]
	b.mu.Unlock()
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *project)
}

func (b *Backend) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req api.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	project, ok := b.projects[pathID(r, "id")]
	if ok {
		if req.Name != "" {
			project.Name = req.Name
		}
		if req.Description != "" {
			project.Description = req.Description
		}
		project.UpdatedAt = time.Now().UTC()
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *project)
}

func (b *Backend) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	_, ok := b.projects[id]
	delete(b.projects, id)
	for issueID, issue := range b.issues {
		if issue.Project == id {
			delete(b.issues, issueID)
		}
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleProjectIssues(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "id")

	b.mu.Lock()
	_, ok := b.projects[projectID]
	b.mu.Unlock()
	if !ok {
		writeNotFound(w)
		return
	}

	writeJSON(w, http.StatusOK, b.filterIssues(r, projectID))
}

func (b *Backend) handleListIssues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.filterIssues(r, 0))
}

func (b *Backend) filterIssues(r *http.Request, projectID int64) []api.Issue {
	status := r.URL.Query().Get("status")
	priority := r.URL.Query().Get("priority")
	search := strings.ToLower(r.URL.Query().Get("search"))

	b.mu.Lock()
	defer b.mu.Unlock()

	issues := make([]api.Issue, 0)
	for _, issue := range b.issues {
		if projectID > 0 && issue.Project != projectID {
			continue
		}
		if status != "" && string(issue.Status) != status {
			continue
		}
		if priority != "" && string(issue.Priority) != priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) {
			continue
		}
		issues = append(issues, *issue)
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })
	return issues
}

func (b *Backend) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req api.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"title": {"This field is required."}})
		return
	}
	b.createIssue(w, r, req.Project, req)
}

func (b *Backend) handleCreateIssueForProject(w http.ResponseWriter, r *http.Request) {
	var req api.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"title": {"This field is required."}})
		return
	}
	b.createIssue(w, r, pathID(r, "projectId"), req)
}

func (b *Backend) createIssue(w http.ResponseWriter, r *http.Request, projectID int64, req api.IssueRequest) {
	acct := b.currentUser(r)

	b.mu.Lock()
	project, ok := b.projects[projectID]
	if !ok {
		b.mu.Unlock()
		writeNotFound(w)
		return
	}

	issue := api.Issue{
		ID:          b.allocID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      api.StatusOpen,
		Priority:    api.PriorityMedium,
		Project:     projectID,
		ProjectName: project.Name,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if req.Status != "" {
		issue.Status = req.Status
	}
	if req.Priority != "" {
		issue.Priority = req.Priority
	}
	if acct != nil {
		id := acct.user.ID
		issue.Reporter = &id
		issue.ReporterName = acct.user.DisplayName()
	}
	project.IssueCount++
	b.issues[issue.ID] = &issue
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, issue)
}

func (b *Backend) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	issue, ok := b.issues[pathID(r, "id")]
	b.mu.Unlock()
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *issue)
}

func (b *Backend) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	var req api.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	issue, ok := b.issues[pathID(r, "id")]
	if ok {
		if req.Title != "" {
			issue.Title = req.Title
		}
		if req.Description != "" {
			issue.Description = req.Description
		}
		if req.Status != "" {
			issue.Status = req.Status
		}
		if req.Priority != "" {
			issue.Priority = req.Priority
		}
		issue.UpdatedAt = time.Now().UTC()
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *issue)
}

func (b *Backend) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	_, ok := b.issues[id]
	delete(b.issues, id)
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status api.IssueStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}
	switch req.Status {
	case api.StatusOpen, api.StatusInProgress, api.StatusClosed:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid status value."})
		return
	}

	b.mu.Lock()
	issue, ok := b.issues[pathID(r, "id")]
	if ok {
		issue.Status = req.Status
		issue.UpdatedAt = time.Now().UTC()
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *issue)
}

func (b *Backend) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssigneeID int64 `json:"assignee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	issue, issueOK := b.issues[pathID(r, "id")]
	acct, userOK := b.users[req.AssigneeID]
	if issueOK && userOK {
		id := acct.user.ID
		issue.Assignee = &id
		issue.AssigneeName = acct.user.DisplayName()
		issue.UpdatedAt = time.Now().UTC()
	}
	b.mu.Unlock()

	if !issueOK {
		writeNotFound(w)
		return
	}
	if !userOK {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid assignee."})
		return
	}
	writeJSON(w, http.StatusOK, *issue)
}

func (b *Backend) handleListComments(w http.ResponseWriter, r *http.Request) {
	issueFilter, _ := strconv.ParseInt(r.URL.Query().Get("issue"), 10, 64)

	b.mu.Lock()
	comments := make([]api.Comment, 0)
	for _, comment := range b.comments {
		if issueFilter > 0 && comment.Issue != issueFilter {
			continue
		}
		comments = append(comments, *comment)
	}
	b.mu.Unlock()

	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	writeJSON(w, http.StatusOK, comments)
}

func (b *Backend) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req api.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"content": {"This field is required."}})
		return
	}
	b.createComment(w, r, req.Issue, req.Content)
}

func (b *Backend) handleCreateCommentForIssue(w http.ResponseWriter, r *http.Request) {
	var req api.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"content": {"This field is required."}})
		return
	}
	b.createComment(w, r, pathID(r, "issueId"), req.Content)
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request, issueID int64, content string) {
	acct := b.currentUser(r)

	b.mu.Lock()
	issue, ok := b.issues[issueID]
	if !ok {
		b.mu.Unlock()
		writeNotFound(w)
		return
	}

	comment := api.Comment{
		ID:        b.allocID(),
		Content:   content,
		Issue:     issueID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if acct != nil {
		id := acct.user.ID
		comment.Author = &id
		comment.AuthorName = acct.user.DisplayName()
		comment.AuthorEmail = acct.user.Email
	}
	issue.CommentCount++
	b.comments[comment.ID] = &comment
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, comment)
}

func (b *Backend) handleGetComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	comment, ok := b.comments[pathID(r, "id")]
	b.mu.Unlock()
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *comment)
}

func (b *Backend) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var req api.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	comment, ok := b.comments[pathID(r, "id")]
	if ok && req.Content != "" {
		comment.Content = req.Content
		comment.UpdatedAt = time.Now().UTC()
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, *comment)
}

func (b *Backend) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	comment, ok := b.comments[id]
	if ok {
		if issue, issueOK := b.issues[comment.Issue]; issueOK {
			issue.CommentCount--
		}
		delete(b.comments, id)
	}
	b.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Not Found",
		"message": "The requested resource was not found.",
	})
}
