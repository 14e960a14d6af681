package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/session"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewLogin ViewMode = iota
	ViewRegister
	ViewProjects
	ViewNewProject
	ViewIssues
	ViewNewIssue
	ViewIssueDetail
	ViewNewComment
)

// Register form field order.
const (
	regEmail = iota
	regUsername
	regFirstName
	regLastName
	regPassword
	regConfirm
	regFieldCount
)

// Model is the root Bubble Tea model
type Model struct {
	width  int
	height int
	ready  bool

	viewMode ViewMode
	keys     KeyMap

	sessions *session.Manager
	client   *api.Client

	state   session.State
	loading bool
	errText string
	notice  string

	// Login form
	loginInputs [2]textinput.Model
	loginFocus  int

	// Register form
	regInputs [regFieldCount]textinput.Model
	regFocus  int

	// Projects
	projects   []api.Project
	projectIdx int

	// New project form
	projectInputs [2]textinput.Model
	projectFocus  int

	// Issues
	issues      []api.Issue
	issueIdx    int
	filter      api.IssueFilter
	searchInput textinput.Model
	searching   bool

	// New issue form
	issueInputs [2]textinput.Model
	issueFocus  int
	priorityIdx int

	// Issue detail
	currentIssue *api.Issue
	comments     []api.Comment

	// Comment form
	commentInput textinput.Model
}

var priorityOrder = []api.IssuePriority{
	api.PriorityLow, api.PriorityMedium, api.PriorityHigh, api.PriorityCritical,
}

var statusOrder = []api.IssueStatus{
	api.StatusOpen, api.StatusInProgress, api.StatusClosed,
}

// NewModel creates the root model. The session manager and client are shared
// with the rest of the process.
func NewModel(sessions *session.Manager, client *api.Client) Model {
	m := Model{
		viewMode: ViewLogin,
		keys:     DefaultKeyMap(),
		sessions: sessions,
		client:   client,
		state:    sessions.State(),
		loading:  true,
	}

	m.loginInputs[0] = newInput("email", "Email: ", false)
	m.loginInputs[1] = newInput("password", "Password: ", true)
	m.loginInputs[0].Focus()

	m.regInputs[regEmail] = newInput("email", "Email: ", false)
	m.regInputs[regUsername] = newInput("username", "Username: ", false)
	m.regInputs[regFirstName] = newInput("first name", "First name: ", false)
	m.regInputs[regLastName] = newInput("last name", "Last name: ", false)
	m.regInputs[regPassword] = newInput("password", "Password: ", true)
	m.regInputs[regConfirm] = newInput("repeat password", "Confirm: ", true)

	m.projectInputs[0] = newInput("name", "Name: ", false)
	m.projectInputs[1] = newInput("description", "Description: ", false)

	m.issueInputs[0] = newInput("title", "Title: ", false)
	m.issueInputs[1] = newInput("description", "Description: ", false)

	m.searchInput = newInput("search", "/ ", false)
	m.commentInput = newInput("write a comment", "> ", false)

	return m
}

func newInput(placeholder, prompt string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.PromptStyle = FormLabelStyle
	ti.CharLimit = 200
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	return ti
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restoreSessionCmd())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Quit) && !m.typing() {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case sessionRestoredMsg:
		m.loading = false
		m.state = msg.state
		if m.state.Authenticated() {
			m.viewMode = ViewProjects
			m.loading = true
			return m, m.loadProjectsCmd()
		}
		m.viewMode = ViewLogin
		return m, nil

	case loginFinishedMsg:
		m.loading = false
		m.state = msg.state
		if m.state.Authenticated() {
			m.errText = ""
			m.viewMode = ViewProjects
			m.loading = true
			return m, m.loadProjectsCmd()
		}
		m.errText = m.state.Err
		return m, nil

	case registerFinishedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		// Registration does not log the user in; drop back to the login
		// form with the email pre-filled.
		m.notice = "Account created. Log in to continue."
		m.errText = ""
		m.loginInputs[0].SetValue(m.regInputs[regEmail].Value())
		m.loginInputs[1].SetValue("")
		m.viewMode = ViewLogin
		m.setLoginFocus(1)
		return m, nil

	case loggedOutMsg:
		return m.toLogin(""), nil

	case SessionChangedMsg:
		m.state = msg.State
		if !m.state.Authenticated() && m.viewMode > ViewRegister {
			return m.toLogin(m.state.Err), nil
		}
		return m, nil

	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.projects = msg.projects
		if m.projectIdx >= len(m.projects) {
			m.projectIdx = 0
		}
		return m, nil

	case projectCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.viewMode = ViewProjects
		m.loading = true
		return m, m.loadProjectsCmd()

	case issuesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.issues = msg.issues
		if m.issueIdx >= len(m.issues) {
			m.issueIdx = 0
		}
		return m, nil

	case issueLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.currentIssue = msg.issue
		m.comments = msg.comments
		m.viewMode = ViewIssueDetail
		return m, nil

	case issueCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.viewMode = ViewIssues
		m.loading = true
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)

	case issueUpdatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.currentIssue = msg.issue
		return m, nil

	case commentCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleAPIError(msg.err)
		}
		m.viewMode = ViewIssueDetail
		m.commentInput.SetValue("")
		if m.currentIssue != nil {
			m.loading = true
			return m, m.loadIssueCmd(m.currentIssue.ID)
		}
		return m, nil
	}

	return m, nil
}

// typing reports whether a text input currently has focus, so plain
// letter keys must pass through instead of triggering bindings.
func (m Model) typing() bool {
	switch m.viewMode {
	case ViewLogin, ViewRegister, ViewNewProject, ViewNewIssue, ViewNewComment:
		return true
	case ViewIssues:
		return m.searching
	}
	return false
}

func (m Model) toLogin(errText string) Model {
	m.viewMode = ViewLogin
	m.errText = errText
	m.notice = ""
	m.loading = false
	m.projects = nil
	m.issues = nil
	m.currentIssue = nil
	m.comments = nil
	m.loginInputs[1].SetValue("")
	m.setLoginFocus(0)
	return m
}

// handleAPIError routes 401s back to the login screen; everything else
// stays on the current view with the message shown.
func (m Model) handleAPIError(err error) (tea.Model, tea.Cmd) {
	if api.IsUnauthorized(err) {
		return m.toLogin(m.sessions.State().Err), nil
	}
	m.errText = err.Error()
	return m, nil
}

func (m Model) selectedProjectID() int64 {
	if m.projectIdx < len(m.projects) {
		return m.projects[m.projectIdx].ID
	}
	return 0
}

func (m *Model) setLoginFocus(idx int) {
	m.loginFocus = idx
	for i := range m.loginInputs {
		if i == idx {
			m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
}

func (m *Model) setRegFocus(idx int) {
	m.regFocus = idx
	for i := range m.regInputs {
		if i == idx {
			m.regInputs[i].Focus()
		} else {
			m.regInputs[i].Blur()
		}
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewLogin:
		return m.updateLogin(msg)
	case ViewRegister:
		return m.updateRegister(msg)
	case ViewProjects:
		return m.updateProjects(msg)
	case ViewNewProject:
		return m.updateNewProject(msg)
	case ViewIssues:
		return m.updateIssues(msg)
	case ViewNewIssue:
		return m.updateNewIssue(msg)
	case ViewIssueDetail:
		return m.updateIssueDetail(msg)
	case ViewNewComment:
		return m.updateNewComment(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Register):
		m.viewMode = ViewRegister
		m.errText = ""
		m.notice = ""
		m.setRegFocus(0)
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.setLoginFocus((m.loginFocus + 1) % len(m.loginInputs))
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		email := m.loginInputs[0].Value()
		password := m.loginInputs[1].Value()
		if email == "" || password == "" {
			m.errText = "Email and password are required"
			return m, nil
		}
		m.loading = true
		m.errText = ""
		m.notice = ""
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewLogin
		m.errText = ""
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.setRegFocus((m.regFocus + 1) % regFieldCount)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		req := api.RegisterRequest{
			Email:           m.regInputs[regEmail].Value(),
			Username:        m.regInputs[regUsername].Value(),
			FirstName:       m.regInputs[regFirstName].Value(),
			LastName:        m.regInputs[regLastName].Value(),
			Password:        m.regInputs[regPassword].Value(),
			PasswordConfirm: m.regInputs[regConfirm].Value(),
		}
		if req.Email == "" || req.Username == "" || req.Password == "" {
			m.errText = "Email, username and password are required"
			return m, nil
		}
		m.loading = true
		m.errText = ""
		return m, m.registerCmd(req)
	}

	var cmd tea.Cmd
	m.regInputs[m.regFocus], cmd = m.regInputs[m.regFocus].Update(msg)
	return m, cmd
}

func (m Model) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.projectIdx > 0 {
			m.projectIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.projectIdx < len(m.projects)-1 {
			m.projectIdx++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(m.projects) == 0 {
			return m, nil
		}
		m.viewMode = ViewIssues
		m.filter = api.IssueFilter{}
		m.issueIdx = 0
		m.loading = true
		m.errText = ""
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
	case key.Matches(msg, m.keys.New):
		m.viewMode = ViewNewProject
		m.projectInputs[0].SetValue("")
		m.projectInputs[1].SetValue("")
		m.projectFocus = 0
		m.projectInputs[0].Focus()
		m.projectInputs[1].Blur()
		m.errText = ""
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadProjectsCmd()
	case key.Matches(msg, m.keys.Logout):
		m.loading = true
		return m, m.logoutCmd()
	}
	return m, nil
}

func (m Model) updateNewProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewProjects
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.projectFocus = (m.projectFocus + 1) % len(m.projectInputs)
		for i := range m.projectInputs {
			if i == m.projectFocus {
				m.projectInputs[i].Focus()
			} else {
				m.projectInputs[i].Blur()
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		name := m.projectInputs[0].Value()
		if name == "" {
			m.errText = "Project name is required"
			return m, nil
		}
		m.loading = true
		return m, m.createProjectCmd(api.ProjectRequest{
			Name:        name,
			Description: m.projectInputs[1].Value(),
		})
	}

	var cmd tea.Cmd
	m.projectInputs[m.projectFocus], cmd = m.projectInputs[m.projectFocus].Update(msg)
	return m, cmd
}

func (m Model) updateIssues(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.filter.Search = ""
			m.loading = true
			return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
		case key.Matches(msg, m.keys.Enter):
			m.searching = false
			m.searchInput.Blur()
			m.filter.Search = m.searchInput.Value()
			m.loading = true
			return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.issueIdx > 0 {
			m.issueIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.issueIdx < len(m.issues)-1 {
			m.issueIdx++
		}
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewProjects
		m.errText = ""
	case key.Matches(msg, m.keys.Enter):
		if len(m.issues) == 0 {
			return m, nil
		}
		m.loading = true
		m.errText = ""
		return m, m.loadIssueCmd(m.issues[m.issueIdx].ID)
	case key.Matches(msg, m.keys.New):
		m.viewMode = ViewNewIssue
		m.issueInputs[0].SetValue("")
		m.issueInputs[1].SetValue("")
		m.issueFocus = 0
		m.issueInputs[0].Focus()
		m.issueInputs[1].Blur()
		m.priorityIdx = 1 // medium
		m.errText = ""
	case key.Matches(msg, m.keys.FilterStatus):
		m.filter.Status = nextStatusFilter(m.filter.Status)
		m.loading = true
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
	case key.Matches(msg, m.keys.FilterPrio):
		m.filter.Priority = nextPriorityFilter(m.filter.Priority)
		m.loading = true
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.filter.Search)
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
	}
	return m, nil
}

func (m Model) updateNewIssue(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewIssues
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.issueFocus = (m.issueFocus + 1) % len(m.issueInputs)
		for i := range m.issueInputs {
			if i == m.issueFocus {
				m.issueInputs[i].Focus()
			} else {
				m.issueInputs[i].Blur()
			}
		}
		return m, nil
	case msg.Type == tea.KeyCtrlP:
		m.priorityIdx = (m.priorityIdx + 1) % len(priorityOrder)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		title := m.issueInputs[0].Value()
		if title == "" {
			m.errText = "Issue title is required"
			return m, nil
		}
		m.loading = true
		return m, m.createIssueCmd(m.selectedProjectID(), api.IssueRequest{
			Title:       title,
			Description: m.issueInputs[1].Value(),
			Priority:    priorityOrder[m.priorityIdx],
		})
	}

	var cmd tea.Cmd
	m.issueInputs[m.issueFocus], cmd = m.issueInputs[m.issueFocus].Update(msg)
	return m, cmd
}

func (m Model) updateIssueDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentIssue == nil {
		m.viewMode = ViewIssues
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewIssues
		m.errText = ""
		m.loading = true
		return m, m.loadIssuesCmd(m.selectedProjectID(), m.filter)
	case key.Matches(msg, m.keys.Comment):
		m.viewMode = ViewNewComment
		m.commentInput.SetValue("")
		m.commentInput.Focus()
		m.errText = ""
		return m, textinput.Blink
	case key.Matches(msg, m.keys.CycleStatus):
		m.loading = true
		return m, m.updateStatusCmd(m.currentIssue.ID, nextStatus(m.currentIssue.Status))
	case key.Matches(msg, m.keys.AssignToMe):
		if m.state.User == nil {
			return m, nil
		}
		m.loading = true
		return m, m.assignIssueCmd(m.currentIssue.ID, m.state.User.ID)
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadIssueCmd(m.currentIssue.ID)
	}
	return m, nil
}

func (m Model) updateNewComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewIssueDetail
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		content := m.commentInput.Value()
		if content == "" || m.currentIssue == nil {
			return m, nil
		}
		m.loading = true
		return m, m.addCommentCmd(m.currentIssue.ID, content)
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func nextStatus(s api.IssueStatus) api.IssueStatus {
	for i, cur := range statusOrder {
		if cur == s {
			return statusOrder[(i+1)%len(statusOrder)]
		}
	}
	return api.StatusOpen
}

// nextStatusFilter cycles all -> open -> in_progress -> closed -> all.
func nextStatusFilter(s api.IssueStatus) api.IssueStatus {
	switch s {
	case "":
		return api.StatusOpen
	case api.StatusOpen:
		return api.StatusInProgress
	case api.StatusInProgress:
		return api.StatusClosed
	default:
		return ""
	}
}

func nextPriorityFilter(p api.IssuePriority) api.IssuePriority {
	switch p {
	case "":
		return api.PriorityLow
	case api.PriorityLow:
		return api.PriorityMedium
	case api.PriorityMedium:
		return api.PriorityHigh
	case api.PriorityHigh:
		return api.PriorityCritical
	default:
		return ""
	}
}
