package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/bugdeck/internal/api"
)

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.viewMode {
	case ViewLogin:
		body = m.viewLogin()
	case ViewRegister:
		body = m.viewRegister()
	case ViewProjects:
		body = m.viewProjects()
	case ViewNewProject:
		body = m.viewNewProject()
	case ViewIssues:
		body = m.viewIssues()
	case ViewNewIssue:
		body = m.viewNewIssue()
	case ViewIssueDetail:
		body = m.viewIssueDetail()
	case ViewNewComment:
		body = m.viewNewComment()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("bugdeck"),
		body,
		m.viewStatusBar(),
	)
}

func (m Model) viewStatusBar() string {
	var parts []string
	if m.loading {
		parts = append(parts, "working...")
	}
	if m.state.Authenticated() && m.state.User != nil {
		parts = append(parts, m.state.User.DisplayName())
	}
	parts = append(parts, m.helpLine())
	return StatusBarStyle.Render(strings.Join(parts, "  •  "))
}

func (m Model) helpLine() string {
	pair := func(k, d string) string {
		return HelpKeyStyle.Render(k) + HelpDescStyle.Render(" "+d)
	}
	switch m.viewMode {
	case ViewLogin:
		return pair("enter", "log in") + "  " + pair("ctrl+r", "register") + "  " + pair("ctrl+c", "quit")
	case ViewRegister:
		return pair("enter", "create account") + "  " + pair("esc", "back")
	case ViewProjects:
		return pair("enter", "open") + "  " + pair("n", "new") + "  " + pair("r", "refresh") + "  " + pair("ctrl+l", "log out") + "  " + pair("q", "quit")
	case ViewIssues:
		return pair("enter", "open") + "  " + pair("n", "new") + "  " + pair("s", "status") + "  " + pair("p", "priority") + "  " + pair("/", "search") + "  " + pair("esc", "back")
	case ViewIssueDetail:
		return pair("c", "comment") + "  " + pair("t", "cycle status") + "  " + pair("a", "assign to me") + "  " + pair("esc", "back")
	case ViewNewComment:
		return pair("enter", "post") + "  " + pair("esc", "cancel")
	default:
		return pair("enter", "save") + "  " + pair("tab", "next field") + "  " + pair("esc", "cancel")
	}
}

func (m Model) viewMessages() string {
	var b strings.Builder
	if m.errText != "" {
		b.WriteString(ErrorStyle.Render(m.errText) + "\n")
	}
	if m.notice != "" {
		b.WriteString(SuccessStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Sign in") + "\n\n")
	b.WriteString(m.loginInputs[0].View() + "\n")
	b.WriteString(m.loginInputs[1].View() + "\n\n")
	b.WriteString(m.viewMessages())
	return FormStyle.Render(b.String())
}

func (m Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Create account") + "\n\n")
	for i := range m.regInputs {
		b.WriteString(m.regInputs[i].View() + "\n")
	}
	b.WriteString("\n" + m.viewMessages())
	return FormStyle.Render(b.String())
}

func (m Model) viewProjects() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Projects") + "\n\n")

	if len(m.projects) == 0 && !m.loading {
		b.WriteString(DimStyle.Render("No projects yet. Press n to create one.") + "\n")
	}
	for i, project := range m.projects {
		line := fmt.Sprintf("%s %s", project.Name,
			ListMetaStyle.Render(fmt.Sprintf("(%d issues)", project.IssueCount)))
		if i == m.projectIdx {
			b.WriteString(ListSelectedStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(ListItemStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + m.viewMessages())
	return PanelStyle.Render(b.String())
}

func (m Model) viewNewProject() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New project") + "\n\n")
	b.WriteString(m.projectInputs[0].View() + "\n")
	b.WriteString(m.projectInputs[1].View() + "\n\n")
	b.WriteString(m.viewMessages())
	return FormStyle.Render(b.String())
}

func (m Model) viewIssues() string {
	var b strings.Builder
	title := "Issues"
	if m.projectIdx < len(m.projects) {
		title = m.projects[m.projectIdx].Name
	}
	b.WriteString(TitleStyle.Render(title) + "  " + m.filterBadge() + "\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View() + "\n\n")
	}
	if len(m.issues) == 0 && !m.loading {
		b.WriteString(DimStyle.Render("No issues match.") + "\n")
	}
	for i, issue := range m.issues {
		line := fmt.Sprintf("%s %s %s %s",
			statusBadge(issue.Status),
			priorityBadge(issue.Priority),
			issue.Title,
			ListMetaStyle.Render(fmt.Sprintf("#%d", issue.ID)))
		if i == m.issueIdx {
			b.WriteString(ListSelectedStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(ListItemStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + m.viewMessages())
	return PanelStyle.Render(b.String())
}

func (m Model) filterBadge() string {
	var parts []string
	if m.filter.Status != "" {
		parts = append(parts, "status="+string(m.filter.Status))
	}
	if m.filter.Priority != "" {
		parts = append(parts, "priority="+string(m.filter.Priority))
	}
	if m.filter.Search != "" {
		parts = append(parts, "search="+m.filter.Search)
	}
	if len(parts) == 0 {
		return ""
	}
	return DimStyle.Render("[" + strings.Join(parts, " ") + "]")
}

func (m Model) viewNewIssue() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New issue") + "\n\n")
	b.WriteString(m.issueInputs[0].View() + "\n")
	b.WriteString(m.issueInputs[1].View() + "\n")
	b.WriteString(FormLabelStyle.Render("Priority: ") +
		priorityBadge(priorityOrder[m.priorityIdx]) +
		DimStyle.Render("  (ctrl+p to change)") + "\n\n")
	b.WriteString(m.viewMessages())
	return FormStyle.Render(b.String())
}

func (m Model) viewIssueDetail() string {
	issue := m.currentIssue
	if issue == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("#%d %s", issue.ID, issue.Title)) + "\n")
	b.WriteString(statusBadge(issue.Status) + " " + priorityBadge(issue.Priority) + "\n\n")

	if issue.Description != "" {
		b.WriteString(issue.Description + "\n\n")
	}
	meta := []string{"project: " + issue.ProjectName}
	if issue.ReporterName != "" {
		meta = append(meta, "reporter: "+issue.ReporterName)
	}
	if issue.AssigneeName != "" {
		meta = append(meta, "assignee: "+issue.AssigneeName)
	} else {
		meta = append(meta, "unassigned")
	}
	b.WriteString(ListMetaStyle.Render(strings.Join(meta, "  •  ")) + "\n\n")

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Comments (%d)", len(m.comments))) + "\n")
	if len(m.comments) == 0 {
		b.WriteString(DimStyle.Render("No comments yet.") + "\n")
	}
	for _, comment := range m.comments {
		author := comment.AuthorName
		if author == "" {
			author = comment.AuthorEmail
		}
		b.WriteString(CommentAuthorStyle.Render(author) + " " +
			ListMetaStyle.Render(comment.CreatedAt.Format("2006-01-02 15:04")) + "\n")
		b.WriteString("  " + comment.Content + "\n")
	}
	b.WriteString("\n" + m.viewMessages())
	return PanelStyle.Render(b.String())
}

func (m Model) viewNewComment() string {
	var b strings.Builder
	title := "New comment"
	if m.currentIssue != nil {
		title = fmt.Sprintf("Comment on #%d", m.currentIssue.ID)
	}
	b.WriteString(TitleStyle.Render(title) + "\n\n")
	b.WriteString(m.commentInput.View() + "\n\n")
	b.WriteString(m.viewMessages())
	return FormStyle.Render(b.String())
}

func statusBadge(s api.IssueStatus) string {
	switch s {
	case api.StatusInProgress:
		return StatusInProgressStyle.Render("◐ in progress")
	case api.StatusClosed:
		return StatusClosedStyle.Render("● closed")
	default:
		return StatusOpenStyle.Render("○ open")
	}
}

func priorityBadge(p api.IssuePriority) string {
	switch p {
	case api.PriorityLow:
		return PriorityLowStyle.Render("low")
	case api.PriorityHigh:
		return PriorityHighStyle.Render("high")
	case api.PriorityCritical:
		return PriorityCriticalStyle.Render("critical")
	default:
		return PriorityMediumStyle.Render("medium")
	}
}
