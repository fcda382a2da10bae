package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/models"
	"github.com/emilianohg/gitprobe/internal/report"
)

const dashboardCommits = 5

type Dashboard struct {
	session *git.Session
	width   int
	height  int

	summary *report.Summary
	user    *models.User
	userErr error
	spinner spinner.Model
	loading bool
	err     error
}

func NewDashboard(session *git.Session) *Dashboard {
	return &Dashboard{
		session: session,
		spinner: newSpinner(),
		loading: true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	summary *report.Summary
	user    *models.User
	userErr error
	err     error
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return tea.Batch(d.spinner.Tick, d.loadData)
}

func (d *Dashboard) loadData() tea.Msg {
	ctx, cancel := queryContext()
	defer cancel()

	summary, err := report.Collect(ctx, d.session, report.Options{
		Commits:       dashboardCommits,
		DefaultBranch: true,
	})
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	// A checkout without user.name or user.email still has a dashboard.
	msg := dashboardDataMsg{summary: summary}
	u, err := d.session.CurrentUser(ctx)
	if err != nil {
		msg.userErr = err
	} else {
		msg.user = &u
	}
	return msg
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.err = msg.err
		d.summary = msg.summary
		d.user = msg.user
		d.userErr = msg.userErr
		return nil

	case spinner.TickMsg:
		if !d.loading {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return Navigate("commits")
		case "t":
			return Navigate("tags")
		case "o":
			return Navigate("contributors")
		case "u":
			return Navigate("username")
		case "r":
			return Refresh()
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("GITPROBE"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Repository metadata"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString(d.spinner.View())
		b.WriteString(" Reading repository...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n")
		return b.String()
	}

	s := d.summary
	remote := s.Remote
	if remote == "" {
		remote = DimStyle.Render("no remote")
	}
	tag := s.CurrentTag
	if tag == "" {
		tag = DimStyle.Render("untagged")
	}

	stats := fmt.Sprintf(
		"Repository: %s\nBranch: %s (default %s)\nTag: %s\nWorking tree: %s",
		remote,
		s.Branch,
		s.DefaultBranch,
		tag,
		d.formatDirty(),
	)
	b.WriteString(BoxStyle.Render(stats))
	b.WriteString("\n\n")

	b.WriteString(SubtitleStyle.Render("You"))
	b.WriteString("\n")
	switch {
	case d.user != nil:
		username := d.user.Username
		if username == "" {
			username = "unknown"
		}
		b.WriteString(fmt.Sprintf("  %s <%s> @%s\n",
			NormalStyle.Render(d.user.Name),
			d.user.Email,
			username,
		))
	case d.userErr != nil:
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  %v", d.userErr)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.Commits) > 0 {
		b.WriteString(SubtitleStyle.Render("Recent commits"))
		b.WriteString("\n")
		for _, c := range s.Commits {
			b.WriteString("  ")
			b.WriteString(NormalStyle.Render(report.CommitLine(c)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(DimStyle.Render("No commits yet."))
	}

	b.WriteString("\n")

	help := "[c] Commits  [t] Tags  [o] Contributors  [u] Username lookup  [r] Refresh  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (d *Dashboard) formatDirty() string {
	if !d.summary.Dirty {
		return SuccessStyle.Render("clean")
	}
	return WarningStyle.Render(fmt.Sprintf("%d changed", len(d.summary.ChangedFiles)))
}
