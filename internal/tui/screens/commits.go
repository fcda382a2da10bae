package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/models"
	"github.com/emilianohg/gitprobe/internal/report"
)

type Commits struct {
	session *git.Session
	limit   int
	width   int
	height  int

	commits  []models.Commit
	cursor   int
	expanded bool
	loading  bool
}

func NewCommits(session *git.Session, limit int) *Commits {
	return &Commits{session: session, limit: limit}
}

func (c *Commits) SetSize(width, height int) {
	c.width = width
	c.height = height
}

type commitsDataMsg struct {
	commits []models.Commit
}

func (c *Commits) Init() tea.Cmd {
	c.loading = true
	c.expanded = false
	return c.loadData
}

func (c *Commits) loadData() tea.Msg {
	ctx, cancel := queryContext()
	defer cancel()
	return commitsDataMsg{commits: c.session.Repository().LastCommits(ctx, c.limit)}
}

func (c *Commits) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case commitsDataMsg:
		c.loading = false
		c.commits = msg.commits
		c.cursor = moveCursor(c.cursor, 0, len(c.commits))
		return nil

	case RefreshMsg:
		return c.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			c.cursor = moveCursor(c.cursor, -1, len(c.commits))
		case "down", "j":
			c.cursor = moveCursor(c.cursor, 1, len(c.commits))
		case "enter":
			c.expanded = !c.expanded
		case "q", "esc":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (c *Commits) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("COMMITS"))
	b.WriteString("\n\n")

	if c.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(c.commits) == 0 {
		b.WriteString(DimStyle.Render("No commits."))
		b.WriteString("\n")
	}

	for i, commit := range c.commits {
		cursor := "  "
		style := NormalStyle
		if i == c.cursor {
			cursor = "> "
			style = SelectedStyle
		}
		b.WriteString(style.Render(cursor + report.CommitLine(commit)))
		b.WriteString("\n")

		if i == c.cursor && c.expanded {
			b.WriteString(DimStyle.Render(fmt.Sprintf("    %s\n    %s <%s>\n    %s",
				commit.Hash,
				commit.Author.Name,
				commit.Author.Email,
				commit.Date,
			)))
			b.WriteString("\n")
		}
	}

	b.WriteString(HelpStyle.Render("[enter] Details  [q] Back"))
	return b.String()
}
