package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/models"
)

type Contributors struct {
	session *git.Session
	width   int
	height  int

	contributors []models.User
	counts       map[string]int
	cursor       int
	loading      bool
}

func NewContributors(session *git.Session) *Contributors {
	return &Contributors{session: session}
}

func (c *Contributors) SetSize(width, height int) {
	c.width = width
	c.height = height
}

type contributorsDataMsg struct {
	contributors []models.User
	counts       map[string]int
}

func (c *Contributors) Init() tea.Cmd {
	c.loading = true
	return c.loadData
}

func (c *Contributors) loadData() tea.Msg {
	ctx, cancel := queryContext()
	defer cancel()

	repo := c.session.Repository()
	contributors := repo.Contributors(ctx)
	counts := make(map[string]int, len(contributors))
	for _, u := range contributors {
		counts[u.Email] = repo.CommitCount(ctx, u)
	}
	return contributorsDataMsg{contributors: contributors, counts: counts}
}

func (c *Contributors) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case contributorsDataMsg:
		c.loading = false
		c.contributors = msg.contributors
		c.counts = msg.counts
		c.cursor = moveCursor(c.cursor, 0, len(c.contributors))
		return nil

	case RefreshMsg:
		return c.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			c.cursor = moveCursor(c.cursor, -1, len(c.contributors))
		case "down", "j":
			c.cursor = moveCursor(c.cursor, 1, len(c.contributors))
		case "q", "esc":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (c *Contributors) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("CONTRIBUTORS"))
	b.WriteString("\n\n")

	if c.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(c.contributors) == 0 {
		b.WriteString(DimStyle.Render("No contributors."))
		b.WriteString("\n")
	}

	for i, u := range c.contributors {
		cursor := "  "
		style := NormalStyle
		if i == c.cursor {
			cursor = "> "
			style = SelectedStyle
		}
		line := fmt.Sprintf("%s%s <%s> (%d commits)", cursor, u.Name, u.Email, c.counts[u.Email])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[q] Back"))
	return b.String()
}
