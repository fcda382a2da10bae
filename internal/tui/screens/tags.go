package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/models"
)

type Tags struct {
	session *git.Session
	width   int
	height  int

	tags    []models.Tag
	latest  string
	current string
	cursor  int
	loading bool
}

func NewTags(session *git.Session) *Tags {
	return &Tags{session: session}
}

func (t *Tags) SetSize(width, height int) {
	t.width = width
	t.height = height
}

type tagsDataMsg struct {
	tags    []models.Tag
	current string
}

func (t *Tags) Init() tea.Cmd {
	t.loading = true
	return t.loadData
}

func (t *Tags) loadData() tea.Msg {
	ctx, cancel := queryContext()
	defer cancel()

	repo := t.session.Repository()
	current, _ := repo.CurrentTag(ctx)
	return tagsDataMsg{tags: repo.Tags(ctx), current: current}
}

func (t *Tags) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tagsDataMsg:
		t.loading = false
		t.tags = msg.tags
		t.current = msg.current
		t.latest = ""
		if latest, ok := models.LatestTag(msg.tags); ok {
			t.latest = latest.Name
		}
		t.cursor = moveCursor(t.cursor, 0, len(t.tags))
		return nil

	case RefreshMsg:
		return t.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			t.cursor = moveCursor(t.cursor, -1, len(t.tags))
		case "down", "j":
			t.cursor = moveCursor(t.cursor, 1, len(t.tags))
		case "q", "esc":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (t *Tags) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TAGS"))
	b.WriteString("\n\n")

	if t.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(t.tags) == 0 {
		b.WriteString(DimStyle.Render("No tags."))
		b.WriteString("\n")
	}

	for i, tag := range t.tags {
		cursor := "  "
		style := NormalStyle
		if i == t.cursor {
			cursor = "> "
			style = SelectedStyle
		}
		if !tag.IsSemanticVersion() && i != t.cursor {
			style = DimStyle
		}

		var marks []string
		if tag.Name == t.current {
			marks = append(marks, "current")
		}
		if tag.Name == t.latest {
			marks = append(marks, "latest")
		}
		line := fmt.Sprintf("%s%-20s %s", cursor, tag.Name, tag.Date)
		b.WriteString(style.Render(line))
		if len(marks) > 0 {
			b.WriteString(" ")
			b.WriteString(SuccessStyle.Render("[" + strings.Join(marks, ", ") + "]"))
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[q] Back"))
	return b.String()
}
