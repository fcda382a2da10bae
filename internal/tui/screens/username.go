package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/gitprobe/internal/git"
)

// Username looks up the hosting username for a display name.
type Username struct {
	session *git.Session
	width   int
	height  int

	input    textinput.Model
	spinner  spinner.Model
	loading  bool
	lastName string
	result   string
	found    bool
	searched bool
}

func NewUsername(session *git.Session) *Username {
	ti := textinput.New()
	ti.Placeholder = "Display name"
	ti.CharLimit = 100
	ti.Width = 40

	return &Username{
		session: session,
		input:   ti,
		spinner: newSpinner(),
	}
}

func (u *Username) SetSize(width, height int) {
	u.width = width
	u.height = height
}

type usernameResultMsg struct {
	name     string
	username string
	found    bool
}

func (u *Username) Init() tea.Cmd {
	u.input.SetValue("")
	u.searched = false
	u.loading = false
	return u.input.Focus()
}

func (u *Username) lookup(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := queryContext()
		defer cancel()
		username, ok := u.session.Repository().GuessUsername(ctx, name)
		return usernameResultMsg{name: name, username: username, found: ok}
	}
}

func (u *Username) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case usernameResultMsg:
		u.loading = false
		u.searched = true
		u.lastName = msg.name
		u.result = msg.username
		u.found = msg.found
		return nil

	case spinner.TickMsg:
		if !u.loading {
			return nil
		}
		var cmd tea.Cmd
		u.spinner, cmd = u.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if u.loading {
				return nil
			}
			name := strings.TrimSpace(u.input.Value())
			u.loading = true
			return tea.Batch(u.spinner.Tick, u.lookup(name))
		case "esc":
			u.input.Blur()
			return Navigate("dashboard")
		}
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return cmd
}

func (u *Username) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("USERNAME LOOKUP"))
	b.WriteString("\n\n")

	b.WriteString("Display name:\n")
	b.WriteString(u.input.View())
	b.WriteString("\n\n")

	switch {
	case u.loading:
		b.WriteString(u.spinner.View())
		b.WriteString(" Searching...\n")
	case u.searched && u.found:
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("%s is @%s", u.displayName(), u.result)))
		b.WriteString("\n")
	case u.searched:
		b.WriteString(WarningStyle.Render(fmt.Sprintf("No username found for %s", u.displayName())))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[enter] Search  [esc] Back"))
	return b.String()
}

func (u *Username) displayName() string {
	if u.lastName == "" {
		return "(empty name)"
	}
	return u.lastName
}
