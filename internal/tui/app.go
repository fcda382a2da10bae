package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenCommits
	ScreenTags
	ScreenContributors
	ScreenUsername
)

var screenNames = map[string]Screen{
	"dashboard":    ScreenDashboard,
	"commits":      ScreenCommits,
	"tags":         ScreenTags,
	"contributors": ScreenContributors,
	"username":     ScreenUsername,
}

// screen is implemented by every view under screens.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

type Options struct {
	CommitLimit int
}

type App struct {
	session       *git.Session
	opts          Options
	currentScreen Screen
	width         int
	height        int

	screens map[Screen]screen
}

func NewApp(session *git.Session, opts Options) *App {
	return &App{
		session:       session,
		opts:          opts,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.screens = map[Screen]screen{
		ScreenDashboard:    screens.NewDashboard(a.session),
		ScreenCommits:      screens.NewCommits(a.session, a.opts.CommitLimit),
		ScreenTags:         screens.NewTags(a.session),
		ScreenContributors: screens.NewContributors(a.session),
		ScreenUsername:     screens.NewUsername(a.session),
	}

	return a.screens[ScreenDashboard].Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, s := range a.screens {
			s.SetSize(msg.Width, msg.Height)
		}

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	return a, a.screens[a.currentScreen].Update(msg)
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	target, ok := screenNames[msg.Screen]
	if !ok {
		return a, nil
	}
	a.currentScreen = target
	return a, a.screens[target].Init()
}

func (a *App) CurrentScreen() Screen {
	return a.currentScreen
}

func (a *App) View() string {
	content := a.screens[a.currentScreen].View()

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(session *git.Session, opts Options) error {
	app := NewApp(session, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
