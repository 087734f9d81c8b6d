package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/screens/home"
	"github.com/abhisek/lessonloop/internal/screens/welcome"
	"github.com/abhisek/lessonloop/internal/ui/layout"
)

type learnerLoadedMsg struct{ learner learning.LearnerView }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    screen.Env

	credits int
	streak  int
	width   int
	height  int
}

func newAppModel(ctx context.Context, svc *learning.Service, username string) AppModel {
	signIn := func(name string) (screen.Screen, error) {
		lv, err := SignIn(ctx, svc, name)
		if err != nil {
			return nil, err
		}
		return home.New(screen.Env{Ctx: ctx, Svc: svc, LearnerID: lv.ID}), nil
	}
	return AppModel{
		router: router.New(welcome.New(username, signIn)),
		env:    screen.Env{Ctx: ctx, Svc: svc},
	}
}

// SignIn returns the learner with the given username, creating it on first
// use.
func SignIn(ctx context.Context, svc *learning.Service, username string) (learning.LearnerView, error) {
	lv, err := svc.FindLearner(ctx, username)
	if errors.Is(err, learning.ErrNotFound) {
		return svc.CreateLearner(ctx, username)
	}
	return lv, err
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) refresh() tea.Cmd {
	if m.env.LearnerID == "" {
		return nil
	}
	env := m.env
	return func() tea.Msg {
		lv, err := env.Svc.Learner(env.Ctx, env.LearnerID)
		if err != nil {
			return nil
		}
		return learnerLoadedMsg{learner: lv}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case learnerLoadedMsg:
		m.credits = msg.learner.Credits
		m.streak = msg.learner.Streak
		return m, nil

	case screen.LearnerChangedMsg:
		return m, m.refresh()

	case router.ReplaceScreenMsg:
		if h, ok := msg.Screen.(*home.HomeScreen); ok {
			m.env = h.Env()
		}
		return m, tea.Batch(m.router.Update(msg), m.refresh())

	case router.ResumedMsg:
		return m, tea.Batch(m.router.Update(msg), m.refresh())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.credits, m.streak, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the terminal app. An empty username makes the welcome screen
// ask for one.
func Run(ctx context.Context, svc *learning.Service, username string) error {
	p := tea.NewProgram(newAppModel(ctx, svc, username), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal app: %w", err)
	}
	return nil
}
