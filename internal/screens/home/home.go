// Package home is the signed-in learner's main menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/screens/learn"
	"github.com/abhisek/lessonloop/internal/screens/plan"
	"github.com/abhisek/lessonloop/internal/screens/topics"
	"github.com/abhisek/lessonloop/internal/ui/components"
	"github.com/abhisek/lessonloop/internal/ui/layout"
	"github.com/abhisek/lessonloop/internal/ui/theme"
)

type planLoadedMsg struct{ plan learning.Plan }

type nothingDueMsg struct{}

// HomeScreen is the main menu. It reloads today's plan whenever it becomes
// the active screen again.
type HomeScreen struct {
	env     screen.Env
	menu    components.Menu
	plan    learning.Plan
	loaded  bool
	message string
	err     error
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for the signed-in learner.
func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) Init() tea.Cmd { return h.loadPlan() }

func (h *HomeScreen) loadPlan() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		p, err := env.Svc.DailyPlan(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return planLoadedMsg{plan: p}
	}
}

func (h *HomeScreen) buildMenu() {
	env := h.env
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	learnLabel := "Continue learning"
	if h.plan.InReview {
		learnLabel = "Continue review"
	}
	reviewLabel := "Review"
	if h.loaded {
		reviewLabel = fmt.Sprintf("Review (%d due)", h.plan.ReviewCount)
	}

	items := []components.MenuItem{
		{Label: learnLabel, Action: func() tea.Cmd { return push(learn.New(env)) }},
		{Label: reviewLabel, Disabled: h.loaded && h.plan.ReviewCount == 0 && !h.plan.InReview,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					n, err := env.Svc.StartReviewMode(env.Ctx, env.LearnerID)
					if err != nil {
						return screen.ErrMsg{Err: err}
					}
					if n == 0 {
						return nothingDueMsg{}
					}
					return router.PushScreenMsg{Screen: learn.New(env)}
				}
			}},
		{Label: "Topics", Action: func() tea.Cmd { return push(topics.New(env)) }},
		{Label: "Today's plan", Action: func() tea.Cmd { return push(plan.New(env)) }},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		h.plan, h.loaded, h.err = msg.plan, true, nil
		h.buildMenu()
		return h, nil
	case router.ResumedMsg:
		h.message = ""
		return h, h.loadPlan()
	case nothingDueMsg:
		h.message = "Nothing to review right now."
		return h, h.loadPlan()
	case screen.ErrMsg:
		h.err = msg.Err
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 48)

	var sections []string
	sections = append(sections, theme.Title.Render("What's next?"))

	if h.loaded {
		var status string
		switch {
		case h.plan.InReview:
			status = "You are in the middle of a review."
		case h.plan.HasNewLesson:
			status = "A new lesson is ready."
		case h.plan.AllLessonsComplete:
			status = "You finished every lesson!"
		default:
			status = "New topics open soon."
		}
		done := 0
		for _, m := range h.plan.Missions {
			if m.Completed {
				done++
			}
		}
		sections = append(sections, theme.Subtitle.Render(
			fmt.Sprintf("%s  Missions %d/%d", status, done, len(h.plan.Missions))))
	}

	sections = append(sections, h.menu.View())

	if h.message != "" {
		sections = append(sections, theme.Hint.Render(h.message))
	}
	if h.err != nil {
		sections = append(sections, theme.Incorrect.Render("Error: "+h.err.Error()))
	}

	box := theme.Card.Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Env returns the learner environment the screen was built with.
func (h *HomeScreen) Env() screen.Env { return h.env }
