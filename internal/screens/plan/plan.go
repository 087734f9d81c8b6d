// Package plan shows today's plan: missions, due reviews and badges.
package plan

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/ui/components"
	"github.com/abhisek/lessonloop/internal/ui/layout"
	"github.com/abhisek/lessonloop/internal/ui/theme"
)

type loadedMsg struct {
	plan    learning.Plan
	profile learning.Profile
}

type PlanScreen struct {
	env     screen.Env
	plan    learning.Plan
	profile learning.Profile
	loaded  bool
	err     error
}

var _ screen.Screen = (*PlanScreen)(nil)

func New(env screen.Env) *PlanScreen {
	return &PlanScreen{env: env}
}

func (p *PlanScreen) Title() string { return "Today" }

func (p *PlanScreen) Init() tea.Cmd {
	env := p.env
	return func() tea.Msg {
		pl, err := env.Svc.DailyPlan(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		prof, err := env.Svc.Profile(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return loadedMsg{plan: pl, profile: prof}
	}
}

func (p *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		p.plan, p.profile, p.loaded = msg.plan, msg.profile, true
	case screen.ErrMsg:
		p.err = msg.Err
	case tea.KeyPressMsg:
		if k := msg.String(); k == "esc" || k == "q" {
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return p, nil
}

func (p *PlanScreen) View(width, height int) string {
	if p.err != nil {
		return theme.Incorrect.Render("Error: " + p.err.Error())
	}
	if !p.loaded {
		return theme.Hint.Render("loading...")
	}
	cw := layout.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Render("Plan for "+p.plan.Date))

	var todo []string
	switch {
	case p.plan.InReview:
		todo = append(todo, "• Finish your review session")
	case p.plan.ReviewCount > 0:
		todo = append(todo, fmt.Sprintf("• %d question(s) ready for review", p.plan.ReviewCount))
	}
	switch {
	case p.plan.HasNewLesson:
		todo = append(todo, "• A new lesson is waiting")
	case p.plan.AllLessonsComplete:
		todo = append(todo, "• Every lesson is complete. Nice work!")
	default:
		todo = append(todo, "• New topics open soon")
	}
	sections = append(sections, theme.Body.Render(strings.Join(todo, "\n")))

	var missions []string
	missions = append(missions, theme.Subtitle.Render("MISSIONS"))
	for _, m := range p.plan.Missions {
		label := m.Title
		if m.Completed {
			label = "✓ " + label
		}
		bar := components.ProgressBar{Current: m.Current, Target: m.Target, Width: cw}
		missions = append(missions,
			theme.Body.Render(label)+"  "+theme.Badge.Render(fmt.Sprintf("+%d", m.Reward)),
			bar.View())
	}
	sections = append(sections, strings.Join(missions, "\n"))

	prof := p.profile
	stats := fmt.Sprintf("%s · %d/%d lessons · %.0f%% accuracy · %d topic(s) done",
		prof.Learner.Level, prof.CompletedLessons, prof.TotalLessons, prof.Accuracy, prof.CompletedTopics)
	sections = append(sections, theme.Subtitle.Render(stats))

	var badges []string
	for _, a := range prof.Achievements {
		if a.Earned {
			badges = append(badges, theme.Badge.Render("★ "+a.Title)+" "+theme.Subtitle.Render(a.Description))
		} else {
			badges = append(badges, theme.Disabled.Render("☆ "+a.Title))
		}
	}
	if len(badges) > 0 {
		sections = append(sections, theme.Subtitle.Render("BADGES")+"\n"+strings.Join(badges, "\n"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n")))
}

func (p *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
