// Package topics lists the catalog topics with their lock state.
package topics

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/ui/components"
	"github.com/abhisek/lessonloop/internal/ui/layout"
	"github.com/abhisek/lessonloop/internal/ui/theme"
	"github.com/abhisek/lessonloop/internal/unlock"
)

type loadedMsg struct{ topics []unlock.TopicStatus }

// TopicsScreen shows every topic, how far the learner got and when locked
// topics open.
type TopicsScreen struct {
	env      screen.Env
	topics   []unlock.TopicStatus
	selected int
	loaded   bool
	err      error
}

var _ screen.Screen = (*TopicsScreen)(nil)

func New(env screen.Env) *TopicsScreen {
	return &TopicsScreen{env: env}
}

func (s *TopicsScreen) Title() string { return "Topics" }

func (s *TopicsScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ts, err := env.Svc.Topics(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return loadedMsg{topics: ts}
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.topics, s.loaded = msg.topics, true
	case screen.ErrMsg:
		s.err = msg.Err
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.topics)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *TopicsScreen) View(width, height int) string {
	if s.err != nil {
		return theme.Incorrect.Render("Error: " + s.err.Error())
	}
	if !s.loaded {
		return theme.Hint.Render("loading...")
	}
	if len(s.topics) == 0 {
		return theme.Subtitle.Render("The catalog has no topics yet.")
	}

	cw := layout.ContentWidth(width)
	// Three lines per topic plus a gap; keep the selection on screen.
	perPage := max(height/4, 1)
	first := 0
	if s.selected >= perPage {
		first = s.selected - perPage + 1
	}
	last := min(first+perPage, len(s.topics))

	var rows []string
	for i := first; i < last; i++ {
		rows = append(rows, s.renderTopic(s.topics[i], i == s.selected, cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n\n"))
}

func (s *TopicsScreen) renderTopic(t unlock.TopicStatus, selected bool, width int) string {
	marker, title := "  ", theme.Unselected
	if selected {
		marker, title = "▸ ", theme.Selected
	}

	var status string
	switch {
	case t.IsLocked && t.UnlocksAt != nil:
		status = theme.Disabled.Render("🔒 opens " + t.UnlocksAt.Local().Format("Mon Jan 2 15:04"))
	case t.IsLocked:
		status = theme.Disabled.Render("🔒 locked")
	case t.LessonCount > 0 && t.CompletedLessons >= t.LessonCount:
		status = theme.Correct.Render("✓ complete")
	default:
		status = theme.Subtitle.Render("open")
	}

	lines := []string{marker + title.Render(t.Title) + "  " + status}
	if t.Description != "" {
		lines = append(lines, "  "+theme.Subtitle.Render(t.Description))
	}
	bar := components.ProgressBar{
		Label:   "lessons",
		Current: t.CompletedLessons,
		Target:  t.LessonCount,
		Width:   width - 2,
	}
	lines = append(lines, "  "+bar.View())
	return strings.Join(lines, "\n")
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}
