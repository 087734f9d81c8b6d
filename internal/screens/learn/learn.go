// Package learn shows the learner's current card and walks them through it.
package learn

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/ui/components"
	"github.com/abhisek/lessonloop/internal/ui/layout"
	"github.com/abhisek/lessonloop/internal/ui/theme"
)

type cardLoadedMsg struct{ card *learning.CardView }

type answeredMsg struct{ outcome learning.AnswerOutcome }

type advancedMsg struct{ res learning.AdvanceResult }

// LearnScreen presents one card at a time. Concept and example cards are
// read and dismissed; question cards are answered, graded and then
// dismissed.
type LearnScreen struct {
	env screen.Env

	card    *learning.CardView
	choice  components.MultiChoice
	outcome *learning.AnswerOutcome
	notices []string
	done    bool
	busy    bool
	err     error
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen for the signed-in learner.
func New(env screen.Env) *LearnScreen {
	return &LearnScreen{env: env, busy: true}
}

func (l *LearnScreen) Title() string {
	if l.card != nil && l.card.InReview {
		return "Review"
	}
	return "Learn"
}

func (l *LearnScreen) Init() tea.Cmd {
	env := l.env
	return func() tea.Msg {
		card, err := env.Svc.CurrentCard(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return cardLoadedMsg{card: card}
	}
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardLoadedMsg:
		l.busy = false
		l.show(msg.card)
		return l, nil

	case answeredMsg:
		l.busy = false
		l.outcome = &msg.outcome
		l.choice.Reveal(msg.outcome.CorrectIndex)
		return l, screen.LearnerChanged

	case advancedMsg:
		l.busy = false
		l.notices = notices(msg.res)
		l.show(msg.res.Next)
		if msg.res.EndOfCatalog {
			l.done = true
		}
		return l, screen.LearnerChanged

	case screen.ErrMsg:
		l.busy = false
		l.err = msg.Err
		return l, nil

	case tea.KeyPressMsg:
		return l, l.handleKey(msg)
	}
	return l, nil
}

func (l *LearnScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if l.busy || l.card == nil {
		return nil
	}
	if key == "x" && l.card.InReview {
		l.busy = true
		return l.exitReview()
	}

	if l.card.Kind == catalog.KindQuestion && l.outcome == nil {
		l.choice, _ = l.choice.Update(msg)
		if l.choice.Submitted() {
			l.busy = true
			return l.submit(l.choice.Chosen)
		}
		return nil
	}

	if key == "enter" || key == "space" || key == " " {
		l.busy = true
		return l.advance()
	}
	return nil
}

func (l *LearnScreen) show(card *learning.CardView) {
	l.card = card
	l.outcome = nil
	l.err = nil
	l.done = card == nil
	if card != nil && card.Kind == catalog.KindQuestion {
		l.choice = components.NewMultiChoice(card.Prompt, card.Options)
	}
}

func (l *LearnScreen) submit(option int) tea.Cmd {
	env, id := l.env, l.card.ID
	return func() tea.Msg {
		out, err := env.Svc.SubmitAnswer(env.Ctx, env.LearnerID, id, option)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return answeredMsg{outcome: out}
	}
}

func (l *LearnScreen) advance() tea.Cmd {
	env := l.env
	return func() tea.Msg {
		res, err := env.Svc.AdvanceToNextCard(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return advancedMsg{res: res}
	}
}

func (l *LearnScreen) exitReview() tea.Cmd {
	env := l.env
	return func() tea.Msg {
		if err := env.Svc.ExitReviewMode(env.Ctx, env.LearnerID); err != nil {
			return screen.ErrMsg{Err: err}
		}
		card, err := env.Svc.CurrentCard(env.Ctx, env.LearnerID)
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return cardLoadedMsg{card: card}
	}
}

func notices(res learning.AdvanceResult) []string {
	var out []string
	if res.ReviewFinished {
		out = append(out, "Review complete. Back to new lessons.")
	}
	if res.PromotedTo != "" {
		out = append(out, fmt.Sprintf("Level up! You are now %s.", res.PromotedTo))
	}
	if res.Unlocked != nil {
		out = append(out, fmt.Sprintf("%s unlocks %s.",
			res.Unlocked.Title, res.Unlocked.UnlocksAt.Local().Format("Mon Jan 2 15:04")))
	}
	if res.MissionRewards > 0 {
		out = append(out, fmt.Sprintf("Mission complete: +%d credits.", res.MissionRewards))
	}
	return out
}

func (l *LearnScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	wrap := lipgloss.NewStyle().Width(cw)

	var sections []string
	for _, n := range l.notices {
		sections = append(sections, theme.Badge.Render("★ "+n))
	}

	switch {
	case l.card == nil && l.busy:
		sections = append(sections, theme.Hint.Render("loading..."))
	case l.done:
		sections = append(sections,
			theme.Title.Render("You're all caught up!"),
			theme.Subtitle.Render("No new cards right now. New topics open as the days go by."))
	case l.card != nil:
		sections = append(sections, l.renderCard(wrap))
	}

	if l.err != nil {
		sections = append(sections, theme.Incorrect.Render("Error: "+l.err.Error()))
	}

	content := theme.Card.Width(cw + 6).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (l *LearnScreen) renderCard(wrap lipgloss.Style) string {
	c := l.card
	meta := fmt.Sprintf("%s · %s · lesson %d", c.TopicLabel, c.Difficulty, c.LessonIndex)
	if c.InReview {
		meta = fmt.Sprintf("Review · %d left · %s", c.ReviewRemaining, meta)
	}
	parts := []string{theme.Subtitle.Render(meta)}

	switch c.Kind {
	case catalog.KindConcept:
		parts = append(parts, theme.Title.Render(c.Title), wrap.Render(c.Text))
		if c.Takeaway != "" {
			parts = append(parts, theme.Badge.Render("Key idea: ")+wrap.Render(c.Takeaway))
		}
	case catalog.KindExample:
		parts = append(parts, theme.Title.Render("Example: "+c.Title), wrap.Render(c.Narrative))
	case catalog.KindQuestion:
		parts = append(parts, l.choice.View())
		if o := l.outcome; o != nil {
			if o.Correct {
				line := "Correct!"
				if o.CreditsEarned > 0 {
					line += fmt.Sprintf(" +%d credits", o.CreditsEarned)
				}
				parts = append(parts, theme.Correct.Render(line))
			} else {
				parts = append(parts, theme.Incorrect.Render("Not quite. It will come back for review."))
			}
			if o.Explanation != "" {
				parts = append(parts, wrap.Render(o.Explanation))
			}
			if o.MissionRewards > 0 {
				parts = append(parts, theme.Badge.Render(fmt.Sprintf("Mission complete: +%d credits", o.MissionRewards)))
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if l.card == nil {
		return hints
	}
	if l.card.Kind == catalog.KindQuestion && l.outcome == nil {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Choose"},
			layout.KeyHint{Key: "Enter", Description: "Answer"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	if l.card.InReview {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Exit review"})
	}
	return hints
}
