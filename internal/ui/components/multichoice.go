package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonloop/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. The correct option is not
// known until the server grades the answer, so the component only tracks
// the choice; Reveal colours the result afterwards.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Selected int

	// Chosen is the submitted option, -1 until Enter is pressed.
	Chosen  int
	correct int
	graded  bool
}

// NewMultiChoice creates a multiple-choice component.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{Prompt: prompt, Options: options, Chosen: -1}
}

// Submitted reports whether an option was chosen.
func (m MultiChoice) Submitted() bool { return m.Chosen >= 0 }

// Reveal marks the correct option once the answer is graded.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.correct = correctIndex
	m.graded = true
}

// Update handles keyboard navigation and selection. Number and letter keys
// pick an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.Chosen = m.Selected
		return m, nil
	}
	for i := range m.Options {
		if i >= len(optionLabels) {
			break
		}
		if key == fmt.Sprint(i+1) || strings.EqualFold(key, optionLabels[i]) {
			m.Selected = i
			m.Chosen = i
		}
	}
	return m, nil
}

// View renders the prompt and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.graded && i == m.correct:
			line = theme.Correct.Render(line)
		case m.graded && i == m.Chosen:
			line = theme.Incorrect.Render(line)
		case m.Submitted():
			line = theme.Disabled.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
