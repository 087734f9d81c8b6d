package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Env is what screens need to talk to the learning service on behalf of
// the signed-in learner.
type Env struct {
	Ctx       context.Context
	Svc       *learning.Service
	LearnerID string
}

// LearnerChangedMsg asks the app to refresh the header counters.
type LearnerChangedMsg struct{}

// LearnerChanged is a command emitting LearnerChangedMsg.
func LearnerChanged() tea.Msg { return LearnerChangedMsg{} }

// ErrMsg carries a failed service call back to the screen that made it.
type ErrMsg struct{ Err error }
