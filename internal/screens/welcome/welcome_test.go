package welcome

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

type signInRecorder struct {
	names []string
	err   error
}

func (r *signInRecorder) signIn(name string) (screen.Screen, error) {
	r.names = append(r.names, name)
	if r.err != nil {
		return nil, r.err
	}
	return &stubScreen{}, nil
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func TestBannerAppearsAfterSplash(t *testing.T) {
	w := New("ada", (&signInRecorder{}).signIn)

	if strings.Contains(w.View(80, 24), "One small lesson") {
		t.Error("tagline should not be visible at start")
	}
	sendTicks(w, 15)
	if w.elapsed != phase2End {
		t.Errorf("elapsed = %v, want %v", w.elapsed, phase2End)
	}
	if !strings.Contains(w.View(80, 24), "One small lesson") {
		t.Error("tagline should be visible after the splash")
	}

	sendTicks(w, 100)
	if w.elapsed != totalDur {
		t.Errorf("elapsed should cap at %v, got %v", totalDur, w.elapsed)
	}
}

func TestKeypressSignsInPresetUsername(t *testing.T) {
	rec := &signInRecorder{}
	w := New("ada", rec.signIn)
	sendTicks(w, 3)

	_, cmd := w.Update(key(' '))
	if cmd == nil {
		t.Fatal("expected a sign-in command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if len(rec.names) != 1 || rec.names[0] != "ada" {
		t.Errorf("signIn calls = %v", rec.names)
	}

	if _, cmd := w.Update(key('x')); cmd != nil {
		t.Error("keys are ignored while signing in")
	}
}

func TestPromptsForUsername(t *testing.T) {
	rec := &signInRecorder{}
	w := New("", rec.signIn)

	if _, cmd := w.Update(key(' ')); cmd != nil {
		t.Error("leaving the splash without a username should only show the prompt")
	}
	if !w.prompting {
		t.Fatal("expected prompt")
	}
	if !strings.Contains(w.View(80, 24), "What should we call you?") {
		t.Error("prompt not rendered")
	}

	if _, cmd := w.Update(enter); cmd != nil {
		t.Error("empty name must not submit")
	}

	for _, r := range "grace" {
		w.Update(key(r))
	}
	_, cmd := w.Update(enter)
	if cmd == nil {
		t.Fatal("expected sign-in command")
	}
	cmd()
	if len(rec.names) != 1 || rec.names[0] != "grace" {
		t.Errorf("signIn calls = %v", rec.names)
	}
}

func TestSignInFailureShowsError(t *testing.T) {
	rec := &signInRecorder{err: errors.New("database locked")}
	w := New("ada", rec.signIn)

	_, cmd := w.Update(key(' '))
	msg := cmd()
	if _, ok := msg.(signInFailedMsg); !ok {
		t.Fatalf("expected signInFailedMsg, got %T", msg)
	}
	w.Update(msg)

	if w.pending || !w.prompting {
		t.Error("failure should return to the prompt")
	}
	if !strings.Contains(w.View(80, 24), "database locked") {
		t.Error("error not rendered")
	}
}
