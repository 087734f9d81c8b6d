package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/router"
	"github.com/abhisek/lessonloop/internal/screen"
	"github.com/abhisek/lessonloop/internal/ui/components"
	"github.com/abhisek/lessonloop/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bookArt = `   ______ ______
 _/      Y      \_
// ~~ ~~ | ~~ ~  \\
// ~ ~ ~~ | ~~~ ~~ \\
//________.|.________\\
'----------'-'----------'`

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

type signInFailedMsg struct{ err error }

// SignInFunc resolves a username to the learner's home screen.
type SignInFunc func(username string) (screen.Screen, error)

// WelcomeScreen shows a splash and then signs the learner in, asking for a
// username when none was given on the command line.
type WelcomeScreen struct {
	signIn   SignInFunc
	username string

	elapsed   time.Duration
	tickCount int
	prompting bool
	input     components.TextInput
	pending   bool
	err       error
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. An empty username shows a prompt after the
// splash.
func New(username string, signIn SignInFunc) *WelcomeScreen {
	return &WelcomeScreen{
		signIn:   signIn,
		username: strings.TrimSpace(username),
		input:    components.NewTextInput("your name", 64),
	}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.prompting {
			return w, nil
		}
		return w, tick()

	case signInFailedMsg:
		w.pending = false
		w.err = msg.err
		w.prompting = true
		return w, nil

	case tea.KeyPressMsg:
		if w.pending {
			return w, nil
		}
		if !w.prompting {
			return w, w.continueFromSplash()
		}
		if msg.String() == "enter" {
			if name := w.input.Value(); name != "" {
				return w, w.submit(name)
			}
			return w, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) continueFromSplash() tea.Cmd {
	w.elapsed = totalDur
	if w.username != "" {
		return w.submit(w.username)
	}
	w.prompting = true
	return nil
}

func (w *WelcomeScreen) submit(name string) tea.Cmd {
	w.pending = true
	w.err = nil
	signIn := w.signIn
	return func() tea.Msg {
		home, err := signIn(name)
		if err != nil {
			return signInFailedMsg{err: err}
		}
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(bookArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		lines := strings.Split(art, "\n")
		accent := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		secondary := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
		lines[0] = accent + "  " + lines[0] + "  " + secondary
		lines[len(lines)-1] = secondary + "  " + lines[len(lines)-1] + "  " + accent
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			theme.Body.Bold(true).Render("One small lesson a day."),
			"",
		)
		switch {
		case w.pending:
			sections = append(sections, theme.Hint.Render("signing in..."))
		case w.prompting:
			sections = append(sections, theme.Body.Render("What should we call you?"), w.input.View())
			if w.err != nil {
				sections = append(sections, "", theme.Incorrect.Render(w.err.Error()))
			}
		default:
			sections = append(sections, theme.Hint.Render("press any key to continue"))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
