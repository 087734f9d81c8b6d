package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoiceSelection(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"enter picks first", []string{"enter"}, 0},
		{"arrows then enter", []string{"down", "down", "enter"}, 2},
		{"up stops at top", []string{"up", "enter"}, 0},
		{"number key", []string{"2"}, 1},
		{"letter key", []string{"c"}, 2},
		{"upper case letter", []string{"B"}, 1},
		{"out of range number ignored", []string{"9"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultiChoice("pick", []string{"x", "y", "z"})
			for _, k := range tt.keys {
				m, _ = m.Update(press(k))
			}
			if m.Chosen != tt.want {
				t.Errorf("Chosen = %d, want %d", m.Chosen, tt.want)
			}
		})
	}
}

func TestMultiChoiceLocksAfterSubmit(t *testing.T) {
	m := NewMultiChoice("pick", []string{"x", "y"})
	m, _ = m.Update(press("1"))
	m, _ = m.Update(press("2"))
	if m.Chosen != 0 {
		t.Errorf("Chosen = %d, want 0", m.Chosen)
	}
	m.Reveal(1)
	if !strings.Contains(m.View(), "y") {
		t.Error("view should still list options")
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			picked = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("a", true), item("b", false), item("c", true), item("d", false)})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(press("down"))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(press("enter"))
	if picked != "d" {
		t.Errorf("picked = %q, want d", picked)
	}
}

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		cur, target int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		p := ProgressBar{Current: tt.cur, Target: tt.target}
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.cur, tt.target, got, tt.want)
		}
	}
	view := ProgressBar{Label: "lessons", Current: 2, Target: 3, Width: 40}.View()
	if !strings.Contains(view, "2/3") {
		t.Errorf("view %q missing count", view)
	}
}
