package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a count.
type ProgressBar struct {
	Label   string
	Current int
	Target  int
	Width   int
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Target <= 0 {
		return 0
	}
	return min(max(float64(p.Current)/float64(p.Target), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d", p.Current, p.Target)
	barWidth := max(p.Width-lipgloss.Width(result)-len(count), 4)
	filled := int(float64(barWidth) * p.Percent())

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += theme.Subtitle.Render(count)
	return result
}
