package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonloop/internal/ui/theme"
)

const bannerArt = `
 _                              _
| |    ___  ___ ___  ___  _ __ | |    ___   ___  _ __
| |   / _ \/ __/ __|/ _ \| '_ \| |   / _ \ / _ \| '_ \
| |__|  __/\__ \__ \ (_) | | | | |__| (_) | (_) | |_) |
|_____\___||___/___/\___/|_| |_|_____\___/ \___/| .__/
                                                |_|`

const bannerCompact = "L E S S O N L O O P"

// RenderBanner returns the banner in the primary colour, falling back to a
// compact form below 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
