package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// Shimmer animation for the SDVIG wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "S D V I G" as a flowing wave of lime light.
// Deep olive (#3a4a0c) -> brand lime (#d4ff33).
func renderShimmerLogo(frame int) string {
	const text = "SDVIG"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(58 + b*(212-58))
		g := clampByte(74 + b*(255-74))
		bl := clampByte(12 + b*(51-12))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	limeColor = lipgloss.Color("#D4FF33")
	redColor  = lipgloss.Color("#EF4444")

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(limeColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0944a")).
			Italic(true)

	unreadDotStyle = lipgloss.NewStyle().
			Foreground(limeColor)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(limeColor).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e1e2a")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(limeColor).
			Padding(1, 2)

	dangerModalStyle = modalStyle.
				BorderForeground(redColor)
)

// toastStyle colors a toast by its tone.
func toastStyle(t domain.ToastType) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch t {
	case domain.ToastSuccess:
		return base.Foreground(limeColor)
	case domain.ToastError:
		return base.Foreground(redColor)
	default:
		return base.Foreground(lipgloss.Color("#FFFFFF"))
	}
}

// progressBar renders pct as a width-cell bar.
func progressBar(pct, width int, pending bool) string {
	if width < 4 {
		width = 4
	}
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	fill := accentStyle
	if pending {
		fill = pendingStyle
	}
	return fill.Render(strings.Repeat("█", filled)) + metaStyle.Render(strings.Repeat("░", width-filled))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpLine joins key/label pairs into one help bar.
func helpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}
