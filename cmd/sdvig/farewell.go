package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/sdvig/internal/store"
	"github.com/naveenspark/sdvig/pkg/domain"
)

var farewells = [...]string{
	"Pixels saved. Go look at something that isn't a screen.",
	"The client will see it in the morning. Sleep on the kerning.",
	"Every stage approved started as a rough frame.",
	"Good work ships in small steps. This was one of them.",
	"The grid will still be there tomorrow.",
	"Rest is part of the process. The pomodoro agrees.",
	"Close the laptop before you nudge that button one more pixel.",
	"Another log written. Future you says thanks.",
	"Deadlines move. Good taste stays.",
	"Save often, export twice, send once.",
}

// printFarewell prints a short summary of the session after the dashboard
// closes.
func printFarewell(w io.Writer, st store.State) {
	msg := farewells[rand.IntN(len(farewells))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4FF33")).
		Bold(true).
		Render("S D V I G")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintf(w, "\n  %s\n\n  %s\n", title, quote)
	for _, line := range summary(st) {
		fmt.Fprintf(w, "  %s\n", dim.Render(line))
	}
	fmt.Fprintln(w)
}

// summary lists the facts worth repeating on the way out.
func summary(st store.State) []string {
	var out []string
	if st.Role == domain.RoleDesigner && st.WorkTimer > 0 {
		h, m := st.WorkTimer/3600, st.WorkTimer%3600/60
		out = append(out, fmt.Sprintf("Worked today: %dh %02dm", h, m))
	}
	if p := st.ActiveProject; p != nil {
		out = append(out, fmt.Sprintf("%s: %d%% done, %d%% approved", p.Name, st.Progress, st.ApprovedProgress))
	}
	if n := st.UnreadCount(st.Role); n > 0 && st.Role != domain.RoleNone {
		out = append(out, fmt.Sprintf("%d unread notifications", n))
	}
	return out
}
