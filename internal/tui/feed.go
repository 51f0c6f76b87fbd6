package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/pkg/domain"
)

func (a App) feedKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	logs := a.st.HistoryLogs
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(logs)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "h", "left":
		a.emoji = (a.emoji - 1 + len(domain.Reactions)) % len(domain.Reactions)
	case "l", "right":
		a.emoji = (a.emoji + 1) % len(domain.Reactions)
	case " ", "enter":
		if a.cursor < len(logs) {
			return a.after(a.store.React(logs[a.cursor].ID, domain.Reactions[a.emoji])), nil
		}
	case "e":
		if a.st.Role == domain.RoleDesigner {
			return a.startEdit(editLog, "")
		}
	}
	return a, nil
}

func (a App) feedView() (string, string) {
	title := "History"
	if a.st.Screen == domain.ScreenActivity {
		title = "Activity"
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render(title) + "\n\n")
	if a.editing == editLog {
		b.WriteString(" " + renderInput("log", a.input, "what changed today?", true, a.frame) + "\n\n")
	}

	if len(a.st.HistoryLogs) == 0 {
		b.WriteString(" " + dimStyle.Render("No updates yet.") + "\n")
		return b.String(), helpLine("q", "quit")
	}

	for i, l := range a.st.HistoryLogs {
		cursor := "  "
		text := normalStyle
		if i == a.cursor {
			cursor = accentStyle.Render("> ")
			text = selectedStyle
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor,
			metaStyle.Render(l.Date),
			text.Render(truncStr(oneLine(l.Text), 56)),
			metaStyle.Render(fmt.Sprintf("%d%%", l.Progress)),
		)
		line := "    " + reactionsView(l)
		if i == a.cursor {
			line = "    " + a.reactionPicker(l)
		}
		b.WriteString(line + "\n")
	}

	help := helpLine("j/k", "select", "h/l", "emoji", "space", "react")
	if a.st.Role == domain.RoleDesigner {
		help += "  " + helpEntry("e", "log")
	}
	return b.String(), help + "  " + helpEntry("q", "quit")
}

// reactionsView lists the reactions already added to l.
func reactionsView(l domain.Log) string {
	if len(l.Reactions) == 0 {
		return ""
	}
	return strings.Join(l.Reactions, " ")
}

// reactionPicker shows every offered emoji with the picked one bracketed and
// the ones already added highlighted.
func (a App) reactionPicker(l domain.Log) string {
	parts := make([]string, len(domain.Reactions))
	for i, r := range domain.Reactions {
		cell := " " + r + " "
		if i == a.emoji {
			cell = "[" + r + "]"
		}
		if l.HasReaction(r) {
			cell = accentStyle.Render(cell)
		} else {
			cell = dimStyle.Render(cell)
		}
		parts[i] = cell
	}
	return strings.Join(parts, " ")
}
