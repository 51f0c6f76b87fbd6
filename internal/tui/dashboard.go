package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// progressStep is how far one arrow key moves the proposed progress.
const progressStep = 5

func (a App) dashboardKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.st.Role == domain.RoleClient {
		switch msg.String() {
		case "a", "enter":
			return a.after(a.store.RequestApproval()), nil
		case "j":
			if a.st.ActiveProject == nil {
				return a.startEdit(editInvite, "")
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "left", "h":
		return a.after(a.store.RequestProgressUpdate(a.st.DisplayedProgress() - progressStep)), nil
	case "right", "l":
		return a.after(a.store.RequestProgressUpdate(a.st.DisplayedProgress() + progressStep)), nil
	case "u":
		return a.after(a.store.UndoProgressUpdate()), nil
	case "w":
		return a.after(a.store.ToggleWorkTimer()), nil
	case "p":
		return a.after(a.store.TogglePomodoro()), nil
	case "e":
		return a.startEdit(editLog, "")
	case "H":
		return a.startEdit(editHours, fmt.Sprintf("%d", a.st.Hours))
	case "i":
		link, err := a.store.InviteLink()
		if err != nil {
			return a.after(err), nil
		}
		return a, copyCmd(link)
	case "c":
		if a.st.ActiveProject == nil {
			return a.after(a.store.StartProjectCreation()), nil
		}
	}
	return a, nil
}

func (a App) dashboardView() (string, string) {
	if a.st.Role == domain.RoleClient {
		return a.clientDashboardView()
	}

	var b strings.Builder
	b.WriteString(a.projectCard())
	b.WriteString("\n")
	b.WriteString(a.progressView())

	running := metaStyle.Render("paused")
	if a.st.WorkTimerRunning {
		running = accentStyle.Render("● running")
	}
	fmt.Fprintf(&b, "\n %s  %s  %s   %s\n",
		dimStyle.Render("Work today"),
		selectedStyle.Render(formatClock(a.st.WorkTimer)),
		running,
		metaStyle.Render(fmt.Sprintf("budget %dh", a.st.Hours)),
	)
	fmt.Fprintf(&b, " %s    %s  %s\n",
		dimStyle.Render("Pomodoro"),
		selectedStyle.Render(formatCountdown(a.st.PomodoroTime)),
		pomodoroLabel(a.st.PomodoroMode),
	)

	b.WriteString("\n " + renderInput("log", a.draft(editLog), "what changed today?", a.editing == editLog, a.frame) + "\n")
	if len(a.st.HistoryLogs) > 0 {
		l := a.st.HistoryLogs[0]
		fmt.Fprintf(&b, " %s %s %s\n", metaStyle.Render(l.Date), normalStyle.Render(truncStr(oneLine(l.Text), 60)), reactionsView(l))
	}

	help := helpLine("←/→", "progress", "u", "undo", "w", "timer", "p", "pomodoro", "e", "log", "H", "hours")
	if a.st.ActiveProject != nil {
		help += "  " + helpEntry("i", "invite")
	} else {
		help += "  " + helpEntry("c", "create")
	}
	return b.String(), help + "  " + helpEntry("q", "quit")
}

func (a App) clientDashboardView() (string, string) {
	var b strings.Builder
	if a.st.ActiveProject == nil {
		b.WriteString("\n " + dimStyle.Render("Invite link") + "\n")
		b.WriteString(" " + renderInput("link", a.draft(editInvite), "paste the link...", a.editing == editInvite, a.frame) + "\n")
		return b.String(), helpLine("j", "join", "n", "notifications", "q", "quit")
	}

	b.WriteString(a.projectCard())
	b.WriteString("\n")
	b.WriteString(a.progressView())
	fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("Approved"), selectedStyle.Render(fmt.Sprintf("%d%%", a.st.ApprovedProgress)))

	if len(a.st.HistoryLogs) > 0 {
		b.WriteString("\n " + dimStyle.Render("Latest updates") + "\n")
		for i, l := range a.st.HistoryLogs {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, " %s %s\n", metaStyle.Render(l.Date), normalStyle.Render(truncStr(oneLine(l.Text), 60)))
		}
	}
	return b.String(), helpLine("a", "approve", "2", "history", "n", "notifications", "q", "quit")
}

func (a App) projectCard() string {
	p := a.st.ActiveProject
	if p == nil {
		return "\n " + dimStyle.Render("No active project. Pick one from the archive or create a new one.") + "\n"
	}
	lines := []string{
		titleStyle.Render(p.Name),
		dimStyle.Render(truncStr(oneLine(p.Desc), 60)),
		metaStyle.Render(fmt.Sprintf("client %s · %s · deadline %s", p.Client, p.Price, p.Deadline)),
	}
	return cardStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (a App) progressView() string {
	pending := a.st.PendingProgress != nil
	line := fmt.Sprintf(" %s %s %s", dimStyle.Render("Progress"), progressBar(a.st.DisplayedProgress(), 30, pending), selectedStyle.Render(fmt.Sprintf("%d%%", a.st.DisplayedProgress())))
	if pending {
		line += "  " + pendingStyle.Render(fmt.Sprintf("syncing, was %d%% · u to undo", a.st.Progress))
	}
	return line + "\n"
}

// draft is the text shown in target's input: the live draft while editing.
func (a App) draft(target editTarget) string {
	if a.editing == target {
		return a.input
	}
	return ""
}

func pomodoroLabel(m domain.PomodoroMode) string {
	switch m {
	case domain.PomodoroWork:
		return accentStyle.Render("focus")
	case domain.PomodoroRest:
		return pendingStyle.Render("rest")
	default:
		return metaStyle.Render("idle")
	}
}

func parseHours(raw string) (int, error) {
	var h int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &h); err != nil || h < 0 {
		return 0, fmt.Errorf("hours must be a whole number")
	}
	return h, nil
}
