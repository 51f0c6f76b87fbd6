package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/internal/browser"
	"github.com/naveenspark/sdvig/pkg/domain"
)

// openURL is swapped out in tests.
var openURL = browser.Open

func (a App) archiveKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	projects := a.st.VisibleArchive()
	if msg.String() == "c" {
		return a.after(a.store.StartProjectCreation()), nil
	}
	if len(projects) == 0 {
		return a, nil
	}
	a.cursor = min(a.cursor, len(projects)-1)
	p := projects[a.cursor]

	switch msg.String() {
	case "j", "down":
		if a.cursor < len(projects)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "enter":
		return a.after(a.store.SelectProject(p.ID)), nil
	case "d":
		return a.after(a.store.RequestDelete(p.ID)), nil
	case "i":
		return a.after(a.store.OpenProjectDetails(p.ID)), nil
	case "o":
		return a.openDesignFile(p), nil
	}
	return a, nil
}

func (a App) openDesignFile(p domain.Project) App {
	if p.FigmaURL == "" {
		a.status = "No Figma link for this project"
		return a
	}
	if err := openURL(p.FigmaURL); err != nil {
		a.status = "Could not open " + p.FigmaURL
	}
	return a
}

func (a App) archiveView() (string, string) {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Archive") + "\n\n")

	projects := a.st.VisibleArchive()
	if len(projects) == 0 {
		b.WriteString(" " + dimStyle.Render("Archive is empty") + "\n")
		return b.String(), helpLine("c", "create", "q", "quit")
	}

	for i, p := range projects {
		cursor := "  "
		name := normalStyle
		if i == a.cursor {
			cursor = accentStyle.Render("> ")
			name = selectedStyle
		}
		active := ""
		if a.st.ActiveProject != nil && a.st.ActiveProject.ID == p.ID {
			active = accentStyle.Render(" ●")
		}
		fmt.Fprintf(&b, "%s%s%s  %s  %s\n", cursor,
			name.Render(truncStr(p.Name, 32)), active,
			dimStyle.Render(p.Price),
			metaStyle.Render(p.Deadline),
		)
	}

	if hidden := a.st.HiddenArchiveCount(); hidden > 0 {
		b.WriteString("\n " + pendingStyle.Render(fmt.Sprintf("%d more projects hidden. Upgrade your tariff in settings to see them.", hidden)) + "\n")
	}
	return b.String(), helpLine("j/k", "move", "enter", "select", "i", "details", "o", "figma", "d", "delete", "c", "create", "q", "quit")
}
