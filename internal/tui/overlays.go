package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// Overlays stack above the current screen and capture keys until dismissed,
// in this order: approval, delete confirmation, notifications, details.

func (a App) hasOverlay() bool {
	return a.st.ApproveModalOpen || a.st.ProjectToDelete != nil ||
		a.st.NotificationsOpen || a.st.ProjectDetailsID != nil
}

func (a App) overlayKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	key := msg.String()
	switch {
	case a.st.ApproveModalOpen:
		switch key {
		case "y", "enter":
			return a.after(a.store.ConfirmApproval()), nil
		case "n", "esc":
			return a.after(a.store.CancelApproval()), nil
		}

	case a.st.ProjectToDelete != nil:
		switch key {
		case "y":
			return a.after(a.store.ConfirmDelete()), nil
		case "n", "esc":
			return a.after(a.store.CancelDelete()), nil
		}

	case a.st.NotificationsOpen:
		switch key {
		case "n", "esc":
			return a.after(a.store.CloseNotifications()), nil
		case "x":
			return a.after(a.store.ClearNotifications()), nil
		}

	case a.st.ProjectDetailsID != nil:
		switch key {
		case "i", "esc":
			return a.after(a.store.CloseProjectDetails()), nil
		case "o":
			if p, ok := a.st.FindProject(*a.st.ProjectDetailsID); ok {
				return a.openDesignFile(p), nil
			}
		}
	}
	if key == "q" {
		return a, tea.Quit
	}
	return a, nil
}

func (a App) overlayView() (string, string) {
	switch {
	case a.st.ApproveModalOpen:
		return a.approveView(), helpLine("y", "confirm", "n", "cancel")
	case a.st.ProjectToDelete != nil:
		return a.deleteView(), helpLine("y", "delete", "n", "cancel")
	case a.st.NotificationsOpen:
		return a.notificationsView(), helpLine("x", "clear", "esc", "close")
	case a.st.ProjectDetailsID != nil:
		return a.detailsView(), helpLine("o", "open figma", "esc", "close")
	}
	return "", ""
}

func (a App) approveView() string {
	pct := a.st.Progress
	text := fmt.Sprintf("Confirm that the stage at %d%% is done?", pct)
	if pct >= 100 {
		text = "Confirm the project is complete? It will move to the archive."
	}
	body := titleStyle.Render("Approve stage") + "\n\n" +
		normalStyle.Render(text) + "\n" +
		metaStyle.Render(fmt.Sprintf("previously approved %d%%", a.st.ApprovedProgress))
	return "\n" + center(modalStyle.Render(body), a.width)
}

func (a App) deleteView() string {
	name := "this project"
	if p, ok := a.st.FindProject(*a.st.ProjectToDelete); ok {
		name = p.Name
	}
	body := titleStyle.Render("Delete project?") + "\n\n" +
		normalStyle.Render(fmt.Sprintf("%q will be removed from the archive.", name))
	return "\n" + center(dangerModalStyle.Render(body), a.width)
}

func (a App) notificationsView() string {
	list := a.st.Notifications(a.st.Role)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications") + "\n\n")
	if len(list) == 0 {
		b.WriteString(dimStyle.Render("Nothing new"))
		return "\n" + modalStyle.Render(b.String())
	}
	for i, n := range list {
		if i == 10 {
			b.WriteString(metaStyle.Render(fmt.Sprintf("+%d more", len(list)-i)))
			break
		}
		dot := "  "
		if n.Unread {
			dot = unreadDotStyle.Render("● ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", dot, normalStyle.Render(truncStr(oneLine(n.Text), 50)), metaStyle.Render(n.Time))
	}
	return "\n" + modalStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (a App) detailsView() string {
	p, ok := a.st.FindProject(*a.st.ProjectDetailsID)
	if !ok {
		return ""
	}
	rows := []string{
		titleStyle.Render(p.Name),
		"",
		normalStyle.Render(p.Desc),
		"",
		detailRow("Client", p.Client),
		detailRow("Price", p.Price),
		detailRow("Deadline", p.Deadline),
		detailRow("Created", p.Date),
	}
	if p.FigmaURL != "" {
		rows = append(rows, detailRow("Figma", truncStr(p.FigmaURL, 48)))
	}
	if a.st.ActiveProject != nil && a.st.ActiveProject.ID == p.ID {
		rows = append(rows, "", accentStyle.Render("active on dashboard"))
	}
	return "\n" + modalStyle.Render(strings.Join(rows, "\n"))
}

func detailRow(label, value string) string {
	if value == "" {
		value = domain.ClientUnspecified
	}
	return dimStyle.Render(fmt.Sprintf("%-9s", label)) + " " + normalStyle.Render(value)
}
