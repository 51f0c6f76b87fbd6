package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/pkg/domain"
)

func (a App) settingsKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "r":
		return a.startEdit(editName, a.st.User.FirstName)
	case "L":
		return a.after(a.store.Logout()), nil
	}
	if a.st.Role != domain.RoleDesigner {
		return a, nil
	}

	switch msg.String() {
	case "t":
		return a.startEdit(editToken, a.st.Token)
	case "s":
		return a, syncCmd(a.store)
	case "x":
		return a.after(a.store.ResetToken()), nil
	case "H":
		return a.startEdit(editHours, fmt.Sprintf("%d", a.st.Hours))
	case "h", "left":
		return a.cycleTariff(-1), nil
	case "l", "right":
		return a.cycleTariff(1), nil
	case "b":
		return a.after(a.store.PurchaseTariff()), nil
	}
	return a, nil
}

// cycleTariff selects the plan next to the current one.
func (a App) cycleTariff(step int) App {
	n := len(domain.TariffPlans)
	i := -1
	if a.st.ActiveTariff != nil {
		for j, p := range domain.TariffPlans {
			if p.Name == *a.st.ActiveTariff {
				i = j
			}
		}
	}
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + step + n) % n
	}
	return a.after(a.store.SelectTariff(domain.TariffPlans[i].Name))
}

func (a App) settingsView() (string, string) {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Settings") + "\n\n")

	name := a.st.User.FirstName
	if a.editing == editName {
		name = a.input + accentStyle.Render("█")
	}
	fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("Name     "), normalStyle.Render(name))

	if a.st.Role != domain.RoleDesigner {
		return b.String(), helpLine("r", "rename", "L", "log out", "q", "quit")
	}

	fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("Token    "), normalStyle.Render(a.tokenShown()))
	hours := fmt.Sprintf("%dh", a.st.Hours)
	if a.editing == editHours {
		hours = a.input + accentStyle.Render("█")
	}
	fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("Hours    "), normalStyle.Render(hours))
	fmt.Fprintf(&b, " %s %s\n\n", dimStyle.Render("Plan     "),
		accentStyle.Render(fmt.Sprintf("%s · %d days left", a.st.Subscription.Plan, a.st.Subscription.DaysLeft)))

	for _, p := range domain.TariffPlans {
		picked := a.st.ActiveTariff != nil && *a.st.ActiveTariff == p.Name
		mark, style := "  ", normalStyle
		if picked {
			mark, style = accentStyle.Render("> "), selectedStyle
		}
		fmt.Fprintf(&b, "%s%s  %s\n", mark, style.Render(string(p.Name)), dimStyle.Render(p.Price))
		fmt.Fprintf(&b, "    %s\n", metaStyle.Render(p.Details))
	}

	return b.String(), helpLine("t", "token", "s", "sync", "x", "reset", "H", "hours", "h/l", "plan", "b", "buy", "r", "rename", "L", "log out")
}

func (a App) contactKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return a.after(a.store.ShowToast(domain.ToastInfo, "Opening chat...")), nil
	}
	return a, nil
}

func (a App) contactView() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Contact") + "\n\n")
	b.WriteString(" " + normalStyle.Render("Questions about the project? Write to your designer.") + "\n")
	if p := a.st.ActiveProject; p != nil {
		b.WriteString(" " + metaStyle.Render("Project: "+p.Name) + "\n")
	}
	return b.String()
}
