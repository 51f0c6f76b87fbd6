package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/pkg/domain"
)

func (a App) welcomeKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a.after(a.store.SetScreen(domain.ScreenRoleSelect)), nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a App) welcomeView() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Sdvig: project and client") + "\n\n")
	b.WriteString("  " + dimStyle.Render("Work with your projects") + "\n")
	b.WriteString("  " + dimStyle.Render("right from Telegram") + "\n\n")
	b.WriteString("  " + accentStyle.Render("[ enter ] Sign in with Telegram") + "\n")
	return b.String()
}

func (a App) roleSelectKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "d", "up", "k":
		return a.after(a.store.SelectRole(domain.RoleDesigner)), nil
	case "c", "down", "j":
		return a.after(a.store.SelectRole(domain.RoleClient)), nil
	case "enter":
		return a.after(a.store.ContinueFromRoleSelect()), nil
	case "esc":
		return a.after(a.store.SetScreen(domain.ScreenWelcome)), nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a App) roleSelectView() string {
	option := func(role domain.Role, title, desc string) string {
		mark := metaStyle.Render("☆")
		style := normalStyle
		if a.st.Role == role {
			mark = accentStyle.Render("★")
			style = selectedStyle
		}
		return cardStyle.Render(style.Render(title) + "  " + mark + "\n" + dimStyle.Render(desc))
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Who are you?") + "\n")
	b.WriteString("  " + dimStyle.Render("Choose your role in the project") + "\n\n")
	b.WriteString(option(domain.RoleDesigner, "I'm a designer", "I deliver the project") + "\n")
	b.WriteString(option(domain.RoleClient, "I'm a client", "I follow the project") + "\n\n")
	if a.st.Role == domain.RoleNone {
		b.WriteString("  " + metaStyle.Render("Continue") + "\n")
	} else {
		b.WriteString("  " + accentStyle.Render("[ enter ] Continue") + "\n")
	}
	return b.String()
}

func (a App) onboardingKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "t":
		return a.startEdit(editToken, a.st.Token)
	case "s":
		return a, syncCmd(a.store)
	case "enter":
		return a.after(a.store.Navigate(domain.ScreenDashboard)), nil
	case "esc":
		return a.after(a.store.SetScreen(domain.ScreenRoleSelect)), nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a App) onboardingView() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Connect") + "\n")
	b.WriteString("  " + dimStyle.Render("Enter your Figma API token to sync projects") + "\n\n")
	b.WriteString("  " + renderInput("token", a.tokenShown(), "figd_...", a.editing == editToken, a.frame) + "\n\n")
	b.WriteString("  " + metaStyle.Render("How to get a token: Figma > Settings > Security > Personal access tokens") + "\n")
	return b.String()
}

// tokenShown is the draft while editing and the masked stored token otherwise.
func (a App) tokenShown() string {
	if a.editing == editToken {
		return a.input
	}
	return maskToken(a.st.Token)
}

// maskToken hides all but the last four characters of a token.
func maskToken(tok string) string {
	r := []rune(tok)
	if len(r) <= 4 {
		return tok
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}
