package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/sdvig/internal/store"
	"github.com/naveenspark/sdvig/pkg/domain"
)

// stateMsg carries a store snapshot published after a mutation.
type stateMsg store.State

// remoteDoneMsg is sent once a design-file request finishes.
type remoteDoneMsg struct {
	err error
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	err error
}

// editTarget names the inline input currently capturing keys.
type editTarget int

const (
	editNone editTarget = iota
	editToken
	editHours
	editName
	editLog
	editInvite
)

// App is the root Bubbletea model.
type App struct {
	store   *store.Store
	st      store.State
	version string
	latest  string

	create  createModel
	editing editTarget
	input   string
	cursor  int
	emoji   int
	status  string
	screen  domain.Screen

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the dashboard UI on top of s.
func NewApp(s *store.Store, version string) App {
	st := s.Snapshot()
	return App{
		store:   s,
		st:      st,
		screen:  st.Screen,
		version: version,
		create:  newCreateModel(s),
	}
}

// Bind forwards every store snapshot to p. Sends happen off the store's
// goroutine so timer callbacks never wait on the event loop; stale snapshots
// are dropped by version.
func Bind(p *tea.Program, s *store.Store) (cancel func()) {
	return s.Subscribe(func(st store.State) {
		go p.Send(stateMsg(st))
	})
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), checkVersion(a.version))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		a.create.frame = a.frame
		return a, shimmerTickCmd()

	case stateMsg:
		if msg.Version > a.st.Version {
			a.st = store.State(msg)
			a = a.syncScreen()
		}
		return a, nil

	case versionCheckMsg:
		if msg.hasUpdate {
			a.latest = msg.latestVersion
		}
		return a, nil

	case remoteDoneMsg:
		return a.refresh(), nil

	case prefillMsg:
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		return a.refresh(), cmd

	case copiedMsg:
		if msg.err != nil {
			return a.after(a.store.ShowToast(domain.ToastError, "Could not copy link")), nil
		}
		return a.after(a.store.ShowToast(domain.ToastSuccess, "Link copied")), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing != editNone {
		return a.updateEditing(msg)
	}
	if a.hasOverlay() {
		return a.overlayKeys(msg)
	}

	switch a.st.Screen {
	case domain.ScreenWelcome:
		return a.welcomeKeys(msg)
	case domain.ScreenRoleSelect:
		return a.roleSelectKeys(msg)
	case domain.ScreenOnboarding:
		return a.onboardingKeys(msg)
	case domain.ScreenAddProject:
		if msg.Type == tea.KeyEsc {
			return a.after(a.store.Navigate(domain.ScreenDashboard)), nil
		}
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		return a.refresh(), cmd
	}

	if next, cmd, ok := a.globalKeys(msg); ok {
		return next, cmd
	}

	switch a.st.Screen {
	case domain.ScreenDashboard:
		return a.dashboardKeys(msg)
	case domain.ScreenHistory, domain.ScreenActivity:
		return a.feedKeys(msg)
	case domain.ScreenArchive:
		return a.archiveKeys(msg)
	case domain.ScreenSettings:
		return a.settingsKeys(msg)
	case domain.ScreenContact:
		return a.contactKeys(msg)
	}
	return a, nil
}

// tab is one entry of the role's navigation bar. The center entry runs the
// primary action instead of switching screens.
type tab struct {
	key    string
	label  string
	screen domain.Screen
	center bool
}

func tabsFor(role domain.Role) []tab {
	if role == domain.RoleDesigner {
		return []tab{
			{"1", "Dashboard", domain.ScreenDashboard, false},
			{"2", "Activity", domain.ScreenActivity, false},
			{"3", "+ New", domain.ScreenAddProject, true},
			{"4", "Archive", domain.ScreenArchive, false},
			{"5", "Settings", domain.ScreenSettings, false},
		}
	}
	return []tab{
		{"1", "Project", domain.ScreenDashboard, false},
		{"2", "History", domain.ScreenHistory, false},
		{"3", "Approve", "", true},
		{"4", "Settings", domain.ScreenSettings, false},
		{"5", "Contact", domain.ScreenContact, false},
	}
}

func (a App) globalKeys(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "q":
		return a, tea.Quit, true
	case "n":
		return a.after(a.store.OpenNotifications()), nil, true
	}
	for _, t := range tabsFor(a.st.Role) {
		if t.key != key {
			continue
		}
		if t.center {
			return a.after(a.store.Approve()), nil, true
		}
		return a.after(a.store.Navigate(t.screen)), nil, true
	}
	return a, nil, false
}

// startEdit focuses an inline input prefilled with value.
func (a App) startEdit(target editTarget, value string) (App, tea.Cmd) {
	a.editing = target
	a.input = value
	return a, nil
}

func (a App) updateEditing(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.editing = editNone
		a.input = ""
		return a, nil
	case tea.KeyEnter:
		target, value := a.editing, a.input
		a.editing = editNone
		a.input = ""
		return a.commitEdit(target, value)
	}
	a.input = editKey(a.input, msg)
	return a, nil
}

func (a App) commitEdit(target editTarget, value string) (App, tea.Cmd) {
	switch target {
	case editToken:
		return a.after(a.store.SetToken(value)), nil
	case editHours:
		h, err := parseHours(value)
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		return a.after(a.store.SetHours(h)), nil
	case editName:
		if strings.TrimSpace(value) == "" {
			return a, nil
		}
		return a.after(a.store.RenameUser(strings.TrimSpace(value))), nil
	case editLog:
		_, err := a.store.AddLog(value)
		return a.after(err), nil
	case editInvite:
		return a.after(a.store.JoinByInvite(value)), nil
	}
	return a, nil
}

// refresh pulls the latest snapshot after a synchronous store call.
func (a App) refresh() App {
	st := a.store.Snapshot()
	if st.Version >= a.st.Version {
		a.st = st
	}
	return a.syncScreen()
}

// after refreshes state and surfaces errors the store did not toast itself.
func (a App) after(err error) App {
	a = a.refresh()
	if err == nil || errors.Is(err, store.ErrNoToken) || errors.Is(err, store.ErrNoTariff) {
		return a
	}
	var verr *store.ValidationError
	if errors.As(err, &verr) && verr.Has(store.FieldText) {
		a.status = "Write something first"
		return a
	}
	switch {
	case errors.Is(err, store.ErrNoActiveProject):
		a.status = "Pick a project first"
	case errors.Is(err, store.ErrInvalidInvite):
		a.status = "That link has no invite code"
	case errors.Is(err, store.ErrProjectNotFound):
		a.status = "Project not found"
	default:
		a.status = err.Error()
	}
	return a
}

// syncScreen resets list cursors when the screen changes.
func (a App) syncScreen() App {
	if a.st.Screen != a.screen {
		a.screen = a.st.Screen
		a.cursor = 0
		a.emoji = 0
	}
	return a
}

func syncCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		_, err := s.SyncDesignAccount(context.Background())
		return remoteDoneMsg{err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (a App) View() string {
	header := a.headerView()

	var body, help string
	switch a.st.Screen {
	case domain.ScreenWelcome:
		body, help = a.welcomeView(), helpLine("enter", "sign in", "q", "quit")
	case domain.ScreenRoleSelect:
		body, help = a.roleSelectView(), helpLine("d", "designer", "c", "client", "enter", "continue")
	case domain.ScreenOnboarding:
		body, help = a.onboardingView(), helpLine("t", "token", "s", "sync", "enter", "skip")
	case domain.ScreenAddProject:
		body = a.create.View()
		help = helpLine("tab", "next", "ctrl+s", "create", "esc", "cancel")
	case domain.ScreenDashboard:
		body, help = a.dashboardView()
	case domain.ScreenHistory, domain.ScreenActivity:
		body, help = a.feedView()
	case domain.ScreenArchive:
		body, help = a.archiveView()
	case domain.ScreenSettings:
		body, help = a.settingsView()
	case domain.ScreenContact:
		body, help = a.contactView(), helpLine("enter", "open chat", "q", "quit")
	}

	if overlay, overlayHelp := a.overlayView(); overlay != "" {
		body, help = overlay, overlayHelp
	}
	if a.editing != editNone {
		help = helpLine("enter", "save", "esc", "cancel")
	}

	var footer []string
	if a.st.Toast.IsOpen {
		footer = append(footer, toastStyle(a.st.Toast.Type).Render(a.st.Toast.Message))
	}
	if a.status != "" {
		footer = append(footer, " "+errorStyle.Render(a.status))
	}
	footer = append(footer, help)

	chrome := lipgloss.Height(header) + len(footer) + 1
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")
	return header + "\n" + body + "\n" + strings.Join(footer, "\n")
}

func (a App) headerView() string {
	logo := center(renderShimmerLogo(a.frame), a.width)

	var meta []string
	if a.st.User.FirstName != "" {
		meta = append(meta, a.st.User.FirstName)
	}
	if a.st.Role != domain.RoleNone {
		meta = append(meta, string(a.st.Role))
	}
	if n := a.st.UnreadCount(a.st.Role); n > 0 && a.st.Role != domain.RoleNone {
		meta = append(meta, unreadDotStyle.Render("●")+dimStyle.Render(fmt.Sprintf("%d", n)))
	}
	if a.latest != "" {
		meta = append(meta, accentStyle.Render(a.latest+" available"))
	}
	header := logo + "\n" + center(metaStyle.Render(strings.Join(meta, " · ")), a.width)

	switch a.st.Screen {
	case domain.ScreenWelcome, domain.ScreenRoleSelect, domain.ScreenOnboarding:
		return header
	}
	return header + "\n" + a.tabBar()
}

func (a App) tabBar() string {
	tabs := tabsFor(a.st.Role)
	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		switch {
		case t.center:
			label = accentStyle.Render(t.key) + " " + accentStyle.Bold(true).Render(t.label)
		case t.screen == a.st.ActiveTab:
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.label)
		default:
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.label)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}

// center places s in the middle of width columns.
func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
