package domain

// Screen identifies a top-level view.
type Screen string

const (
	ScreenWelcome    Screen = "welcome"
	ScreenRoleSelect Screen = "role_select"
	ScreenOnboarding Screen = "onboarding"
	ScreenDashboard  Screen = "dashboard"
	ScreenHistory    Screen = "history"
	ScreenArchive    Screen = "archive"
	ScreenSettings   Screen = "settings"
	ScreenActivity   Screen = "activity"
	ScreenContact    Screen = "contact"
	ScreenAddProject Screen = "add_project"
)

// Screens lists every screen in navigation order.
var Screens = []Screen{
	ScreenWelcome,
	ScreenRoleSelect,
	ScreenOnboarding,
	ScreenDashboard,
	ScreenHistory,
	ScreenArchive,
	ScreenSettings,
	ScreenActivity,
	ScreenContact,
	ScreenAddProject,
}

// ToastType is the tone of a toast message.
type ToastType string

const (
	ToastNone    ToastType = ""
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
)

// Toast is the transient status message shown over every screen.
type Toast struct {
	IsOpen  bool      `json:"isOpen"`
	Type    ToastType `json:"type"`
	Message string    `json:"message"`
}

// PomodoroMode is the state of the focus timer.
type PomodoroMode string

const (
	PomodoroIdle PomodoroMode = "idle"
	PomodoroWork PomodoroMode = "work"
	PomodoroRest PomodoroMode = "rest"
)

// Pomodoro session lengths in seconds.
const (
	PomodoroWorkSeconds = 25 * 60
	PomodoroRestSeconds = 5 * 60
)
