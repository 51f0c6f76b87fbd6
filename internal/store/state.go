package store

import "github.com/naveenspark/sdvig/pkg/domain"

// State is a point-in-time copy of everything the dashboard shows.
type State struct {
	// Version increases with every mutation; observers drop older snapshots.
	Version uint64

	Screen    domain.Screen
	Role      domain.Role
	ActiveTab domain.Screen

	Progress         int
	PendingProgress  *int
	ApprovedProgress int

	Hours            int
	WorkTimer        int
	WorkTimerRunning bool
	LastTimerDate    string

	HistoryLogs []domain.Log

	Token string

	Archive          []domain.Project
	ActiveProject    *domain.Project
	ProjectToDelete  *int64
	ProjectDetailsID *int64

	ClientNotifications   []domain.Notification
	DesignerNotifications []domain.Notification

	ActiveTariff *domain.Tariff
	Subscription domain.Subscription

	User domain.User

	NotificationsOpen bool
	ApproveModalOpen  bool
	Fullscreen        bool
	Toast             domain.Toast

	PomodoroMode domain.PomodoroMode
	PomodoroTime int
}

// Notifications returns the list belonging to role.
func (s State) Notifications(role domain.Role) []domain.Notification {
	if role == domain.RoleDesigner {
		return s.DesignerNotifications
	}
	return s.ClientNotifications
}

// UnreadCount counts unread notifications for role.
func (s State) UnreadCount(role domain.Role) int {
	n := 0
	for _, x := range s.Notifications(role) {
		if x.Unread {
			n++
		}
	}
	return n
}

// DisplayedProgress is the pending value while a commit is in flight.
func (s State) DisplayedProgress() int {
	if s.PendingProgress != nil {
		return *s.PendingProgress
	}
	return s.Progress
}

// VisibleArchive returns the archive entries the current tariff unlocks.
func (s State) VisibleArchive() []domain.Project {
	limit := domain.ArchiveLimit(s.ActiveTariff)
	if limit < 0 || limit >= len(s.Archive) {
		return s.Archive
	}
	return s.Archive[:limit]
}

// HiddenArchiveCount is how many archive entries the tariff hides.
func (s State) HiddenArchiveCount() int {
	return len(s.Archive) - len(s.VisibleArchive())
}

// FindProject looks up an archive entry by id.
func (s State) FindProject(id int64) (domain.Project, bool) {
	for _, p := range s.Archive {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (s State) clone() State {
	out := s
	out.PendingProgress = clonePtr(s.PendingProgress)
	out.ProjectToDelete = clonePtr(s.ProjectToDelete)
	out.ProjectDetailsID = clonePtr(s.ProjectDetailsID)
	out.ActiveTariff = clonePtr(s.ActiveTariff)
	out.ActiveProject = clonePtr(s.ActiveProject)

	out.HistoryLogs = make([]domain.Log, len(s.HistoryLogs))
	for i, l := range s.HistoryLogs {
		l.Reactions = append([]string(nil), l.Reactions...)
		out.HistoryLogs[i] = l
	}
	out.Archive = append([]domain.Project(nil), s.Archive...)
	out.ClientNotifications = append([]domain.Notification(nil), s.ClientNotifications...)
	out.DesignerNotifications = append([]domain.Notification(nil), s.DesignerNotifications...)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
