package store

import (
	"encoding/json"
	"log/slog"

	"github.com/naveenspark/sdvig/internal/hostbridge"
	"github.com/naveenspark/sdvig/pkg/domain"
)

// Persisted keys. Each holds one JSON-encoded state field.
const (
	KeyProgress      = "sdvig_progress"
	KeyHours         = "sdvig_hours"
	KeyWorkTimer     = "sdvig_work_timer"
	KeyLastTimerDate = "sdvig_last_timer_date"
	KeyHistory       = "sdvig_history"
	KeyToken         = "sdvig_token"
	KeyArchive       = "sdvig_archive"
	KeyClientNotif   = "sdvig_c_notif"
	KeyDesignerNotif = "sdvig_d_notif"
	KeyApproved      = "sdvig_approved"
	KeyTariff        = "sdvig_tariff"
	KeySubscription  = "sdvig_sub"
	KeyActiveProject = "sdvig_active_proj"
	KeyUser          = "sdvig_user"
)

// Keys lists every persisted key.
var Keys = []string{
	KeyProgress, KeyHours, KeyWorkTimer, KeyLastTimerDate, KeyHistory, KeyToken,
	KeyArchive, KeyClientNotif, KeyDesignerNotif, KeyApproved, KeyTariff,
	KeySubscription, KeyActiveProject, KeyUser,
}

// Defaults for fields missing from storage.
const (
	DefaultProgress = 25
	DefaultHours    = 12
)

// load reads each key independently. A missing or unparseable value falls
// back to its default.
func (s *Store) load() State {
	st := State{
		Screen:       domain.ScreenWelcome,
		ActiveTab:    domain.ScreenDashboard,
		PomodoroMode: domain.PomodoroIdle,
		PomodoroTime: domain.PomodoroWorkSeconds,
	}

	st.Progress = clampPercent(s.loadKey(KeyProgress, DefaultProgress))
	st.ApprovedProgress = clampPercent(s.loadKey(KeyApproved, 0))
	st.Hours = max(s.loadKey(KeyHours, DefaultHours), 0)
	st.WorkTimer = max(s.loadKey(KeyWorkTimer, 0), 0)
	st.LastTimerDate = loadInto(s, KeyLastTimerDate, s.today())
	st.HistoryLogs = loadInto(s, KeyHistory, []domain.Log{})
	st.Token = loadInto(s, KeyToken, "")
	st.Archive = loadInto(s, KeyArchive, []domain.Project{})
	st.ClientNotifications = loadInto(s, KeyClientNotif, []domain.Notification{})
	st.DesignerNotifications = loadInto(s, KeyDesignerNotif, []domain.Notification{})
	st.ActiveProject = loadInto[*domain.Project](s, KeyActiveProject, nil)
	st.Subscription = loadInto(s, KeySubscription, domain.DefaultSubscription)
	st.User = loadInto(s, KeyUser, hostbridge.DefaultUser())

	if t := loadInto[*domain.Tariff](s, KeyTariff, nil); t != nil && domain.ValidTariff(*t) {
		st.ActiveTariff = t
	}

	for _, p := range st.Archive {
		s.ids.observe(p.ID)
	}
	for _, l := range st.HistoryLogs {
		s.ids.observe(l.ID)
	}
	if st.ActiveProject != nil {
		s.ids.observe(st.ActiveProject.ID)
	}
	return st
}

func (s *Store) loadKey(key string, def int) int {
	return loadInto(s, key, def)
}

func loadInto[T any](s *Store, key string, def T) T {
	raw, ok, err := s.medium.Get(key)
	if err != nil {
		s.log.Warn("read persisted key", slog.String("key", key), slog.Any("err", err))
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Debug("discard unparseable key", slog.String("key", key), slog.Any("err", err))
		return def
	}
	return v
}

// rolloverLocked resets the work timer when its stamp is not today.
func (s *Store) rolloverLocked() {
	today := s.today()
	if s.st.LastTimerDate == today {
		return
	}
	s.log.Debug("work timer day rollover",
		slog.String("from", s.st.LastTimerDate),
		slog.String("to", today),
		slog.Int("discarded_seconds", s.st.WorkTimer),
	)
	s.st.WorkTimer = 0
	s.st.LastTimerDate = today
}

func (s *Store) encode() map[string][]byte {
	fields := map[string]any{
		KeyProgress:      s.st.Progress,
		KeyHours:         s.st.Hours,
		KeyWorkTimer:     s.st.WorkTimer,
		KeyLastTimerDate: s.st.LastTimerDate,
		KeyHistory:       s.st.HistoryLogs,
		KeyToken:         s.st.Token,
		KeyArchive:       s.st.Archive,
		KeyClientNotif:   s.st.ClientNotifications,
		KeyDesignerNotif: s.st.DesignerNotifications,
		KeyApproved:      s.st.ApprovedProgress,
		KeyTariff:        s.st.ActiveTariff,
		KeySubscription:  s.st.Subscription,
		KeyActiveProject: s.st.ActiveProject,
		KeyUser:          s.st.User,
	}
	out := make(map[string][]byte, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			s.log.Error("encode state field", slog.String("key", k), slog.Any("err", err))
			continue
		}
		out[k] = raw
	}
	return out
}

// persistLocked writes the full persisted subset when any field changed since
// the last successful write. A failed write is retried on the next mutation.
func (s *Store) persistLocked() {
	entries := s.encode()
	if s.saved != nil && sameEntries(s.saved, entries) {
		return
	}
	if err := s.medium.PutAll(entries); err != nil {
		s.log.Warn("persist state", slog.Any("err", err))
		return
	}
	s.saved = entries
}

func sameEntries(a, b map[string][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if string(b[k]) != string(v) {
			return false
		}
	}
	return true
}
