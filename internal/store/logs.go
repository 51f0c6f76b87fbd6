package store

import (
	"fmt"
	"strings"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// FieldText is the log entry field reported by ValidationError.
const FieldText = "text"

// AddLog prepends a progress note stamped with the current progress. Blank
// text is rejected without a toast.
func (s *Store) AddLog(text string) (domain.Log, error) {
	var out domain.Log
	if strings.TrimSpace(text) == "" {
		return out, &ValidationError{Fields: []string{FieldText}}
	}
	err := s.mutate(func() error {
		out = domain.Log{
			ID:        s.ids.next(s.sched.Now()),
			Date:      domain.JustNow,
			Text:      text,
			Progress:  s.st.Progress,
			Reactions: []string{},
		}
		s.st.HistoryLogs = append([]domain.Log{out}, s.st.HistoryLogs...)
		s.toastLocked(domain.ToastSuccess, "Saved")
		return nil
	})
	return out, err
}

// React toggles emoji on log logID. A client adding a reaction notifies the
// designer. Unknown ids are ignored.
func (s *Store) React(logID int64, emoji string) error {
	return s.mutate(func() error {
		for i, l := range s.st.HistoryLogs {
			if l.ID != logID {
				continue
			}
			next, added := l.ToggleReaction(emoji)
			logs := append([]domain.Log(nil), s.st.HistoryLogs...)
			logs[i] = next
			s.st.HistoryLogs = logs
			if added && s.st.Role == domain.RoleClient {
				s.notifyLocked(domain.RoleDesigner, fmt.Sprintf("Client reacted %s to: \"%s\"", emoji, l.Text))
			}
			return nil
		}
		return errSkip
	})
}
