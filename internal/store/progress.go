package store

import (
	"fmt"
	"log/slog"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// RequestProgressUpdate proposes v (clamped to 0..100) as the new progress.
// The value commits after CommitDelay unless undone or superseded first.
func (s *Store) RequestProgressUpdate(v int) error {
	v = clampPercent(v)
	return s.mutate(func() error {
		s.st.PendingProgress = &v
		s.toastLocked(domain.ToastInfo, "Syncing...")
		s.scheduleLocked(&s.commit, CommitDelay, func() {
			s.commitProgressLocked(v)
		})
		return nil
	})
}

func (s *Store) commitProgressLocked(v int) {
	s.st.Progress = v
	s.st.PendingProgress = nil
	s.toastLocked(domain.ToastSuccess, "Progress updated")
	s.notifyLocked(domain.RoleClient, fmt.Sprintf("Project is %d%% complete", v))
	s.log.Debug("progress committed", slog.Int("progress", v))
}

// UndoProgressUpdate drops the pending value if its commit has not fired yet.
func (s *Store) UndoProgressUpdate() error {
	return s.mutate(func() error {
		if !s.cancelLocked(&s.commit) {
			return errSkip
		}
		s.st.PendingProgress = nil
		s.toastLocked(domain.ToastInfo, "Cancelled")
		return nil
	})
}
