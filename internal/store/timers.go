package store

import (
	"log/slog"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// ToggleWorkTimer starts or stops the work timer.
func (s *Store) ToggleWorkTimer() error {
	return s.mutate(func() error {
		if s.st.WorkTimerRunning {
			s.stopWorkLocked()
		} else {
			s.startWorkLocked()
		}
		return nil
	})
}

// StartWorkTimer starts counting worked seconds. The count resets first when
// it was last active on another day.
func (s *Store) StartWorkTimer() error {
	return s.mutate(func() error {
		if s.st.WorkTimerRunning {
			return errSkip
		}
		s.startWorkLocked()
		return nil
	})
}

// StopWorkTimer pauses the work timer.
func (s *Store) StopWorkTimer() error {
	return s.mutate(func() error {
		if !s.st.WorkTimerRunning {
			return errSkip
		}
		s.stopWorkLocked()
		return nil
	})
}

func (s *Store) startWorkLocked() {
	s.rolloverLocked()
	s.st.WorkTimerRunning = true
	s.scheduleWorkTickLocked()
	s.log.Debug("work timer started", slog.Int("seconds", s.st.WorkTimer))
}

func (s *Store) stopWorkLocked() {
	s.st.WorkTimerRunning = false
	s.cancelLocked(&s.work)
	s.log.Debug("work timer stopped", slog.Int("seconds", s.st.WorkTimer))
}

func (s *Store) scheduleWorkTickLocked() {
	s.scheduleLocked(&s.work, tickInterval, func() {
		if !s.st.WorkTimerRunning {
			return
		}
		s.st.WorkTimer++
		s.scheduleWorkTickLocked()
	})
}

// TogglePomodoro starts a work session from idle and resets to idle
// otherwise.
func (s *Store) TogglePomodoro() error {
	return s.mutate(func() error {
		if s.st.PomodoroMode == domain.PomodoroIdle {
			s.st.PomodoroMode = domain.PomodoroWork
			s.st.PomodoroTime = domain.PomodoroWorkSeconds
			s.schedulePomodoroTickLocked()
			return nil
		}
		s.cancelLocked(&s.pomodoro)
		s.st.PomodoroMode = domain.PomodoroIdle
		s.st.PomodoroTime = domain.PomodoroWorkSeconds
		return nil
	})
}

func (s *Store) schedulePomodoroTickLocked() {
	s.scheduleLocked(&s.pomodoro, tickInterval, s.pomodoroTickLocked)
}

// pomodoroTickLocked counts down one second and switches phase on the tick
// that reaches zero.
func (s *Store) pomodoroTickLocked() {
	if s.st.PomodoroMode == domain.PomodoroIdle {
		return
	}
	s.st.PomodoroTime--
	if s.st.PomodoroTime > 0 {
		s.schedulePomodoroTickLocked()
		return
	}
	switch s.st.PomodoroMode {
	case domain.PomodoroWork:
		s.st.PomodoroMode = domain.PomodoroRest
		s.st.PomodoroTime = domain.PomodoroRestSeconds
		s.toastLocked(domain.ToastSuccess, "Great work! Time to rest.")
		s.schedulePomodoroTickLocked()
	case domain.PomodoroRest:
		s.st.PomodoroMode = domain.PomodoroIdle
		s.st.PomodoroTime = domain.PomodoroWorkSeconds
		s.toastLocked(domain.ToastInfo, "Log 25 min?")
	}
	s.log.Debug("pomodoro phase", slog.String("mode", string(s.st.PomodoroMode)))
}
