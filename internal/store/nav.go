package store

import (
	"fmt"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// SetScreen shows screen without touching the active tab.
func (s *Store) SetScreen(screen domain.Screen) error {
	return s.mutate(func() error {
		s.st.Screen = screen
		return nil
	})
}

// SetActiveTab highlights tab in the navigation bar.
func (s *Store) SetActiveTab(tab domain.Screen) error {
	return s.mutate(func() error {
		s.st.ActiveTab = tab
		return nil
	})
}

// Navigate moves to screen and makes it the active tab.
func (s *Store) Navigate(screen domain.Screen) error {
	return s.mutate(func() error {
		s.navigateLocked(screen)
		return nil
	})
}

func (s *Store) navigateLocked(screen domain.Screen) {
	s.st.Screen = screen
	s.st.ActiveTab = screen
}

// SelectRole sets the acting role.
func (s *Store) SelectRole(role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("store.SelectRole: unknown role %q", role)
	}
	return s.mutate(func() error {
		s.st.Role = role
		return nil
	})
}

// ContinueFromRoleSelect leaves the role picker: designers go through
// onboarding, clients land on the dashboard.
func (s *Store) ContinueFromRoleSelect() error {
	return s.mutate(func() error {
		switch s.st.Role {
		case domain.RoleDesigner:
			s.st.Screen = domain.ScreenOnboarding
		case domain.RoleClient:
			s.navigateLocked(domain.ScreenDashboard)
		default:
			return errSkip
		}
		return nil
	})
}

// Logout clears the role and returns to the welcome screen.
func (s *Store) Logout() error {
	return s.mutate(func() error {
		s.st.Role = domain.RoleNone
		s.st.Screen = domain.ScreenWelcome
		s.st.ActiveTab = domain.ScreenDashboard
		s.st.NotificationsOpen = false
		s.st.ApproveModalOpen = false
		return nil
	})
}

// SetFullscreen records the host's fullscreen state.
func (s *Store) SetFullscreen(on bool) error {
	return s.mutate(func() error {
		s.st.Fullscreen = on
		return nil
	})
}
