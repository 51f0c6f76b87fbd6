package store

import "github.com/naveenspark/sdvig/pkg/domain"

// OpenNotifications opens the panel and marks the acting role's list read.
func (s *Store) OpenNotifications() error {
	return s.mutate(func() error {
		s.st.NotificationsOpen = true
		list := s.listLocked()
		read := make([]domain.Notification, len(*list))
		for i, n := range *list {
			n.Unread = false
			read[i] = n
		}
		*list = read
		return nil
	})
}

// CloseNotifications closes the panel.
func (s *Store) CloseNotifications() error {
	return s.mutate(func() error {
		s.st.NotificationsOpen = false
		return nil
	})
}

// ClearNotifications empties the acting role's list.
func (s *Store) ClearNotifications() error {
	return s.mutate(func() error {
		*s.listLocked() = []domain.Notification{}
		return nil
	})
}

// UnreadCount counts role's unread notifications.
func (s *Store) UnreadCount(role domain.Role) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.UnreadCount(role)
}

func (s *Store) listLocked() *[]domain.Notification {
	if s.st.Role == domain.RoleDesigner {
		return &s.st.DesignerNotifications
	}
	return &s.st.ClientNotifications
}
