package store

import "github.com/naveenspark/sdvig/pkg/domain"

// ShowToast opens a toast that closes after ToastDuration. A newer toast
// takes over the dismissal of the one it replaces.
func (s *Store) ShowToast(typ domain.ToastType, msg string) error {
	return s.mutate(func() error {
		s.toastLocked(typ, msg)
		return nil
	})
}

func (s *Store) toastLocked(typ domain.ToastType, msg string) {
	s.st.Toast = domain.Toast{IsOpen: true, Type: typ, Message: msg}
	s.scheduleLocked(&s.toast, ToastDuration, func() {
		s.st.Toast.IsOpen = false
	})
}
