package store

import (
	"fmt"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// Placeholders for a completed project archived without an active project.
const (
	completedName   = "Current project"
	completedDesc   = "Completed project"
	completedClient = "Client"
	completedPrice  = "120 000 ₽"
)

// RequestApproval opens the approval modal when progress moved past the last
// approved stage.
func (s *Store) RequestApproval() error {
	return s.mutate(func() error {
		s.requestApprovalLocked()
		return nil
	})
}

func (s *Store) requestApprovalLocked() {
	if s.st.Progress > s.st.ApprovedProgress {
		s.st.ApproveModalOpen = true
		return
	}
	s.toastLocked(domain.ToastInfo, "No new stages to confirm")
}

// StartProjectCreation opens the project creation form.
func (s *Store) StartProjectCreation() error {
	return s.Navigate(domain.ScreenAddProject)
}

// Approve is the primary action of the navigation bar: clients request an
// approval, designers start a new project.
func (s *Store) Approve() error {
	return s.mutate(func() error {
		if s.st.Role == domain.RoleClient {
			s.requestApprovalLocked()
			return nil
		}
		s.navigateLocked(domain.ScreenAddProject)
		return nil
	})
}

// CancelApproval closes the approval modal.
func (s *Store) CancelApproval() error {
	return s.mutate(func() error {
		s.st.ApproveModalOpen = false
		return nil
	})
}

// ConfirmApproval records the current progress as approved. A fully complete
// project moves to the archive and the dashboard starts over.
func (s *Store) ConfirmApproval() error {
	return s.mutate(func() error {
		if !s.st.ApproveModalOpen {
			return ErrNothingPending
		}
		p := s.st.Progress
		s.st.ApproveModalOpen = false
		s.st.ApprovedProgress = p

		if p < 100 {
			s.toastLocked(domain.ToastSuccess, "Stage confirmed")
			s.notifyLocked(domain.RoleDesigner, fmt.Sprintf("Client confirmed stage %d%%", p))
			return nil
		}

		s.toastLocked(domain.ToastSuccess, "Project confirmed")
		s.notifyLocked(domain.RoleDesigner, "Client confirmed project completion!")
		s.st.Archive = append([]domain.Project{s.completedLocked()}, s.st.Archive...)
		s.st.ActiveProject = nil
		s.st.Progress = 0
		return nil
	})
}

func (s *Store) completedLocked() domain.Project {
	out := domain.Project{
		Name:   completedName,
		Desc:   completedDesc,
		Client: completedClient,
		Price:  completedPrice,
		Date:   s.sched.Now().Format(dateLayout),
	}
	if a := s.st.ActiveProject; a != nil {
		out.Name = either(a.Name, out.Name)
		out.Desc = either(a.Desc, out.Desc)
		out.Client = either(a.Client, out.Client)
		out.Price = either(a.Price, out.Price)
		out.Date = either(a.Date, out.Date)
		out.FigmaURL = a.FigmaURL
		out.ThumbnailURL = a.ThumbnailURL
	}
	out.ID = s.ids.next(s.sched.Now())
	out.Deadline = domain.DeadlineCompleted
	return out
}

func either(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
