package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// Form field names reported by ValidationError.
const (
	FieldName     = "name"
	FieldDesc     = "desc"
	FieldCost     = "cost"
	FieldDeadline = "deadline"
)

// ProjectForm is the input of the project creation screen.
type ProjectForm struct {
	Name         string
	Desc         string
	Cost         string
	Deadline     string
	FigmaURL     string
	ThumbnailURL string
}

func (f ProjectForm) missing() []string {
	var out []string
	for _, c := range []struct{ field, value string }{
		{FieldName, f.Name},
		{FieldDesc, f.Desc},
		{FieldCost, f.Cost},
		{FieldDeadline, f.Deadline},
	} {
		if strings.TrimSpace(c.value) == "" {
			out = append(out, c.field)
		}
	}
	return out
}

// Invited project placeholders.
const (
	invitedFallbackID = 999
	invitedName       = "Project from designer"
	invitedDesc       = "Project description"
	invitedPrice      = "100 000 ₽"
)

// AddProject validates f and prepends the new project to the archive.
func (s *Store) AddProject(f ProjectForm) (domain.Project, error) {
	var out domain.Project
	err := s.mutate(func() error {
		missing := f.missing()
		price, ok := formatPrice(f.Cost)
		if !ok && len(missing) == 0 {
			missing = []string{FieldCost}
		}
		if len(missing) > 0 {
			s.toastLocked(domain.ToastError, "Fill in all fields")
			return &ValidationError{Fields: missing}
		}
		now := s.sched.Now()
		out = domain.Project{
			ID:           s.ids.next(now),
			Name:         strings.TrimSpace(f.Name),
			Desc:         strings.TrimSpace(f.Desc),
			Client:       domain.ClientUnspecified,
			Price:        price,
			Deadline:     strings.TrimSpace(f.Deadline),
			Date:         now.Format(dateLayout),
			FigmaURL:     strings.TrimSpace(f.FigmaURL),
			ThumbnailURL: f.ThumbnailURL,
		}
		s.st.Archive = append([]domain.Project{out}, s.st.Archive...)
		s.toastLocked(domain.ToastSuccess, "Project added to archive")
		s.navigateLocked(domain.ScreenArchive)
		return nil
	})
	return out, err
}

// PrefillFromDesignFile looks up the design file behind f.FigmaURL and fills
// the form's name and thumbnail. The form comes back unchanged on failure.
func (s *Store) PrefillFromDesignFile(ctx context.Context, f ProjectForm) (ProjectForm, error) {
	file, err := s.FetchDesignFile(ctx, f.FigmaURL)
	if err != nil {
		return f, err
	}
	f.Name = file.Name
	f.ThumbnailURL = file.ThumbnailURL
	if err := s.ShowToast(domain.ToastSuccess, "Project data loaded from Figma"); err != nil {
		return f, err
	}
	return f, nil
}

// SelectProject makes a copy of archive entry id the active project.
func (s *Store) SelectProject(id int64) error {
	return s.mutate(func() error {
		p, ok := s.st.FindProject(id)
		if !ok {
			return errorf(ErrProjectNotFound, "store.SelectProject: id %d", id)
		}
		s.st.ActiveProject = &p
		s.toastLocked(domain.ToastSuccess, "Project selected")
		s.navigateLocked(domain.ScreenDashboard)
		return nil
	})
}

// RequestDelete asks for confirmation before removing archive entry id.
func (s *Store) RequestDelete(id int64) error {
	return s.mutate(func() error {
		if _, ok := s.st.FindProject(id); !ok {
			return errorf(ErrProjectNotFound, "store.RequestDelete: id %d", id)
		}
		s.st.ProjectToDelete = &id
		return nil
	})
}

// CancelDelete dismisses the delete confirmation.
func (s *Store) CancelDelete() error {
	return s.mutate(func() error {
		if s.st.ProjectToDelete == nil {
			return errSkip
		}
		s.st.ProjectToDelete = nil
		return nil
	})
}

// ConfirmDelete removes the entry awaiting confirmation. The active project is
// cleared only when it is the removed entry.
func (s *Store) ConfirmDelete() error {
	return s.mutate(func() error {
		if s.st.ProjectToDelete == nil {
			return ErrNothingPending
		}
		id := *s.st.ProjectToDelete
		kept := make([]domain.Project, 0, len(s.st.Archive))
		for _, p := range s.st.Archive {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.st.Archive = kept
		if s.st.ActiveProject != nil && s.st.ActiveProject.ID == id {
			s.st.ActiveProject = nil
		}
		if s.st.ProjectDetailsID != nil && *s.st.ProjectDetailsID == id {
			s.st.ProjectDetailsID = nil
		}
		s.st.ProjectToDelete = nil
		s.toastLocked(domain.ToastSuccess, "Project deleted")
		return nil
	})
}

// OpenProjectDetails shows the details card of archive entry id.
func (s *Store) OpenProjectDetails(id int64) error {
	return s.mutate(func() error {
		if _, ok := s.st.FindProject(id); !ok {
			return errorf(ErrProjectNotFound, "store.OpenProjectDetails: id %d", id)
		}
		s.st.ProjectDetailsID = &id
		return nil
	})
}

// CloseProjectDetails hides the details card.
func (s *Store) CloseProjectDetails() error {
	return s.mutate(func() error {
		if s.st.ProjectDetailsID == nil {
			return errSkip
		}
		s.st.ProjectDetailsID = nil
		return nil
	})
}

// JoinByInvite activates the project a designer shared through link.
func (s *Store) JoinByInvite(link string) error {
	if !strings.Contains(link, "start=") {
		return fmt.Errorf("store.JoinByInvite: %w", ErrInvalidInvite)
	}
	id := inviteID(link)
	return s.mutate(func() error {
		s.ids.observe(id)
		p := domain.Project{
			ID:       id,
			Name:     invitedName,
			Desc:     invitedDesc,
			Client:   either(s.st.User.FirstName, domain.FallbackUserName),
			Price:    invitedPrice,
			Deadline: domain.ClientUnspecified,
			Date:     s.sched.Now().Format(dateLayout),
		}
		s.st.ActiveProject = &p
		s.toastLocked(domain.ToastSuccess, "Access granted")
		return nil
	})
}

func inviteID(link string) int64 {
	raw := link[strings.Index(link, "start=")+len("start="):]
	if u, err := url.Parse(strings.TrimSpace(link)); err == nil {
		if v := u.Query().Get("start"); v != "" {
			raw = v
		}
	}
	if i := strings.IndexAny(raw, "&# "); i >= 0 {
		raw = raw[:i]
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return invitedFallbackID
	}
	return id
}

// InviteLink is the Telegram deep link that hands the active project to a
// client.
func (s *Store) InviteLink() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.ActiveProject == nil {
		return "", fmt.Errorf("store.InviteLink: %w", ErrNoActiveProject)
	}
	return fmt.Sprintf("https://t.me/%s?start=%d", s.botName, s.st.ActiveProject.ID), nil
}

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}
