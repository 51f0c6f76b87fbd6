package store

import (
	"fmt"
	"strings"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// SetToken stores the design-file API token.
func (s *Store) SetToken(token string) error {
	return s.mutate(func() error {
		s.st.Token = strings.TrimSpace(token)
		return nil
	})
}

// ResetToken forgets the design-file API token.
func (s *Store) ResetToken() error {
	return s.mutate(func() error {
		s.st.Token = ""
		s.toastLocked(domain.ToastInfo, "Token reset")
		return nil
	})
}

// SetHours records the hours budgeted for the active project.
func (s *Store) SetHours(h int) error {
	return s.mutate(func() error {
		s.st.Hours = max(h, 0)
		return nil
	})
}

// RenameUser changes the displayed first name.
func (s *Store) RenameUser(name string) error {
	return s.mutate(func() error {
		s.st.User.FirstName = name
		return nil
	})
}

// SelectTariff marks plan t for purchase.
func (s *Store) SelectTariff(t domain.Tariff) error {
	if !domain.ValidTariff(t) {
		return fmt.Errorf("store.SelectTariff: %q: %w", t, ErrUnknownTariff)
	}
	return s.mutate(func() error {
		s.st.ActiveTariff = &t
		return nil
	})
}

// PurchaseTariff pays for the selected plan. The subscription switches after
// PaymentDelay. Basic is free and needs no payment.
func (s *Store) PurchaseTariff() error {
	return s.mutate(func() error {
		if s.st.ActiveTariff == nil {
			s.toastLocked(domain.ToastError, "Choose a tariff plan")
			return fmt.Errorf("store.PurchaseTariff: %w", ErrNoTariff)
		}
		plan := *s.st.ActiveTariff
		if plan == domain.TariffBasic {
			return errSkip
		}
		s.toastLocked(domain.ToastInfo, "Redirecting to payment...")
		s.scheduleLocked(&s.payment, PaymentDelay, func() {
			s.toastLocked(domain.ToastSuccess, "Payment successful")
			s.st.Subscription = domain.Subscription{Plan: plan, DaysLeft: 30}
		})
		return nil
	})
}
