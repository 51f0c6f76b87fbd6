package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/naveenspark/sdvig/internal/logging"
	"github.com/naveenspark/sdvig/pkg/domain"
	"github.com/naveenspark/sdvig/pkg/figma"
)

var errNoClient = errors.New("design-file client not configured")

// SyncDesignAccount checks the stored token against the design-file API and
// greets the account owner. The dashboard opens SyncNavDelay after success.
func (s *Store) SyncDesignAccount(ctx context.Context) (*figma.Me, error) {
	var token string
	err := s.mutate(func() error {
		token = s.st.Token
		if token == "" {
			s.toastLocked(domain.ToastError, "Enter a token")
			return fmt.Errorf("store.SyncDesignAccount: %w", ErrNoToken)
		}
		s.toastLocked(domain.ToastInfo, "Syncing with Figma...")
		return nil
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	me, err := s.getMe(ctx, token)
	if err != nil {
		s.log.Warn("figma account sync failed",
			slog.Any("err", err),
			slog.Duration("took", logging.RoundMS(time.Since(start))),
		)
		_ = s.ShowToast(domain.ToastError, "Invalid Figma token")
		return nil, fmt.Errorf("store.SyncDesignAccount: %w", err)
	}
	s.log.Info("figma account synced",
		slog.String("handle", me.Handle),
		slog.Duration("took", logging.RoundMS(time.Since(start))),
	)

	err = s.mutate(func() error {
		s.toastLocked(domain.ToastSuccess, "Success! Hi, "+me.Handle)
		s.scheduleLocked(&s.syncNav, SyncNavDelay, func() {
			s.navigateLocked(domain.ScreenDashboard)
		})
		return nil
	})
	return me, err
}

func (s *Store) getMe(ctx context.Context, token string) (*figma.Me, error) {
	if s.figma == nil {
		return nil, errNoClient
	}
	return s.figma.GetMe(ctx, token)
}

// FetchDesignFile looks up the design file behind link with the stored token.
func (s *Store) FetchDesignFile(ctx context.Context, link string) (*figma.File, error) {
	var token string
	err := s.mutate(func() error {
		token = s.st.Token
		if token == "" {
			s.toastLocked(domain.ToastError, "Figma API token is not set")
			return fmt.Errorf("store.FetchDesignFile: %w", ErrNoToken)
		}
		return errSkip
	})
	if err != nil {
		return nil, err
	}

	file, err := s.getFile(ctx, token, link)
	if err != nil {
		s.log.Warn("figma file lookup failed", slog.String("url", link), slog.Any("err", err))
		_ = s.ShowToast(domain.ToastError, "Failed to load Figma file")
		return nil, fmt.Errorf("store.FetchDesignFile: %w", err)
	}
	return file, nil
}

func (s *Store) getFile(ctx context.Context, token, link string) (*figma.File, error) {
	key, err := figma.FileKey(link)
	if err != nil {
		return nil, err
	}
	if s.figma == nil {
		return nil, errNoClient
	}
	return s.figma.GetFile(ctx, token, key)
}
