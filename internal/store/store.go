// Package store owns the dashboard's application state. Every mutation goes
// through a Store method; timers, toasts, notifications and persistence are
// side effects of those methods, and observers receive a snapshot after each
// change.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/naveenspark/sdvig/internal/kv"
	"github.com/naveenspark/sdvig/internal/logging"
	"github.com/naveenspark/sdvig/internal/sched"
	"github.com/naveenspark/sdvig/pkg/domain"
	"github.com/naveenspark/sdvig/pkg/figma"
)

// Fixed delays of the store's deferred effects.
const (
	CommitDelay   = 3 * time.Second
	ToastDuration = 1500 * time.Millisecond
	SyncNavDelay  = 1500 * time.Millisecond
	PaymentDelay  = 2 * time.Second
	tickInterval  = time.Second
)

// DesignFiles is the remote design-file API.
type DesignFiles interface {
	GetMe(ctx context.Context, token string) (*figma.Me, error)
	GetFile(ctx context.Context, token, key string) (*figma.File, error)
}

// Options configures a Store.
type Options struct {
	Medium    kv.Medium
	Scheduler sched.Scheduler
	Figma     DesignFiles
	Logger    *slog.Logger
	// HostUser replaces the persisted identity when the host supplied one.
	HostUser *domain.User
	// BotName is the Telegram bot invite links point at.
	BotName string
}

// Store is the application state controller.
type Store struct {
	mu      sync.Mutex
	st      State
	version uint64
	closed  bool

	medium  kv.Medium
	sched   sched.Scheduler
	figma   DesignFiles
	log     *slog.Logger
	botName string
	ids     idGen

	commit   timer
	work     timer
	pomodoro timer
	toast    timer
	syncNav  timer
	payment  timer

	saved   map[string][]byte
	subs    map[int]func(State)
	nextSub int
}

// timer is a logical timer with at most one live task.
type timer struct {
	task sched.Task
	gen  uint64
}

// New loads persisted state from opts.Medium and returns a ready store.
func New(opts Options) *Store {
	if opts.Scheduler == nil {
		opts.Scheduler = sched.Real{}
	}
	if opts.Medium == nil {
		opts.Medium = kv.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.BotName == "" {
		opts.BotName = "sdvig_bot"
	}

	s := &Store{
		medium:  opts.Medium,
		sched:   opts.Scheduler,
		figma:   opts.Figma,
		log:     logging.Component(opts.Logger, "store"),
		botName: opts.BotName,
		subs:    make(map[int]func(State)),
	}

	s.st = s.load()
	if opts.HostUser != nil {
		s.st.User = *opts.HostUser
	}
	s.rolloverLocked()
	s.persistLocked()
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

// Subscribe registers fn to receive a snapshot after every mutation. fn runs
// outside the store lock and may call back into the store.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close cancels every outstanding timer. Later actions return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for _, t := range []*timer{&s.commit, &s.work, &s.pomodoro, &s.toast, &s.syncNav, &s.payment} {
		s.cancelLocked(t)
	}
	s.closed = true
	s.log.Debug("store closed", slog.String("event", "store.close"))
	return nil
}

// mutate runs fn under the store lock, then persists and notifies observers.
// fn returning errSkip leaves observers untouched.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := fn()
	if errors.Is(err, errSkip) {
		s.mu.Unlock()
		return nil
	}
	s.version++
	s.st.Version = s.version
	s.persistLocked()
	snap := s.st.clone()
	subs := make([]func(State), 0, len(s.subs))
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return err
}

// scheduleLocked replaces t's task with one that runs fn under the store lock
// after d. Callbacks of superseded tasks are dropped.
func (s *Store) scheduleLocked(t *timer, d time.Duration, fn func()) {
	s.cancelLocked(t)
	t.gen++
	gen := t.gen
	t.task = s.sched.AfterFunc(d, func() {
		_ = s.mutate(func() error {
			if t.gen != gen || t.task == nil {
				return errSkip
			}
			t.task = nil
			fn()
			return nil
		})
	})
}

// cancelLocked stops t's task and reports whether one was outstanding.
func (s *Store) cancelLocked(t *timer) bool {
	if t.task == nil {
		return false
	}
	t.task.Stop()
	t.task = nil
	t.gen++
	return true
}

// notifyLocked prepends a fresh unread notification to role's list.
func (s *Store) notifyLocked(role domain.Role, text string) {
	n := domain.Notification{
		ID:     s.ids.next(s.sched.Now()),
		Text:   text,
		Time:   domain.JustNow,
		Unread: true,
	}
	if role == domain.RoleDesigner {
		s.st.DesignerNotifications = append([]domain.Notification{n}, s.st.DesignerNotifications...)
		return
	}
	s.st.ClientNotifications = append([]domain.Notification{n}, s.st.ClientNotifications...)
}

func (s *Store) today() string {
	return s.sched.Now().Format(dayLayout)
}
