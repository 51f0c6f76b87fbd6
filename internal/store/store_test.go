package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/sdvig/internal/kv"
	"github.com/naveenspark/sdvig/internal/sched"
	"github.com/naveenspark/sdvig/pkg/domain"
	"github.com/naveenspark/sdvig/pkg/figma"
)

var testStart = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.Local)

type fakeFigma struct {
	mu    sync.Mutex
	me    *figma.Me
	file  *figma.File
	err   error
	calls int
	keys  []string
}

func (f *fakeFigma) GetMe(_ context.Context, token string) (*figma.Me, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.me, nil
}

func (f *fakeFigma) GetFile(_ context.Context, _, key string) (*figma.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.file, nil
}

type fixture struct {
	store *Store
	clock *sched.Manual
	mem   *kv.Memory
	figma *fakeFigma
}

func newFixture(t *testing.T, seed map[string]any) *fixture {
	t.Helper()
	mem := kv.NewMemory()
	if len(seed) > 0 {
		entries := make(map[string][]byte, len(seed))
		for k, v := range seed {
			raw, err := json.Marshal(v)
			require.NoError(t, err)
			entries[k] = raw
		}
		require.NoError(t, mem.PutAll(entries))
	}
	f := &fixture{
		clock: sched.NewManual(testStart),
		mem:   mem,
		figma: &fakeFigma{},
	}
	f.store = New(Options{Medium: mem, Scheduler: f.clock, Figma: f.figma})
	t.Cleanup(func() { _ = f.store.Close() })
	return f
}

func (f *fixture) stored(t *testing.T, key string, v any) {
	t.Helper()
	raw, ok, err := f.mem.Get(key)
	require.NoError(t, err)
	require.True(t, ok, "key %s not stored", key)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestNewUsesDefaults(t *testing.T) {
	f := newFixture(t, nil)
	st := f.store.Snapshot()

	assert.Equal(t, domain.ScreenWelcome, st.Screen)
	assert.Equal(t, domain.ScreenDashboard, st.ActiveTab)
	assert.Equal(t, domain.RoleNone, st.Role)
	assert.Equal(t, DefaultProgress, st.Progress)
	assert.Equal(t, DefaultHours, st.Hours)
	assert.Equal(t, 0, st.WorkTimer)
	assert.Equal(t, "2026-10-14", st.LastTimerDate)
	assert.Equal(t, domain.DefaultSubscription, st.Subscription)
	assert.Nil(t, st.ActiveTariff)
	assert.Nil(t, st.ActiveProject)
	assert.Equal(t, domain.DefaultUserName, st.User.FirstName)
	assert.Equal(t, domain.PlaceholderPhotoURL, st.User.PhotoURL)
	assert.GreaterOrEqual(t, st.User.ID, int64(10_000_000))
	assert.Equal(t, domain.PomodoroIdle, st.PomodoroMode)
	assert.Equal(t, domain.PomodoroWorkSeconds, st.PomodoroTime)
}

func TestNewWritesEveryKey(t *testing.T) {
	f := newFixture(t, nil)
	keys, err := f.mem.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, Keys, keys)
}

func TestLoadRestoresAndClamps(t *testing.T) {
	tariff := domain.TariffExtended
	f := newFixture(t, map[string]any{
		KeyProgress:      140,
		KeyApproved:      -5,
		KeyHours:         30,
		KeyToken:         "figd_saved",
		KeyTariff:        tariff,
		KeyLastTimerDate: "2026-10-14",
		KeyWorkTimer:     600,
		KeyUser:          domain.User{ID: 7, FirstName: "Kim", PhotoURL: "p"},
	})
	st := f.store.Snapshot()

	assert.Equal(t, 100, st.Progress)
	assert.Equal(t, 0, st.ApprovedProgress)
	assert.Equal(t, 30, st.Hours)
	assert.Equal(t, "figd_saved", st.Token)
	require.NotNil(t, st.ActiveTariff)
	assert.Equal(t, domain.TariffExtended, *st.ActiveTariff)
	assert.Equal(t, 600, st.WorkTimer)
	assert.Equal(t, int64(7), st.User.ID)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.PutAll(map[string][]byte{
		KeyProgress: []byte("not json"),
		KeyHistory:  []byte(`{"broken":`),
		KeyTariff:   []byte(`"Platinum"`),
	}))
	s := New(Options{Medium: mem, Scheduler: sched.NewManual(testStart)})
	defer s.Close()

	st := s.Snapshot()
	assert.Equal(t, DefaultProgress, st.Progress)
	assert.Empty(t, st.HistoryLogs)
	assert.Nil(t, st.ActiveTariff)
}

func TestWorkTimerResetsOnNewDay(t *testing.T) {
	f := newFixture(t, map[string]any{
		KeyWorkTimer:     5400,
		KeyLastTimerDate: "2026-10-13",
	})
	st := f.store.Snapshot()
	assert.Equal(t, 0, st.WorkTimer)
	assert.Equal(t, "2026-10-14", st.LastTimerDate)

	var stamp string
	f.stored(t, KeyLastTimerDate, &stamp)
	assert.Equal(t, "2026-10-14", stamp)
}

func TestHostUserOverridesPersisted(t *testing.T) {
	mem := kv.NewMemory()
	host := domain.User{ID: 42, FirstName: "Ana", PhotoURL: "https://t.me/a.jpg"}
	s := New(Options{Medium: mem, Scheduler: sched.NewManual(testStart), HostUser: &host})
	defer s.Close()

	assert.Equal(t, host, s.Snapshot().User)
}

func TestSubscribeReceivesIncreasingVersions(t *testing.T) {
	f := newFixture(t, nil)
	var versions []uint64
	cancel := f.store.Subscribe(func(st State) { versions = append(versions, st.Version) })

	require.NoError(t, f.store.SelectRole(domain.RoleDesigner))
	require.NoError(t, f.store.Navigate(domain.ScreenHistory))
	cancel()
	require.NoError(t, f.store.Navigate(domain.ScreenArchive))

	require.Len(t, versions, 2)
	assert.Less(t, versions[0], versions[1])
}

func TestSnapshotIsIndependent(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.store.AddLog("wireframes")
	require.NoError(t, err)

	snap := f.store.Snapshot()
	snap.HistoryLogs[0].Text = "mutated"
	snap.HistoryLogs[0].Reactions = append(snap.HistoryLogs[0].Reactions, "🔥")

	again := f.store.Snapshot()
	assert.Equal(t, "wireframes", again.HistoryLogs[0].Text)
	assert.Empty(t, again.HistoryLogs[0].Reactions)
}

func TestPersistSkipsUnchangedState(t *testing.T) {
	f := newFixture(t, nil)
	before := f.mem.Writes()

	require.NoError(t, f.store.Navigate(domain.ScreenSettings))
	assert.Equal(t, before, f.mem.Writes(), "navigation is not persisted")

	require.NoError(t, f.store.SetHours(20))
	assert.Equal(t, before+1, f.mem.Writes())

	var hours int
	f.stored(t, KeyHours, &hours)
	assert.Equal(t, 20, hours)
}

type failingMedium struct {
	*kv.Memory
	fail bool
}

func (m *failingMedium) PutAll(entries map[string][]byte) error {
	if m.fail {
		return errors.New("disk full")
	}
	return m.Memory.PutAll(entries)
}

func TestPersistRetriesAfterFailure(t *testing.T) {
	m := &failingMedium{Memory: kv.NewMemory(), fail: true}
	s := New(Options{Medium: m, Scheduler: sched.NewManual(testStart)})
	defer s.Close()

	require.NoError(t, s.SetHours(3))
	m.fail = false
	require.NoError(t, s.Navigate(domain.ScreenHistory))

	raw, ok, err := m.Get(KeyHours)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", string(raw))
}

func TestCloseCancelsTimers(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.RequestProgressUpdate(60))
	require.NoError(t, f.store.ToggleWorkTimer())
	require.NoError(t, f.store.TogglePomodoro())
	require.NotZero(t, f.clock.Pending())

	require.NoError(t, f.store.Close())
	assert.Zero(t, f.clock.Pending())

	f.clock.Advance(time.Minute)
	assert.Equal(t, DefaultProgress, f.store.Snapshot().Progress)
	assert.ErrorIs(t, f.store.SetHours(1), ErrClosed)
}

func TestToastAutoDismiss(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.ShowToast(domain.ToastInfo, "hello"))
	assert.True(t, f.store.Snapshot().Toast.IsOpen)

	f.clock.Advance(ToastDuration)
	toast := f.store.Snapshot().Toast
	assert.False(t, toast.IsOpen)
	assert.Equal(t, "hello", toast.Message)
}

func TestNewerToastKeepsItsFullDuration(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.ShowToast(domain.ToastInfo, "first"))
	f.clock.Advance(time.Second)
	require.NoError(t, f.store.ShowToast(domain.ToastSuccess, "second"))

	f.clock.Advance(time.Second)
	toast := f.store.Snapshot().Toast
	assert.True(t, toast.IsOpen, "first toast's dismissal must not close the second")
	assert.Equal(t, "second", toast.Message)

	f.clock.Advance(ToastDuration)
	assert.False(t, f.store.Snapshot().Toast.IsOpen)
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, nil)
	s := f.store

	require.NoError(t, s.SetScreen(domain.ScreenRoleSelect))
	require.NoError(t, s.SelectRole(domain.RoleDesigner))
	require.NoError(t, s.ContinueFromRoleSelect())
	assert.Equal(t, domain.ScreenOnboarding, s.Snapshot().Screen)

	require.NoError(t, s.SelectRole(domain.RoleClient))
	require.NoError(t, s.ContinueFromRoleSelect())
	st := s.Snapshot()
	assert.Equal(t, domain.ScreenDashboard, st.Screen)
	assert.Equal(t, domain.ScreenDashboard, st.ActiveTab)

	require.NoError(t, s.SetActiveTab(domain.ScreenHistory))
	assert.Equal(t, domain.ScreenDashboard, s.Snapshot().Screen)

	require.NoError(t, s.Logout())
	st = s.Snapshot()
	assert.Equal(t, domain.RoleNone, st.Role)
	assert.Equal(t, domain.ScreenWelcome, st.Screen)

	assert.Error(t, s.SelectRole("admin"))
}
