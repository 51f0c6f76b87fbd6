package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/sdvig/pkg/domain"
	"github.com/naveenspark/sdvig/pkg/figma"
)

func TestSyncWithoutToken(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.store.SyncDesignAccount(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, "Enter a token", f.store.Snapshot().Toast.Message)
	assert.Zero(t, f.figma.calls)
}

func TestSyncSuccessNavigatesLater(t *testing.T) {
	f := newFixture(t, map[string]any{KeyToken: "figd_ok"})
	f.figma.me = &figma.Me{Handle: "alex"}

	me, err := f.store.SyncDesignAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alex", me.Handle)

	st := f.store.Snapshot()
	assert.Equal(t, "Success! Hi, alex", st.Toast.Message)
	assert.Equal(t, domain.ScreenWelcome, st.Screen)

	f.clock.Advance(SyncNavDelay)
	st = f.store.Snapshot()
	assert.Equal(t, domain.ScreenDashboard, st.Screen)
	assert.Equal(t, domain.ScreenDashboard, st.ActiveTab)
	assert.Equal(t, 1, f.figma.calls)
}

func TestSyncRejectedToken(t *testing.T) {
	f := newFixture(t, map[string]any{KeyToken: "figd_bad"})
	f.figma.err = &figma.HTTPError{StatusCode: 403, Message: "Invalid token"}

	_, err := f.store.SyncDesignAccount(context.Background())
	require.Error(t, err)
	assert.True(t, figma.IsStatus(err, 403))

	st := f.store.Snapshot()
	assert.Equal(t, domain.ToastError, st.Toast.Type)
	assert.Equal(t, "Invalid Figma token", st.Toast.Message)

	f.clock.Advance(SyncNavDelay)
	assert.Equal(t, domain.ScreenWelcome, f.store.Snapshot().Screen)
}

func TestSyncMalformedAccount(t *testing.T) {
	f := newFixture(t, map[string]any{KeyToken: "figd_ok"})
	f.figma.err = &figma.MalformedResponseError{Path: "/v1/me", Field: "handle"}

	_, err := f.store.SyncDesignAccount(context.Background())
	assert.True(t, errors.Is(err, figma.ErrMalformedResponse))
	assert.Equal(t, "Invalid Figma token", f.store.Snapshot().Toast.Message)
}

func TestFetchDesignFile(t *testing.T) {
	f := newFixture(t, map[string]any{KeyToken: "figd_ok"})
	f.figma.file = &figma.File{Name: "Brand kit"}

	file, err := f.store.FetchDesignFile(context.Background(), "https://figma.com/file/BrandKit1/x")
	require.NoError(t, err)
	assert.Equal(t, "Brand kit", file.Name)
	assert.Equal(t, []string{"BrandKit1"}, f.figma.keys)
}

func TestFetchDesignFileFailures(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.store.FetchDesignFile(context.Background(), "https://figma.com/file/K/x")
		assert.ErrorIs(t, err, ErrNoToken)
		assert.Equal(t, "Figma API token is not set", f.store.Snapshot().Toast.Message)
	})
	t.Run("bad url", func(t *testing.T) {
		f := newFixture(t, map[string]any{KeyToken: "figd_ok"})
		_, err := f.store.FetchDesignFile(context.Background(), "https://example.com/nope")
		assert.ErrorIs(t, err, figma.ErrInvalidURL)
		assert.Equal(t, "Failed to load Figma file", f.store.Snapshot().Toast.Message)
		assert.Zero(t, f.figma.calls)
	})
	t.Run("lookup fails", func(t *testing.T) {
		f := newFixture(t, map[string]any{KeyToken: "figd_ok"})
		f.figma.err = &figma.HTTPError{StatusCode: 404}
		_, err := f.store.FetchDesignFile(context.Background(), "https://figma.com/design/K1/x")
		assert.True(t, figma.IsStatus(err, 404))
		assert.Equal(t, "Failed to load Figma file", f.store.Snapshot().Toast.Message)
	})
}
