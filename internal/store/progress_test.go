package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/sdvig/pkg/domain"
)

func TestProgressCommitsAfterDelay(t *testing.T) {
	for _, v := range []int{0, 1, 50, 99, 100} {
		f := newFixture(t, nil)
		require.NoError(t, f.store.RequestProgressUpdate(v))

		st := f.store.Snapshot()
		require.NotNil(t, st.PendingProgress)
		assert.Equal(t, v, *st.PendingProgress)
		assert.Equal(t, v, st.DisplayedProgress())
		assert.Equal(t, "Syncing...", st.Toast.Message)

		f.clock.Advance(CommitDelay - time.Millisecond)
		assert.Equal(t, DefaultProgress, f.store.Snapshot().Progress, "committed early for %d", v)

		f.clock.Advance(time.Millisecond)
		st = f.store.Snapshot()
		assert.Equal(t, v, st.Progress)
		assert.Nil(t, st.PendingProgress)
		assert.Equal(t, domain.ToastSuccess, st.Toast.Type)
		assert.Equal(t, "Progress updated", st.Toast.Message)
		require.NotEmpty(t, st.ClientNotifications)
		assert.Equal(t, fmt.Sprintf("Project is %d%% complete", v), st.ClientNotifications[0].Text)
		assert.True(t, st.ClientNotifications[0].Unread)

		var stored int
		f.stored(t, KeyProgress, &stored)
		assert.Equal(t, v, stored)
	}
}

func TestProgressIsClamped(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.RequestProgressUpdate(150))
	assert.Equal(t, 100, *f.store.Snapshot().PendingProgress)

	require.NoError(t, f.store.RequestProgressUpdate(-3))
	assert.Equal(t, 0, *f.store.Snapshot().PendingProgress)
}

func TestUndoBeforeCommit(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.RequestProgressUpdate(80))
	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.store.UndoProgressUpdate())

	st := f.store.Snapshot()
	assert.Nil(t, st.PendingProgress)
	assert.Equal(t, "Cancelled", st.Toast.Message)

	f.clock.Advance(10 * time.Second)
	st = f.store.Snapshot()
	assert.Equal(t, DefaultProgress, st.Progress)
	assert.Nil(t, st.PendingProgress)
	assert.Empty(t, st.ClientNotifications)
}

func TestUndoWithoutPendingIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.Snapshot().Version
	require.NoError(t, f.store.UndoProgressUpdate())
	st := f.store.Snapshot()
	assert.Equal(t, before, st.Version)
	assert.False(t, st.Toast.IsOpen)

	require.NoError(t, f.store.RequestProgressUpdate(40))
	f.clock.Advance(CommitDelay)
	require.NoError(t, f.store.UndoProgressUpdate())
	assert.Equal(t, 40, f.store.Snapshot().Progress, "undo after commit changes nothing")
}

func TestSecondRequestReplacesFirst(t *testing.T) {
	f := newFixture(t, nil)
	var committed []int
	f.store.Subscribe(func(st State) {
		if st.PendingProgress == nil && len(st.ClientNotifications) > len(committed) {
			committed = append(committed, st.Progress)
		}
	})

	require.NoError(t, f.store.RequestProgressUpdate(30))
	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.store.RequestProgressUpdate(70))

	f.clock.Advance(2 * time.Second)
	assert.Equal(t, DefaultProgress, f.store.Snapshot().Progress, "first value must not commit")

	f.clock.Advance(time.Second)
	st := f.store.Snapshot()
	assert.Equal(t, 70, st.Progress)
	assert.Len(t, st.ClientNotifications, 1)
	assert.Equal(t, []int{70}, committed)
}
