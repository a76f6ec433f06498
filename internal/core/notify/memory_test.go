package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Save_assigns_ids(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	id1, err := s.Save(ctx, Notification{Level: LevelError, Message: "first"})
	require.NoError(t, err)
	id2, err := s.Save(ctx, Notification{Level: LevelInfo, Message: "second"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Message)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestMemoryStore_limit_drops_oldest(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	for _, msg := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, Notification{Message: msg})
		require.NoError(t, err)
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	items, _ := s.List(ctx)
	assert.Equal(t, "c", items[0].Message)
	assert.Equal(t, "b", items[1].Message)
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	_, _ = s.Save(ctx, Notification{Message: "x"})

	require.NoError(t, s.Clear(ctx))

	count, _ := s.Count(ctx)
	assert.Zero(t, count)
}

func TestMemoryStore_Save_cancelled(t *testing.T) {
	s := NewMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, Notification{Message: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
