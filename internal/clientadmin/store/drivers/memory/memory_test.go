package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
)

func records(ids ...string) []domain.ClientRecord {
	out := make([]domain.ClientRecord, len(ids))
	for i, id := range ids {
		out[i].ClientID = id
		out[i].ClientName = "client " + id
	}
	return out
}

func TestCache_LoadMissing(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.Load(context.Background(), "s1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCache_SaveLoadInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := New()
	require.NoError(t, c.Save(ctx, "s1", records("a", "b"), time.Minute))
	require.NoError(t, c.Save(ctx, "s2", records("c"), time.Minute))

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ClientID)

	require.NoError(t, c.Invalidate(ctx, "s1"))
	_, err = c.Load(ctx, "s1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Other sessions are untouched.
	got, err = c.Load(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, c.Invalidate(ctx, "missing"))
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Save(ctx, "s1", records("a"), 30*time.Second))
	require.NoError(t, c.Save(ctx, "forever", records("b"), 0))

	now = now.Add(29 * time.Second)
	_, err := c.Load(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Load(ctx, "s1")
	require.ErrorIs(t, err, store.ErrNotFound)

	now = now.Add(time.Hour)
	_, err = c.Load(ctx, "forever")
	require.NoError(t, err)
}

func TestCache_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := New()
	in := records("a")
	require.NoError(t, c.Save(ctx, "s1", in, time.Minute))
	in[0].ClientName = "mutated"

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	got[0].ClientName = "mutated again"

	again, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "client a", again[0].ClientName)
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := New()
	require.NoError(t, c.Save(ctx, "s1", nil, time.Minute))

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCache_DeleteExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Save(ctx, "short", records("a"), time.Second))
	require.NoError(t, c.Save(ctx, "long", records("b"), time.Hour))
	require.NoError(t, c.Save(ctx, "forever", records("c"), 0))

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, 3, c.Len())

	now = now.Add(time.Minute)
	n, err = c.DeleteExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 2, c.Len())

	_, err = c.Load(ctx, "long")
	require.NoError(t, err)
}
