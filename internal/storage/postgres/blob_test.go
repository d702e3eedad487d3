package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/storage"
	"github.com/encore-rpg/sheetsmith/internal/storage/postgres"
	"github.com/encore-rpg/sheetsmith/internal/testutil"
)

func TestBlobStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	s := postgres.NewBlobStore(pc.RawPool)

	_, err := s.Get(ctx, "sheet:hero")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "sheet:hero", []byte(`{"version":2}`)))
	got, err := s.Get(ctx, "sheet:hero")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":2}`), got)

	// Upsert replaces.
	require.NoError(t, s.Put(ctx, "sheet:hero", []byte(`{}`)))
	got, err = s.Get(ctx, "sheet:hero")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)

	require.NoError(t, s.Delete(ctx, "sheet:hero"))
	require.NoError(t, s.Delete(ctx, "sheet:hero"))
	_, err = s.Get(ctx, "sheet:hero")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBlobStoreList(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	s := postgres.NewBlobStore(pc.RawPool)

	for _, k := range []string{"history:hero:2", "sheet:hero", "history:hero:1", "history:diva:1"} {
		require.NoError(t, s.Put(ctx, k, []byte("x")))
	}

	keys, err := s.List(ctx, "history:hero:")
	require.NoError(t, err)
	assert.Equal(t, []string{"history:hero:1", "history:hero:2"}, keys)

	keys, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, keys, 4)
}
