package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	databaseerrors "rocketcart/internal/database"
	"rocketcart/internal/database/filestore"
	"rocketcart/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartKey = "@RocketShoes:cart"

func TestGet_NotFound(t *testing.T) {
	storage, err := filestore.New(slogdiscard.NewDiscardLogger(), t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get(context.Background(), cartKey)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
}

func TestSet_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")
	ctx := context.Background()

	storage, err := filestore.New(slogdiscard.NewDiscardLogger(), dir)
	require.NoError(t, err)

	require.NoError(t, storage.Set(ctx, cartKey, `[{"id":1,"amount":1}]`))
	require.NoError(t, storage.Set(ctx, cartKey, `[{"id":1,"amount":2}]`))

	reopened, err := filestore.New(slogdiscard.NewDiscardLogger(), dir)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"amount":2}]`, value)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	storage, err := filestore.New(slogdiscard.NewDiscardLogger(), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Set(ctx, "a/b", "first"))
	require.NoError(t, storage.Set(ctx, "a:b", "second"))

	first, err := storage.Get(ctx, "a/b")
	require.NoError(t, err)
	second, err := storage.Get(ctx, "a:b")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestContextCanceled(t *testing.T) {
	storage, err := filestore.New(slogdiscard.NewDiscardLogger(), t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, storage.Set(ctx, cartKey, "[]"), context.Canceled)
}
