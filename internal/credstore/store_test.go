package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sealed, err := NewSealedStore(NewMemoryStore(), filepath.Join(t.TempDir(), "key"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newTestSQLite(t),
		"sealed": sealed,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Read(ctx)
			require.NoError(t, err)
			require.False(t, ok)

			pair := TokenPair{Access: "a1", Refresh: "r1"}
			require.NoError(t, store.Save(ctx, pair))

			got, ok, err := store.Read(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, pair, got)

			// Saving again overwrites both tokens.
			next := TokenPair{Access: "a2", Refresh: "r2"}
			require.NoError(t, store.Save(ctx, next))
			got, ok, err = store.Read(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, next, got)

			require.NoError(t, store.Clear(ctx))
			_, ok, err = store.Read(ctx)
			require.NoError(t, err)
			require.False(t, ok)

			// Clearing an empty store is fine.
			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestStore_PartialPairReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, TokenPair{Access: "only-access"}))
			_, ok, err := store.Read(ctx)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, TokenPair{Access: "a1", Refresh: "r1"}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	pair, ok, err := reopened.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", pair.Access)
	require.Equal(t, "r1", pair.Refresh)
}

func TestSealedStore_CiphertextAtRest(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	sealed, err := NewSealedStore(inner, filepath.Join(t.TempDir(), "key"))
	require.NoError(t, err)

	require.NoError(t, sealed.Save(ctx, TokenPair{Access: "a1", Refresh: "r1"}))

	raw, ok, err := inner.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, "a1", raw.Access)
	require.NotEqual(t, "r1", raw.Refresh)
}

func TestSealedStore_StaleKeyReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	inner := NewMemoryStore()

	sealed, err := NewSealedStore(inner, filepath.Join(dir, "key"))
	require.NoError(t, err)
	require.NoError(t, sealed.Save(ctx, TokenPair{Access: "a1", Refresh: "r1"}))

	// A replacement keyfile cannot open the stored pair.
	replaced, err := NewSealedStore(inner, filepath.Join(dir, "other-key"))
	require.NoError(t, err)

	_, ok, err := replaced.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSealedStore_KeyfilePermissions(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	_, err := NewSealedStore(NewMemoryStore(), keyPath)
	require.NoError(t, err)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSealedStore_RejectsTruncatedKeyfile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyPath, []byte("short"), 0o600))

	_, err := NewSealedStore(NewMemoryStore(), keyPath)
	require.Error(t, err)
}
