package keystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NotNil(t, s)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_GetMissingReturnsFalse(t *testing.T) {
	s := newTestFileStore(t)
	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestFileStore_SetThenGetRoundTrips(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "pbe-fabric-encrypted-private-key", []byte("ciphertext")))

	v, ok, err := s.Get(ctx, "pbe-fabric-encrypted-private-key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("ciphertext"), v)
}

func TestFileStore_SetWritesOwnerOnlyPermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SetOverwritesPreviousValue(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("first")))
	require.NoError(t, s.Set(ctx, "k", []byte("second")))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), v)
}

func TestFileStore_SetLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

// TestFileStore_SetIsAtomicAcrossSimulatedCrash is the store-atomicity
// quantified invariant from spec.md §8: a crash simulated between set calls
// yields either the old or the new value, never partial bytes. Set always
// writes to a freshly created temp file and only makes the new value visible
// via a single rename, so the only two observable states for any key are
// "old value still at dest" (rename never ran) and "new value at dest"
// (rename completed) — there is no window where dest contains a partial
// write.
func TestFileStore_SetIsAtomicAcrossSimulatedCrash(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old-value")))

	dest := s.path("k")
	before, err := os.ReadFile(dest)
	require.NoError(t, err)

	// Simulate a crash mid-write: write the new value to a temp file but
	// never rename it into place.
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	require.NoError(t, err)
	_, err = tmp.Write([]byte(`{"value":"bm90IHJlYWwgeWV0"}`))
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	after, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, before, after, "dest must be untouched until rename completes")

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("old-value"), v, "a crash before rename must leave the old value intact")

	// Now complete the write through the normal path and confirm the new
	// value becomes visible in full, never partially.
	require.NoError(t, s.Set(ctx, "k", []byte("new-value")))
	v, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new-value"), v)
}

func TestFileStore_DeleteRemovesKey(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))

	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_DeleteAbsentKeyIsNoOp(t *testing.T) {
	s := newTestFileStore(t)
	assert.NoError(t, s.Delete(context.Background(), "absent"))
}

func TestFileStore_KeysListsAllStoredKeys(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "b", []byte("2")))
	require.NoError(t, s.Set(ctx, "a", []byte("1")))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestFileStore_ClearRemovesEverything(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))

	require.NoError(t, s.Clear(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_SetManyStoresAllEntries(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestFileStore_RejectsKeysThatEscapeDirectory(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "../escape")
	assert.Error(t, err)

	err = s.Set(ctx, "../escape", []byte("v"))
	assert.Error(t, err)

	err = s.Set(ctx, "a/b", []byte("v"))
	assert.Error(t, err)
}

// TestFileStore_ImplementsKeyStoreAndBatchSetter pins the interface
// conformance at compile time.
func TestFileStore_ImplementsKeyStoreAndBatchSetter(t *testing.T) {
	var _ KeyStore = (*FileStore)(nil)
	var _ BatchSetter = (*FileStore)(nil)
}
