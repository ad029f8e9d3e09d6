package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/cas"
	"go.trai.ch/strata/internal/core/domain"
)

func testRecord(stage, delta, key, parent string) domain.DeltaRecord {
	return domain.DeltaRecord{
		Stage:     stage,
		Delta:     delta,
		CacheKey:  key,
		ParentKey: parent,
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	rec, err := store.Get(root, "prod", "prod:sync-deps")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	want := testRecord("prod", "prod:sync-deps", "abc123", "def456")
	require.NoError(t, store.Put(root, want))

	got, err := store.Get(root, "prod", "prod:sync-deps")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_PutOverwrites(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Put(root, testRecord("base", "base:env", "v1", "")))
	require.NoError(t, store.Put(root, testRecord("base", "base:env", "v2", "")))

	got, err := store.Get(root, "base", "base:env")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.CacheKey)
}

func TestStore_RecordsAreIsolatedByStage(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Put(root, testRecord("prod", "sync", "prodkey", "")))
	require.NoError(t, store.Put(root, testRecord("dev", "sync", "devkey", "")))

	prodRec, err := store.Get(root, "prod", "sync")
	require.NoError(t, err)
	devRec, err := store.Get(root, "dev", "sync")
	require.NoError(t, err)
	assert.Equal(t, "prodkey", prodRec.CacheKey)
	assert.Equal(t, "devkey", devRec.CacheKey)
}

func TestStore_CorruptRecordFails(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Put(root, testRecord("base", "base:packages", "v1", "")))

	storeDir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(storeDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, entries[0].Name()), []byte("{not json"), 0o644))

	_, err = store.Get(root, "base", "base:packages")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}
