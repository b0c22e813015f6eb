package iocache

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineheat/lineheat/schema"
)

func TestCaching(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "signals.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, dbPath)
		assert.NoError(t, err, "Failed to initialize caching")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetSignalStore(), "Signal store should not be nil")

		CloseStores()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "signals.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, dbPath)
		err2 := InitStores(schema.SQLiteBackend, dbPath)

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
	})

	t.Run("none backend operations", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to create none backend store")

		// Get returns error (no data)
		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get on none backend")

		// Set is a no-op
		err = store.Set("test_key", []byte("test_value"), 1, 123456789)
		assert.NoError(t, err, "Set should not error on none backend")

		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get after Set on none backend")

		assert.NoError(t, store.Close(), "Close should not error on none backend")
	})
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roundtrip.db")
	store, err := NewCacheStore(signalTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	key := "signals:abc123:/repo/a.go:age:line-log:3"
	payload := []byte("[1,2,3]")
	require.NoError(t, store.Set(key, payload, 1, 1700000000))

	value, version, ts, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, payload, value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)

	// Overwrite replaces the entry
	require.NoError(t, store.Set(key, []byte("[9]"), 2, 1700000500))
	value, version, _, err = store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("[9]"), value)
	assert.Equal(t, 2, version)

	// Missing keys report an error
	_, _, _, err = store.Get("signals:missing")
	assert.Error(t, err)
}

func TestSQLiteStoreStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "status.db")
	store, err := NewCacheStore(signalTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalEntries)

	require.NoError(t, store.Set("k1", []byte("v1"), 1, 1700000000))
	require.NoError(t, store.Set("k2", []byte("v2"), 1, 1700000900))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(1700000900), status.LastEntryTime.Unix())
	assert.Equal(t, int64(1700000000), status.OldestEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestValidateTableName(t *testing.T) {
	valid := []string{"signal_cache", "_private", "Table123"}
	for _, name := range valid {
		assert.NoError(t, validateTableName(name), name)
	}

	invalid := []string{"", "123table", "drop table;", "name-with-dash", "name with space"}
	for _, name := range invalid {
		assert.Error(t, validateTableName(name), name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"signal_cache"`, quoteTableName("signal_cache", schema.SQLiteBackend))
	assert.Equal(t, "`signal_cache`", quoteTableName("signal_cache", schema.MySQLBackend))
	assert.Equal(t, `"signal_cache"`, quoteTableName("signal_cache", schema.PostgreSQLBackend))
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	store, err := NewCacheStore(signalTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v"), 1, 1700000000))
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

	// Clearing twice is harmless: the file is already gone
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

	// An empty path is rejected
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
}

func TestClearCacheNone(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}

func TestMigrateCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest, then all the way back down
	require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, -1), "re-running up is a no-op")
	require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateCacheNoneRejected(t *testing.T) {
	assert.Error(t, MigrateCache(schema.NoneBackend, "", -1))
}

func TestNewCacheStoreRejectsBadTable(t *testing.T) {
	_, err := NewCacheStore("bad table", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}
