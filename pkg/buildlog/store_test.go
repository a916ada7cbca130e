package buildlog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirror-tools/mirror-test/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testRecord(dist string, code int) *Record {
	return &Record{
		Distribution:  dist,
		Timestamp:     time.Now().Truncate(time.Second),
		ReturnCode:    code,
		HasReturnCode: true,
		Dockerfile:    "FROM debian:12\n",
		Stdout:        "build output for " + dist + "\n",
		Stderr:        "",
	}
}

func TestStoreAppendAndLatest(t *testing.T) {
	store := newTestStore(t)

	record := testRecord("debian-12", 0)
	require.NoError(t, store.Append(record))

	latest, err := store.Latest("debian-12")
	require.NoError(t, err)
	require.Equal(t, "debian-12", latest.Distribution)
	require.Equal(t, 0, latest.ReturnCode)
	require.Equal(t, record.Dockerfile, latest.Dockerfile)
	require.Equal(t, record.Stdout, latest.Stdout)
	require.Equal(t, record.Stderr, latest.Stderr)
	require.True(t, latest.Passed())
}

func TestStoreLatestIsMostRecent(t *testing.T) {
	store := newTestStore(t)

	first := testRecord("debian-12", 1)
	first.Stdout = "first attempt\n"
	require.NoError(t, store.Append(first))

	second := testRecord("debian-12", 0)
	second.Stdout = "second attempt\n"
	require.NoError(t, store.Append(second))

	latest, err := store.Latest("debian-12")
	require.NoError(t, err)
	require.Equal(t, "second attempt\n", latest.Stdout)
	require.Equal(t, 0, latest.ReturnCode)

	// Both attempts remain in the append-only log.
	full, err := store.FullLog("debian-12")
	require.NoError(t, err)
	require.Contains(t, full, "first attempt")
	require.Contains(t, full, "second attempt")
}

func TestStoreLatestNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Latest("never-tested")
	require.Error(t, err)
	require.True(t, errors.IsLogsNotFound(err))
	require.False(t, store.HasLogs("never-tested"))
}

func TestStorePerDistributionIsolation(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append(testRecord("debian-12", 0)))
	require.NoError(t, store.Append(testRecord("alpine-3.19", 1)))

	debian, err := store.Latest("debian-12")
	require.NoError(t, err)
	alpine, err := store.Latest("alpine-3.19")
	require.NoError(t, err)

	require.True(t, debian.Passed())
	require.False(t, alpine.Passed())
}

func TestStoreConcurrentReadersSeeCompleteRecords(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(testRecord("debian-12", 0)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				record, err := store.Latest("debian-12")
				// Atomic publish: a reader gets a complete record, never a
				// torn one.
				if assert.NoError(t, err) {
					assert.True(t, record.HasReturnCode)
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, store.Append(testRecord("debian-12", i%2)))
	}
	wg.Wait()
}
