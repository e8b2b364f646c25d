package history

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(score int) Record {
	return NewRecord(
		time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		42*time.Second,
		Results{Score: score, Level: score/1000 + 1, RowsCleared: score / 100},
		nil,
	)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.toml"))
	records, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.toml")

	first := NewFileStore(path)
	a, b := sampleRecord(300), sampleRecord(1500)
	b.IsHighest = Highest{Score: true, Level: true}
	require.NoError(t, first.Append(a))
	require.NoError(t, first.Append(b))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[[records]]")
	assert.Contains(t, string(raw), "[records.results]")

	records, err := NewFileStore(path).List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, a, records[0])
	assert.Equal(t, b, records[1])
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[records]\nid = "), 0o644))

	_, err := NewFileStore(path).List()
	assert.Error(t, err)
	assert.Error(t, NewFileStore(path).Append(sampleRecord(1)))
}

func TestFileStoreConcurrentAppend(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "history.toml"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(sampleRecord(i*100)))
		}(i)
	}
	wg.Wait()

	records, err := s.List()
	require.NoError(t, err)
	assert.Len(t, records, 8)
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Append(sampleRecord(100)))

	records, err := s.List()
	require.NoError(t, err)
	records[0].Results.Score = 9999

	again, _ := s.List()
	assert.Equal(t, 100, again[0].Results.Score)
}
