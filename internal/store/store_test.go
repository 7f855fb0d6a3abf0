package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + uuid.NewString() + "?mode=memory")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based test.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_DriverWrapsDB(t *testing.T) {
	s := openTestStore(t)
	assert.Same(t, s.DB(), s.drv.DB())
	assert.Equal(t, "sqlite3", s.drv.Dialect())
}

func TestOpen_FileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.ProgressRepo().MarkComplete(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	ids, err := s.ProgressRepo().Completed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)

	added, err := s.ProgressRepo().MarkComplete(ctx, 4)
	require.NoError(t, err)
	assert.True(t, added)
	cs, err := s.ProgressRepo().Completions(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Greater(t, cs[1].Sequence, cs[0].Sequence)
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, prev+1, n)
		}
		prev = n
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "db.sqlite")
	t.Setenv("ACADEMY_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("ACADEMY_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "academy", "academy.db"), got)

	info, err := os.Stat(filepath.Join(dataHome, "academy"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProgressRepo_MarkComplete(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	ids, err := repo.Completed(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	added, err := repo.MarkComplete(ctx, 3)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.MarkComplete(ctx, 3)
	require.NoError(t, err)
	assert.False(t, added, "second completion of the same lesson is a no-op")

	_, err = repo.MarkComplete(ctx, 1)
	require.NoError(t, err)

	ids, err = repo.Completed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids, "ordered by completion, not by lesson ID")
}

func TestProgressRepo_Completions(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	repo := &progressRepo{drv: s.drv, seq: s.seq, logger: s.logger, now: func() time.Time { return fixed }}
	ctx := context.Background()

	_, err := repo.MarkComplete(ctx, 5)
	require.NoError(t, err)

	cs, err := repo.Completions(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, 5, cs[0].LessonID)
	assert.Equal(t, fixed, cs[0].CompletedAt)
	_, err = uuid.Parse(cs[0].ID)
	assert.NoError(t, err)
}

func TestProgressRepo_Reset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		_, err := repo.MarkComplete(ctx, id)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Reset(ctx))

	ids, err := repo.Completed(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	added, err := repo.MarkComplete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, added, "lessons can be completed again after reset")
}

func TestProgressRepo_ConcurrentMarkComplete(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	const workers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MarkComplete(ctx, 4)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added, "exactly one caller records the completion")
	cs, err := repo.Completions(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, 4, cs[0].LessonID)
}
