package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *db.Conn {
	t.Helper()
	conn, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { conn.Close() })
	return conn
}

// TestConcurrentAccess_TotalsDuringLogging checks that readers summing a
// window never fail or see a total above what has been written while a
// writer keeps logging sessions into it.
func TestConcurrentAccess_TotalsDuringLogging(t *testing.T) {
	conn := newConcurrentTestDB(t)
	q := conn.Querier()
	ctx := context.Background()

	activity := testutil.NewTestActivity("Cycling")
	require.NoError(t, NewSQLActivityRepo(q).Create(ctx, activity))
	sessRepo := NewSQLSessionRepo(q)

	week := calendar.Range{Start: testutil.Date("2025-01-06"), End: testutil.Date("2025-01-12")}
	const writes = 20

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			s := testutil.NewTestSession(activity.ID, 1, week.Start.AddDays(i%7))
			if err := sessRepo.Create(ctx, s); err != nil {
				t.Errorf("writer: create session %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				total, err := sessRepo.TotalInRange(ctx, activity.ID, week)
				if err != nil {
					t.Errorf("reader %d: total: %v", reader, err)
					return
				}
				if total.IntPart() > writes {
					t.Errorf("reader %d: total %s exceeds writes", reader, total)
				}
			}
		}(r)
	}

	wg.Wait()

	total, err := sessRepo.TotalInRange(ctx, activity.ID, week)
	require.NoError(t, err)
	assert.Equal(t, int64(writes), total.IntPart())
}
