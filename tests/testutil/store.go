package testutil

import (
	"testing"

	"github.com/nhle/lifetrack/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// Tests seed goals, tasks, time blocks and habits through it and hand it to
// aggregate.NewEngine as both the activity source and the day record store.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(store.MemoryPath)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
