package testutil

import (
	"testing"

	"bulkrename/internal/journal"
	"bulkrename/internal/rename"
)

// NewTestJournal creates an in-memory SQLite journal with the schema applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) rename.Journal {
	t.Helper()

	j, err := journal.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}
