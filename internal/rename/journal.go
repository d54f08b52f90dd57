package rename

import "time"

// Run statuses recorded in the journal.
const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// Run is the journal record of one executed rename batch.
type Run struct {
	ID          string
	Mode        string
	Directory   string
	Pattern     string
	Replacement string
	StartedAt   time.Time
	FinishedAt  time.Time
	Status      string
	Renamed     int
	Failed      int
	Pairs       []PairRecord
}

// PairRecord is one attempted rename within a Run. Error is empty on success.
type PairRecord struct {
	From  string
	To    string
	Error string
}

// Journal stores the history of executed runs.
// It is write-only from the pipeline's point of view: nothing read back from
// it influences a later run.
type Journal interface {
	// RecordRun persists a finished run together with its pairs.
	RecordRun(run *Run) error

	// ListRuns returns at most limit runs, newest first. Pairs are not loaded.
	ListRuns(limit int) ([]*Run, error)

	// FindRun returns the run whose ID starts with idPrefix, including its
	// pairs. It returns nil and no error if nothing matches.
	FindRun(idPrefix string) (*Run, error)

	Close() error
}

// NopJournal discards every run.
type NopJournal struct{}

func (NopJournal) RecordRun(*Run) error         { return nil }
func (NopJournal) ListRuns(int) ([]*Run, error) { return nil, nil }
func (NopJournal) FindRun(string) (*Run, error) { return nil, nil }
func (NopJournal) Close() error                 { return nil }
