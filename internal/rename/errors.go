package rename

import (
	"fmt"
	"strings"
)

// ErrorPrefix marks each message the tool prints on the error stream.
const ErrorPrefix = "[bulk-rename error]:"

// RenameError is the failure of a single pair.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// AggregateError reports every failed pair of a run at once.
type AggregateError struct {
	Errs []error
}

// Error lists each failure with its full chain, separated by ErrorPrefix
// headers so every failure reads as its own report.
func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d rename(s) failed:\n%s", len(e.Errs), strings.Join(msgs, "\n\n"+ErrorPrefix+"\n"))
}

func (e *AggregateError) Unwrap() []error { return e.Errs }

// Aggregate merges per-pair failures into one error.
// It returns nil when errs is empty.
func Aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errs: errs}
}
