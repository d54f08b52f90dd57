package app

import "time"

// Operation statuses.
const (
	OperationSuccess = "success"
	OperationError   = "error"
)

// Operation tracks one CLI invocation. Its ID tags every log line written
// during the invocation.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	Status     string
	StartedAt  time.Time
}

// NewOperation creates an operation that started at now. The ID is the UTC
// start time, so log lines sort by invocation.
func NewOperation(name string, now time.Time) *Operation {
	return &Operation{
		ID:        now.UTC().Format("20060102T150405Z"),
		Name:      name,
		Status:    OperationSuccess,
		StartedAt: now,
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = OperationError
}

// Failed reports whether the operation has been marked as failed.
func (op *Operation) Failed() bool {
	return op.Status == OperationError
}
