package app

import (
	"testing"
	"time"
)

func TestNewOperation(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		now    time.Time
		wantID string
	}{
		{
			name:   "utc start",
			op:     "Rename",
			now:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			wantID: "20240115T103000Z",
		},
		{
			name:   "local start is converted to utc",
			op:     "History",
			now:    time.Date(2024, 1, 15, 12, 30, 5, 0, time.FixedZone("CEST", 2*60*60)),
			wantID: "20240115T103005Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.op, tt.now)

			if op.Name != tt.op {
				t.Errorf("Name = %q, want %q", op.Name, tt.op)
			}
			if op.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", op.ID, tt.wantID)
			}
			if op.Status != OperationSuccess {
				t.Errorf("Status = %q, want %q", op.Status, OperationSuccess)
			}
			if op.Failed() {
				t.Error("new operation should not be failed")
			}
		})
	}
}

func TestOperation_Fail(t *testing.T) {
	op := NewOperation("Rename", time.Now())
	op.Fail()

	if !op.Failed() || op.Status != OperationError {
		t.Errorf("Status = %q after Fail(), want %q", op.Status, OperationError)
	}
}
