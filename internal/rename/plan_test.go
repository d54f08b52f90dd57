package rename_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"bulkrename/internal/rename"
)

func TestPlan(t *testing.T) {
	t.Run("pairs by position", func(t *testing.T) {
		t.Parallel()
		got, err := rename.Plan([]string{"a", "b", "c"}, []string{"x", "b", "z"})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		want := rename.NameMapping{{From: "a", To: "x"}, {From: "b", To: "b"}, {From: "c", To: "z"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Plan() = %v, want %v", got, want)
		}
		if got.Changes() != 2 {
			t.Errorf("Changes() = %d, want 2", got.Changes())
		}
	})

	t.Run("fewer targets is a mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := rename.Plan([]string{"f1", "f2", "f3"}, []string{"g1", "g2"})
		if !errors.Is(err, rename.ErrLineCountMismatch) {
			t.Fatalf("Plan() error = %v, want ErrLineCountMismatch", err)
		}
		if !strings.Contains(err.Error(), "expected 3 lines, got 2") {
			t.Errorf("error %q should report both counts", err)
		}
	})

	t.Run("more targets is a mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := rename.Plan([]string{"f1"}, []string{"g1", "g2"})
		if !errors.Is(err, rename.ErrLineCountMismatch) {
			t.Errorf("Plan() error = %v, want ErrLineCountMismatch", err)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()
		got, err := rename.Plan(nil, nil)
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if len(got) != 0 || got.Changes() != 0 {
			t.Errorf("Plan(nil, nil) = %v, want empty", got)
		}
	})
}

func TestPair_Changed(t *testing.T) {
	if (rename.Pair{From: "a", To: "a"}).Changed() {
		t.Error("identical pair should not be changed")
	}
	if !(rename.Pair{From: "a", To: "b"}).Changed() {
		t.Error("different pair should be changed")
	}
}
