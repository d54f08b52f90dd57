package testutil

import (
	"fmt"
	"sync"
	"time"
)

// runStart is the fixed moment every test run starts at.
var runStart = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// FrozenClock is a rename.Clock that never moves, so journaled runs get
// identical start and finish times and history order falls back to
// insertion order.
type FrozenClock struct{}

// FixedClock returns a clock frozen at 2024-01-15 10:30:00 UTC.
func FixedClock() FrozenClock { return FrozenClock{} }

func (FrozenClock) Now() time.Time { return runStart }

// StubIDGenerator hands out run IDs "id-1", "id-2", ... in call order.
// Safe for concurrent use.
type StubIDGenerator struct {
	mu   sync.Mutex
	runs int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.runs++
	return fmt.Sprintf("id-%d", g.runs)
}
