package rename

import (
	"errors"
	"fmt"
)

// ErrLineCountMismatch is returned when the edited listing does not have
// exactly one line per original name.
var ErrLineCountMismatch = errors.New("lines were added or removed from the listing: only change them")

// Pair is one planned rename.
type Pair struct {
	From string
	To   string
}

// Changed reports whether the pair requires a filesystem call.
func (p Pair) Changed() bool {
	return p.From != p.To
}

// NameMapping is the ordered list of planned renames, including unchanged pairs.
type NameMapping []Pair

// Changes returns the number of pairs that rename something.
func (m NameMapping) Changes() int {
	n := 0
	for _, p := range m {
		if p.Changed() {
			n++
		}
	}
	return n
}

// Plan pairs originals with targets by position.
// The two slices must have the same length; otherwise ErrLineCountMismatch is
// returned and nothing should be renamed.
func Plan(originals, targets []string) (NameMapping, error) {
	if len(originals) != len(targets) {
		return nil, fmt.Errorf("%w (expected %d lines, got %d)", ErrLineCountMismatch, len(originals), len(targets))
	}

	mapping := make(NameMapping, len(originals))
	for i := range originals {
		mapping[i] = Pair{From: originals[i], To: targets[i]}
	}
	return mapping, nil
}
