package rename

import (
	"errors"
	"path/filepath"
)

// ErrEmptyTarget is the cause recorded for a pair whose new name is blank.
var ErrEmptyTarget = errors.New("target name is empty")

// Outcome is the result of one pair. Err is nil when the pair was renamed or
// skipped.
type Outcome struct {
	Pair    Pair
	Skipped bool
	Err     error
}

// Executor applies a NameMapping to the filesystem.
type Executor struct {
	fsys    Filesystem
	logger  Logger
	workers int
}

// NewExecutor creates an Executor running at most workers renames at a time.
func NewExecutor(fsys Filesystem, logger Logger, workers int) *Executor {
	return &Executor{fsys: fsys, logger: logger, workers: workers}
}

// Execute renames every changed pair of mapping, with names resolved
// relative to root. Pairs run concurrently and independently: a failure
// never stops the other pairs. outcomes[i] belongs to mapping[i].
// The batch is not atomic; pairs whose names overlap race in the filesystem.
func (x *Executor) Execute(root string, mapping NameMapping) []Outcome {
	outcomes := make([]Outcome, len(mapping))

	forEach(len(mapping), x.workers, func(i int) {
		p := mapping[i]
		outcomes[i].Pair = p
		if !p.Changed() {
			outcomes[i].Skipped = true
			return
		}
		if p.To == "" {
			outcomes[i].Err = &RenameError{From: p.From, To: p.To, Err: ErrEmptyTarget}
			return
		}

		if err := x.fsys.Rename(filepath.Join(root, p.From), filepath.Join(root, p.To)); err != nil {
			outcomes[i].Err = &RenameError{From: p.From, To: p.To, Err: err}
			x.logger.Debug("rename failed", "from", p.From, "to", p.To, "error", err)
			return
		}
		x.logger.Debug("renamed", "from", p.From, "to", p.To)
	})

	return outcomes
}

// Failures returns the errors of the failed outcomes in mapping order.
func Failures(outcomes []Outcome) []error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
