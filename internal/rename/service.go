package rename

import (
	"fmt"
	"regexp"
	"time"
)

// Options are the per-invocation settings of a run.
type Options struct {
	// Dir is the directory whose entries are renamed. Empty means ".".
	Dir        string
	ShowHidden bool
	// DryRun stops after planning: the mapping is returned but nothing is renamed.
	DryRun bool
}

// Result summarizes a run.
type Result struct {
	RunID   string
	Mapping NameMapping
	Renamed int
	Failed  int
	DryRun  bool
}

// Service runs the rename pipeline: enumerate, match, produce targets,
// plan, execute and aggregate.
type Service struct {
	fsys    Filesystem
	scratch ScratchProvider
	editor  Editor
	journal Journal
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	ignore  NameFilter
	workers int
}

// NewService creates a Service with the provided dependencies.
// ignore may be nil. workers <= 0 uses one worker per CPU.
func NewService(fsys Filesystem, scratch ScratchProvider, editor Editor, journal Journal, logger Logger, clock Clock, idgen IDGenerator, ignore NameFilter, workers int) *Service {
	return &Service{
		fsys:    fsys,
		scratch: scratch,
		editor:  editor,
		journal: journal,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		ignore:  ignore,
		workers: workers,
	}
}

// Run executes one rename transaction in the given mode.
//
// Every error returned before the execute stage guarantees that nothing was
// renamed. Once renames start, all pairs are attempted and their failures are
// returned together as an *AggregateError alongside the Result.
func (s *Service) Run(mode Mode, opts Options) (*Result, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	startedAt := s.clock.Now()
	result := &Result{RunID: s.idgen.New(), DryRun: opts.DryRun}
	s.logger.Debug("run started", "run", result.RunID, "mode", mode.Kind.String(), "dir", dir)

	var re *regexp.Regexp
	if mode.Pattern != "" {
		var err error
		re, err = CompilePattern(mode.Pattern)
		if err != nil {
			return nil, err
		}
	}

	names, err := NewEnumerator(s.fsys, s.logger, opts.ShowHidden, s.ignore, s.workers).Enumerate(dir)
	if err != nil {
		return nil, err
	}

	matched := FilterMatches(names, re, s.workers)
	if len(matched) == 0 {
		s.logger.Info("no matching entries", "dir", dir, "pattern", mode.Pattern)
		return result, nil
	}

	var targets []string
	switch mode.Kind {
	case EditorMode:
		targets, err = s.editTargets(matched)
		if err != nil {
			return nil, err
		}
	case ReplaceMode:
		targets = ReplaceAll(matched, re, mode.Replacement, s.workers)
	default:
		return nil, fmt.Errorf("unknown mode: %v", mode.Kind)
	}

	mapping, err := Plan(matched, targets)
	if err != nil {
		return nil, err
	}
	result.Mapping = mapping

	changes := mapping.Changes()
	if changes == 0 {
		s.logger.Info("no names changed", "dir", dir)
		return result, nil
	}
	if opts.DryRun {
		s.logger.Debug("dry run, skipping renames", "changes", changes)
		return result, nil
	}

	outcomes := NewExecutor(s.fsys, s.logger, s.workers).Execute(dir, mapping)
	failures := Failures(outcomes)
	result.Renamed = changes - len(failures)
	result.Failed = len(failures)

	s.logger.Info("renames finished", "renamed", result.Renamed, "failed", result.Failed)
	s.record(result.RunID, mode, dir, startedAt, outcomes)

	return result, Aggregate(failures)
}

// editTargets writes names to a scratch file, lets the user edit it and
// returns the edited lines. The scratch file is removed on every path.
func (s *Service) editTargets(names []string) ([]string, error) {
	scratch, err := s.scratch.NewScratchFile(FormatListing(names))
	if err != nil {
		return nil, fmt.Errorf("creating scratch file: %w", err)
	}
	defer func() {
		if err := scratch.Remove(); err != nil {
			s.logger.Warn("failed to remove scratch file", "path", scratch.Path(), "error", err)
		}
	}()

	if err := s.editor.Edit(scratch.Path()); err != nil {
		return nil, fmt.Errorf("editing listing: %w", err)
	}

	content, err := scratch.Read()
	if err != nil {
		return nil, fmt.Errorf("reading edited listing %s: %w", scratch.Path(), err)
	}
	return ParseListing(content), nil
}

// record stores the executed run in the journal. A journal failure is only
// logged: the renames already happened and the run's outcome stands.
func (s *Service) record(runID string, mode Mode, dir string, startedAt time.Time, outcomes []Outcome) {
	run := &Run{
		ID:          runID,
		Mode:        mode.Kind.String(),
		Directory:   dir,
		Pattern:     mode.Pattern,
		Replacement: mode.Replacement,
		StartedAt:   startedAt,
		FinishedAt:  s.clock.Now(),
		Status:      RunStatusSuccess,
	}
	for _, o := range outcomes {
		if o.Skipped {
			continue
		}
		pr := PairRecord{From: o.Pair.From, To: o.Pair.To}
		if o.Err != nil {
			pr.Error = o.Err.Error()
			run.Failed++
			run.Status = RunStatusError
		} else {
			run.Renamed++
		}
		run.Pairs = append(run.Pairs, pr)
	}

	if err := s.journal.RecordRun(run); err != nil {
		s.logger.Warn("failed to record run in journal", "run", runID, "error", err)
	}
}

// History returns the most recent journaled runs, newest first.
func (s *Service) History(limit int) ([]*Run, error) {
	runs, err := s.journal.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// FindRun returns the journaled run whose ID starts with idPrefix, with its pairs.
func (s *Service) FindRun(idPrefix string) (*Run, error) {
	run, err := s.journal.FindRun(idPrefix)
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("no run matching %q", idPrefix)
	}
	return run, nil
}
