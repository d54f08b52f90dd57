package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bulkrename/internal/config"
	"bulkrename/internal/editor"
	"bulkrename/internal/fs"
	"bulkrename/internal/journal"
	"bulkrename/internal/rename"
)

// Options are the invocation settings that do not come from the config file.
type Options struct {
	// Dir is the directory to operate on. Empty means ".".
	Dir   string
	Debug bool
	// Stderr receives log output. Defaults to os.Stderr.
	Stderr io.Writer
	// Getenv looks up EDITOR and VISUAL. Defaults to os.Getenv.
	Getenv func(string) string
}

// App is the application layer between the CLI and rename.Service.
// It constructs all dependencies from config, exposes the high-level
// operations and releases the journal and log file on Close.
type App struct {
	cfg     *config.Config
	dir     string
	journal rename.Journal
	service *rename.Service
	op      *Operation
	logger  *slog.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Rename", "History").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string, opts Options) (*App, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	op := NewOperation(operation, time.Now())
	logger, logFile, err := newLogger(opts.Stderr, cfg.LogDir, op.ID, opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	closeLog := func() {
		if logFile != nil {
			logFile.Close()
		}
	}

	extra, err := fs.ParseIgnoreFile(filepath.Join(dir, fs.IgnoreFileName))
	if err != nil {
		closeLog()
		return nil, err
	}
	ignore := fs.NewIgnoreMatcher(append(append([]string{}, cfg.Ignore...), extra...))

	ed, err := editor.New(editor.Resolve(opts.Getenv, cfg.Editor))
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("creating editor: %w", err)
	}

	j, err := journal.NewJournalFromConfig(cfg.Journal)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	svc := rename.NewService(
		fs.NewOSFilesystem(),
		fs.NewTempScratchProvider(""),
		ed,
		j,
		&slogAdapter{l: logger},
		rename.RealClock{},
		rename.UUIDGenerator{},
		ignore,
		cfg.Workers,
	)

	logger.Debug("operation started", "operation", op.Name, "dir", dir, "editor", ed.String(), "ignore_patterns", ignore.Len())

	return &App{
		cfg:     cfg,
		dir:     dir,
		journal: j,
		service: svc,
		op:      op,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// Rename runs one rename transaction in the app's directory. Hidden entries
// are listed when showHidden is set or the config enables them.
func (a *App) Rename(mode rename.Mode, showHidden, dryRun bool) (*rename.Result, error) {
	a.op.Parameters = fmt.Sprintf("mode=%s pattern=%q replacement=%q dry_run=%t", mode.Kind, mode.Pattern, mode.Replacement, dryRun)

	result, err := a.service.Run(mode, rename.Options{
		Dir:        a.dir,
		ShowHidden: showHidden || a.cfg.ShowHidden,
		DryRun:     dryRun,
	})
	if err != nil {
		a.op.Fail()
		a.logger.Debug("rename failed", "error", err)
	}
	return result, err
}

// History returns the most recent journaled runs.
func (a *App) History(limit int) ([]*rename.Run, error) {
	runs, err := a.service.History(limit)
	if err != nil {
		a.op.Fail()
	}
	return runs, err
}

// FindRun returns the journaled run whose ID starts with idPrefix.
func (a *App) FindRun(idPrefix string) (*rename.Run, error) {
	run, err := a.service.FindRun(idPrefix)
	if err != nil {
		a.op.Fail()
	}
	return run, err
}

// Close finishes the operation log and closes the journal and log file.
func (a *App) Close() error {
	var firstErr error

	a.logger.Debug("operation finished", "operation", a.op.Name, "parameters", a.op.Parameters,
		"status", a.op.Status, "duration", time.Since(a.op.StartedAt))

	if err := a.journal.Close(); err != nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
