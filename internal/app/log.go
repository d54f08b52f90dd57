package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogFileName is the log file appended to inside the configured log_dir.
const LogFileName = "bulkrename.log"

// sink is one destination of the handler with its own minimum level.
type sink struct {
	w   io.Writer
	min slog.Level
}

// handler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<opID>\t<message>\t<key=value ...>
//
// Each record goes to every sink whose minimum level it reaches. Writes are
// serialized because the rename workers log concurrently.
type handler struct {
	mu    *sync.Mutex
	sinks []sink
	opID  string
	attrs []slog.Attr
}

func newHandler(opID string, sinks ...sink) *handler {
	return &handler{mu: &sync.Mutex{}, sinks: sinks, opID: opID}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if level >= s.min {
			return true
		}
	}
	return false
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	fmt.Fprintf(&buf, "%s\t%s\t%s\t%s", ts, r.Level.String(), h.opID, r.Message)

	// Write pre-set attrs.
	for _, a := range h.attrs {
		fmt.Fprintf(&buf, "\t%s=%v", a.Key, a.Value)
	}

	// Write per-record attrs.
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&buf, "\t%s=%v", a.Key, a.Value)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	var firstErr error
	for _, s := range h.sinks {
		if r.Level < s.min {
			continue
		}
		if _, err := s.w.Write(buf.Bytes()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{
		mu:    h.mu,
		sinks: h.sinks,
		opID:  h.opID,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *handler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger writing to stderr and, when logDir is
// not empty, to logDir/bulkrename.log. stderr only shows warnings unless debug
// is set; the log file always gets everything.
// It returns the slog.Logger, the open log file (nil without logDir, for
// cleanup), and any error.
func newLogger(stderr io.Writer, logDir string, opID string, debug bool) (*slog.Logger, *os.File, error) {
	consoleLevel := slog.LevelWarn
	if debug {
		consoleLevel = slog.LevelDebug
	}
	sinks := []sink{{w: stderr, min: consoleLevel}}

	var f *os.File
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}

		var err error
		f, err = os.OpenFile(filepath.Join(logDir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		sinks = append(sinks, sink{w: f, min: slog.LevelDebug})
	}

	return slog.New(newHandler(opID, sinks...)), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the rename.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
