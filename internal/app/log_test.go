package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		opID    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			opID:    "op-123",
			level:   slog.LevelInfo,
			message: "renames finished",
			want:    "2024-06-15T14:30:45Z\tINFO\top-123\trenames finished\n",
		},
		{
			name:    "debug level",
			opID:    "op-456",
			level:   slog.LevelDebug,
			message: "directory enumerated",
			want:    "2024-06-15T14:30:45Z\tDEBUG\top-456\tdirectory enumerated\n",
		},
		{
			name:    "with record attrs",
			opID:    "op-789",
			level:   slog.LevelWarn,
			message: "failed to read an entry, skipping",
			attrs:   []slog.Attr{slog.String("name", "gone.txt"), slog.Int("workers", 4)},
			want:    "2024-06-15T14:30:45Z\tWARN\top-789\tfailed to read an entry, skipping\tname=gone.txt\tworkers=4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newHandler(tt.opID, sink{w: &buf, min: slog.LevelDebug})

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestHandler_SinkLevels(t *testing.T) {
	var console, file bytes.Buffer
	h := newHandler("op-1",
		sink{w: &console, min: slog.LevelWarn},
		sink{w: &file, min: slog.LevelDebug},
	)
	logger := slog.New(h)

	logger.Debug("quiet")
	logger.Warn("loud")

	if strings.Contains(console.String(), "quiet") {
		t.Errorf("console got a debug record: %q", console.String())
	}
	if !strings.Contains(console.String(), "loud") {
		t.Errorf("console missed a warning: %q", console.String())
	}
	if !strings.Contains(file.String(), "quiet") || !strings.Contains(file.String(), "loud") {
		t.Errorf("file should get every record: %q", file.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := newHandler("op-1", sink{w: &bytes.Buffer{}, min: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(INFO) = true with a WARN sink")
	}
	for _, level := range []slog.Level{slog.LevelWarn, slog.LevelError} {
		if !h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = false, want true", level)
		}
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler("op-1", sink{w: &buf, min: slog.LevelDebug})

	// Add pre-set attrs
	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "journal")}).(*handler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "recorded", 0)
	r.AddAttrs(slog.String("run", "abc"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=journal") {
		t.Errorf("expected pre-set attr component=journal, got: %q", got)
	}
	if !strings.Contains(got, "run=abc") {
		t.Errorf("expected record attr run=abc, got: %q", got)
	}
	if len(h.attrs) != 0 {
		t.Errorf("original handler attrs modified: got %d, want 0", len(h.attrs))
	}
}

func TestHandler_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler("op-1", sink{w: &buf, min: slog.LevelDebug}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("renamed", "from", "a", "to", "b")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "\tfrom=a\tto=b") {
			t.Errorf("interleaved line: %q", line)
		}
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("writes to the log file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "log")
		var stderr bytes.Buffer

		logger, f, err := newLogger(&stderr, dir, "test-op", false)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		if f == nil {
			t.Fatal("newLogger() returned nil file")
		}

		logger.Debug("only in the file")
		f.Close()

		data, err := os.ReadFile(filepath.Join(dir, LogFileName))
		if err != nil {
			t.Fatalf("reading log file: %v", err)
		}
		if !strings.Contains(string(data), "only in the file") {
			t.Errorf("log file = %q", data)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr got %q, want nothing below WARN", stderr.String())
		}
	})

	t.Run("debug shows everything on stderr", func(t *testing.T) {
		var stderr bytes.Buffer
		logger, f, err := newLogger(&stderr, "", "test-op", true)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		if f != nil {
			t.Error("newLogger() opened a file without a log dir")
		}

		logger.Debug("details")
		if !strings.Contains(stderr.String(), "\tDEBUG\ttest-op\tdetails") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}
