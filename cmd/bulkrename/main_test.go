package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupEnv points config and data paths at temp dirs and returns a work
// directory holding files.
func setupEnv(t *testing.T, files ...string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("BULKRENAME_HOME", filepath.Join(home, "data"))
	t.Setenv("BULKRENAME_CONFIG_PATH", filepath.Join(home, "bulkrename.toml"))
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func exists(dir, name string) bool {
	_, err := os.Lstat(filepath.Join(dir, name))
	return err == nil
}

func TestRun_Replace(t *testing.T) {
	dir := setupEnv(t, "a.txt", "b.txt")

	code, stdout, stderr := runCLI(t, "-C", dir, "a", "x")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !exists(dir, "x.txt") || exists(dir, "a.txt") || !exists(dir, "b.txt") {
		t.Error("expected a.txt -> x.txt with b.txt untouched")
	}
	if !strings.Contains(stdout, "Renamed 1 of 1 entry") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := setupEnv(t, "a.txt")

	code, stdout, stderr := runCLI(t, "-n", "-C", dir, `\.txt$`, ".md")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "a.txt -> a.md") {
		t.Errorf("stdout = %q, want the planned pair", stdout)
	}
	if !exists(dir, "a.txt") || exists(dir, "a.md") {
		t.Error("dry run renamed a file")
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(dir string) []string
		contains string
	}{
		{
			name:     "invalid regex",
			args:     func(dir string) []string { return []string{"-C", dir, "a(", "x"} },
			contains: "failed to create regex with pattern `a(`",
		},
		{
			name:     "too many arguments",
			args:     func(dir string) []string { return []string{"-C", dir, "a", "b", "c"} },
			contains: "accepts at most 2 arg(s)",
		},
		{
			name:     "missing directory",
			args:     func(dir string) []string { return []string{"-C", filepath.Join(dir, "nope"), "a", "b"} },
			contains: "reading directory",
		},
		{
			name:     "unknown run",
			args:     func(string) []string { return []string{"history", "does-not-exist"} },
			contains: `no run matching "does-not-exist"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupEnv(t)
			code, _, stderr := runCLI(t, tt.args(dir)...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.HasPrefix(stderr, "[bulk-rename error]: ") {
				t.Errorf("stderr = %q, want the error prefix", stderr)
			}
			if !strings.Contains(stderr, tt.contains) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.contains)
			}
			if strings.Count(stderr, "[bulk-rename error]:") != 1 {
				t.Errorf("error printed more than once: %q", stderr)
			}
		})
	}
}

func TestRun_DebugPrintsChain(t *testing.T) {
	dir := setupEnv(t)

	code, _, stderr := runCLI(t, "-d", "-C", filepath.Join(dir, "nope"), "a", "b")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "caused by:") {
		t.Errorf("stderr = %q, want the error chain", stderr)
	}
}

func TestRun_RecursiveWarns(t *testing.T) {
	dir := setupEnv(t, "a")

	code, _, stderr := runCLI(t, "-R", "-C", dir, "a", "b")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stderr, "[bulk-rename warning]:") {
		t.Errorf("stderr = %q, want a warning", stderr)
	}
	if !exists(dir, "b") {
		t.Error("rename should still happen with --recursive")
	}
}

func TestRun_Config(t *testing.T) {
	setupEnv(t)

	code, stdout, stderr := runCLI(t, "config", "init")
	if code != 0 {
		t.Fatalf("config init exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Configuration initialized at") {
		t.Errorf("stdout = %q", stdout)
	}

	code, _, stderr = runCLI(t, "config", "init")
	if code != 1 || !strings.Contains(stderr, "already exists") {
		t.Errorf("second config init = %d, %q; want a refusal", code, stderr)
	}

	code, stdout, stderr = runCLI(t, "config", "list")
	if code != 0 {
		t.Fatalf("config list exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, `color = "auto"`) || !strings.Contains(stdout, "[journal]") {
		t.Errorf("config list = %q", stdout)
	}
}

func TestRun_History(t *testing.T) {
	dir := setupEnv(t, "a1", "a2")

	code, stdout, _ := runCLI(t, "history")
	if code != 0 || !strings.Contains(stdout, "No runs recorded.") {
		t.Fatalf("empty history = %d, %q", code, stdout)
	}

	if code, _, stderr := runCLI(t, "-C", dir, "^a", "b"); code != 0 {
		t.Fatalf("rename exit code = %d, stderr = %q", code, stderr)
	}

	code, stdout, _ = runCLI(t, "history", "-n", "5")
	if code != 0 {
		t.Fatalf("history exit code = %d", code)
	}
	if !strings.Contains(stdout, "replace") || !strings.Contains(stdout, "2 renamed, 0 failed") {
		t.Errorf("history = %q", stdout)
	}

	id := strings.Fields(stdout)[0]
	code, stdout, _ = runCLI(t, "history", id)
	if code != 0 {
		t.Fatalf("history %s exit code = %d", id, code)
	}
	if !strings.Contains(stdout, "a1 -> b1") || !strings.Contains(stdout, "a2 -> b2") {
		t.Errorf("history %s = %q", id, stdout)
	}
}
