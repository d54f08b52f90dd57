// Package editor launches the user's text editor on the rename listing.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"bulkrename/internal/rename"
)

// DefaultEditor is used when neither the environment nor the config names one.
const DefaultEditor = "vi"

// ErrNonZeroExit is returned when the editor does not exit successfully.
var ErrNonZeroExit = errors.New("editor exited with a non-zero code")

// Resolve picks the editor command: $EDITOR, then $VISUAL, then fallback,
// then DefaultEditor. getenv is usually os.Getenv.
func Resolve(getenv func(string) string, fallback string) string {
	for _, v := range []string{getenv("EDITOR"), getenv("VISUAL"), fallback} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return DefaultEditor
}

// Command runs an external editor attached to the current terminal.
type Command struct {
	program string
	args    []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a Command from an editor string such as "vim" or "code --wait".
// The string is split on whitespace; the file path is appended as the last argument.
func New(editor string) (*Command, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	return &Command{
		program: fields[0],
		args:    fields[1:],
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// String returns the editor command line without the file argument.
func (c *Command) String() string {
	return strings.Join(append([]string{c.program}, c.args...), " ")
}

// Edit opens path in the editor and waits for it to exit.
// There is no timeout: the run waits for as long as the user edits.
func (c *Command) Edit(path string) error {
	cmd := exec.Command(c.program, append(append([]string{}, c.args...), path)...)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s with %s (bulkrename uses $EDITOR, then $VISUAL, then %s): %w",
			path, c, DefaultEditor, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s: %w (%s); not changing any files", c, ErrNonZeroExit, exitErr.ProcessState)
		}
		return fmt.Errorf("failed to wait on %s: %w", c, err)
	}

	return nil
}

// Compile-time check that Command implements rename.Editor
var _ rename.Editor = (*Command)(nil)
