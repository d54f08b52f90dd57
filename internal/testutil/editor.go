package testutil

import (
	"strings"

	"bulkrename/internal/rename"
)

// StubEditor edits in-memory scratch files with a function instead of a
// human.
type StubEditor struct {
	scratch *MemoryScratchProvider
	edit    func(content string) string
	err     error
	// Seen holds the listing content each Edit call was given.
	Seen []string
}

// NewStubEditor creates an editor applying edit to the scratch file content.
func NewStubEditor(scratch *MemoryScratchProvider, edit func(content string) string) *StubEditor {
	return &StubEditor{scratch: scratch, edit: edit}
}

// NewFailingEditor creates an editor whose Edit always returns err.
func NewFailingEditor(err error) *StubEditor {
	return &StubEditor{err: err}
}

// ReplaceLines returns an edit function mapping each line through fn and
// writing the result back with a trailing newline, as most editors do.
func ReplaceLines(fn func(line string) string) func(string) string {
	return func(content string) string {
		lines := rename.ParseListing(content)
		for i, l := range lines {
			lines[i] = fn(l)
		}
		return strings.Join(lines, "\n") + "\n"
	}
}

func (e *StubEditor) Edit(path string) error {
	if e.err != nil {
		return e.err
	}
	content, _ := e.scratch.Content(path)
	e.Seen = append(e.Seen, content)
	return e.scratch.Write(path, e.edit(content))
}

var _ rename.Editor = (*StubEditor)(nil)
