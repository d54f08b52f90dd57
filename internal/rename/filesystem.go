package rename

import "io/fs"

// Filesystem provides the directory operations the pipeline needs.
// It abstracts the real filesystem so tests can count rename calls.
type Filesystem interface {
	// ReadDir returns the direct children of dir. A failure here is fatal
	// for the run; per-entry failures surface later from DirEntry.Info.
	ReadDir(dir string) ([]fs.DirEntry, error)

	// Rename moves from to to without replacing an existing, different
	// destination. Implementations report a clobber attempt as an error.
	Rename(from, to string) error
}

// ScratchFile is a temporary file holding the editable listing.
type ScratchFile interface {
	// Path is handed to the editor.
	Path() string

	// Read returns the current content of the file.
	Read() (string, error)

	// Remove deletes the file. Removing twice is not an error.
	Remove() error
}

// ScratchProvider creates scratch files pre-filled with content.
type ScratchProvider interface {
	NewScratchFile(content string) (ScratchFile, error)
}

// Editor opens a file for interactive editing and blocks until the user is done.
type Editor interface {
	// Edit returns an error if the editor could not be started or did not
	// exit successfully. In both cases the file must be treated as untouched.
	Edit(path string) error
}

// NameFilter reports names that should be left out of a listing. Match gets
// the listing form of the name, with a trailing "/" for directories.
type NameFilter interface {
	Match(name string) bool
}
