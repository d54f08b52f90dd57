package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bulkrename/internal/rename"
)

// ErrTargetExists is the cause of a rename refused because the destination
// exists. It matches fs.ErrExist as well.
var ErrTargetExists error = targetExistsError{}

type targetExistsError struct{}

func (targetExistsError) Error() string        { return "target already exists" }
func (targetExistsError) Is(target error) bool { return target == fs.ErrExist }

// OSFilesystem is the real filesystem implementation of rename.Filesystem.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// ReadDir returns the entries of dir sorted by name.
func (m *OSFilesystem) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// Rename moves from to to. It refuses to replace an existing destination
// unless the rename only changes letter case and the destination is the
// source itself, as on case-insensitive filesystems.
func (m *OSFilesystem) Rename(from, to string) error {
	return renameNoReplace(from, to)
}

// checkedRename is the portable no-clobber rename. The existence check and
// the rename are two steps, so a destination created in between is replaced.
func checkedRename(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		if !caseOnlyRename(from, to) {
			return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrTargetExists}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking target %s: %w", to, err)
	}
	return os.Rename(from, to)
}

// caseOnlyRename reports whether to names the same file as from through a
// spelling that differs only in letter case. Hard links to the source do not
// qualify: renaming onto one would leave both names in place.
func caseOnlyRename(from, to string) bool {
	if filepath.Dir(from) != filepath.Dir(to) || !strings.EqualFold(filepath.Base(from), filepath.Base(to)) {
		return false
	}
	return sameFile(from, to)
}

func sameFile(a, b string) bool {
	ai, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Compile-time check that OSFilesystem implements rename.Filesystem
var _ rename.Filesystem = (*OSFilesystem)(nil)
