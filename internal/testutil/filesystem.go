package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bulkrename/internal/rename"
)

// MockEntry represents an entry in the mock filesystem.
type MockEntry struct {
	IsDirectory bool
	ModTime     time.Time
	// InfoErr, when set, is returned by the entry's DirEntry.Info, as if the
	// entry vanished between listing and stat.
	InfoErr error
}

// MockFilesystem is an in-memory rename.Filesystem that records rename calls.
// It is safe for concurrent use.
type MockFilesystem struct {
	mu          sync.Mutex
	entries     map[string]*MockEntry
	readDirErrs map[string]error
	renameErrs  map[string]error
	renames     []rename.Pair
}

// NewMockFilesystem creates an empty mock filesystem.
func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		entries:     make(map[string]*MockEntry),
		readDirErrs: make(map[string]error),
		renameErrs:  make(map[string]error),
	}
}

// AddFile adds a regular file.
func (m *MockFilesystem) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[filepath.Clean(path)] = &MockEntry{ModTime: time.Now()}
}

// AddDirectory adds a directory.
func (m *MockFilesystem) AddDirectory(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[filepath.Clean(path)] = &MockEntry{IsDirectory: true, ModTime: time.Now()}
}

// AddBrokenEntry adds an entry whose Info call fails with err.
func (m *MockFilesystem) AddBrokenEntry(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[filepath.Clean(path)] = &MockEntry{InfoErr: err}
}

// FailReadDir makes ReadDir(dir) return err.
func (m *MockFilesystem) FailReadDir(dir string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDirErrs[filepath.Clean(dir)] = err
}

// FailRename makes renaming from return err.
func (m *MockFilesystem) FailRename(from string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renameErrs[filepath.Clean(from)] = err
}

// Exists reports whether path is present.
func (m *MockFilesystem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[filepath.Clean(path)]
	return ok
}

// RenameCalls returns every Rename call made so far, in call order.
func (m *MockFilesystem) RenameCalls() []rename.Pair {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]rename.Pair(nil), m.renames...)
}

// ReadDir returns the direct children of dir in map order, which is
// deliberately unsorted.
func (m *MockFilesystem) ReadDir(dir string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = filepath.Clean(dir)
	if err := m.readDirErrs[dir]; err != nil {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: err}
	}
	if dir != "." {
		if e, ok := m.entries[dir]; !ok || !e.IsDirectory {
			return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
		}
	}

	var out []fs.DirEntry
	for path, e := range m.entries {
		if filepath.Dir(path) == dir && path != dir {
			out = append(out, &mockDirEntry{name: filepath.Base(path), entry: *e})
		}
	}
	return out, nil
}

// Rename moves an entry, and everything below it for directories. Like the
// real implementation it refuses to replace an existing destination.
func (m *MockFilesystem) Rename(from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, to = filepath.Clean(from), filepath.Clean(to)
	m.renames = append(m.renames, rename.Pair{From: from, To: to})

	if err := m.renameErrs[from]; err != nil {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: err}
	}
	e, ok := m.entries[from]
	if !ok {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: fs.ErrNotExist}
	}
	if _, exists := m.entries[to]; exists {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: fs.ErrExist}
	}

	delete(m.entries, from)
	m.entries[to] = e
	if e.IsDirectory {
		prefix := from + string(filepath.Separator)
		for path, child := range m.entries {
			if strings.HasPrefix(path, prefix) {
				delete(m.entries, path)
				m.entries[to+string(filepath.Separator)+strings.TrimPrefix(path, prefix)] = child
			}
		}
	}
	return nil
}

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	name  string
	entry MockEntry
}

func (d *mockDirEntry) Name() string { return d.name }
func (d *mockDirEntry) IsDir() bool  { return d.entry.IsDirectory }

func (d *mockDirEntry) Type() fs.FileMode {
	if d.entry.IsDirectory {
		return fs.ModeDir
	}
	return 0
}

func (d *mockDirEntry) Info() (fs.FileInfo, error) {
	if d.entry.InfoErr != nil {
		return nil, d.entry.InfoErr
	}
	return &mockFileInfo{name: d.name, entry: d.entry}, nil
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name  string
	entry MockEntry
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return 0 }
func (i *mockFileInfo) ModTime() time.Time { return i.entry.ModTime }
func (i *mockFileInfo) IsDir() bool        { return i.entry.IsDirectory }
func (i *mockFileInfo) Sys() any           { return nil }

func (i *mockFileInfo) Mode() fs.FileMode {
	if i.entry.IsDirectory {
		return fs.ModeDir | 0755
	}
	return 0644
}

// Compile-time check
var _ rename.Filesystem = (*MockFilesystem)(nil)
