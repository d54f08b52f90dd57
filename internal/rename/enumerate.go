package rename

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"unicode/utf8"
)

// currentDirPrefix is prepended to entry names so paths read the way a
// shell listing of "./" would print them.
const currentDirPrefix = "./"

// Entry is one direct child of an enumerated directory.
type Entry struct {
	// Path is relative to the enumerated directory, in "./name" form.
	Path  string
	IsDir bool
}

// Name returns the listing form of the entry: the "./" prefix removed and a
// trailing "/" added for directories.
func (e Entry) Name() string {
	name := strings.TrimPrefix(e.Path, currentDirPrefix)
	if e.IsDir {
		name += "/"
	}
	return name
}

// Enumerator lists directory entries as sorted, normalized names.
type Enumerator struct {
	fsys       Filesystem
	logger     Logger
	showHidden bool
	ignore     NameFilter
	workers    int
}

// NewEnumerator creates an Enumerator. ignore may be nil.
func NewEnumerator(fsys Filesystem, logger Logger, showHidden bool, ignore NameFilter, workers int) *Enumerator {
	return &Enumerator{
		fsys:       fsys,
		logger:     logger,
		showHidden: showHidden,
		ignore:     ignore,
		workers:    workers,
	}
}

// Enumerate returns the names of dir's direct children, sorted by raw path.
// A failure to read dir itself is returned. Entries that cannot be read or
// whose names are not valid UTF-8 are logged and left out.
func (e *Enumerator) Enumerate(dir string) ([]string, error) {
	dirEntries, err := e.fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	entries := e.readEntries(dirEntries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !e.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if e.ignore != nil && e.ignore.Match(name) {
			e.logger.Debug("entry ignored", "name", name)
			continue
		}
		names = append(names, name)
	}

	e.logger.Debug("directory enumerated", "dir", dir, "entries", len(dirEntries), "names", len(names))
	return names, nil
}

// readEntries resolves each DirEntry's type in parallel. Slots for entries
// that fail are left invalid and dropped.
func (e *Enumerator) readEntries(dirEntries []fs.DirEntry) []Entry {
	slots := make([]Entry, len(dirEntries))
	ok := make([]bool, len(dirEntries))

	forEach(len(dirEntries), e.workers, func(i int) {
		d := dirEntries[i]
		name := d.Name()
		if !utf8.ValidString(name) {
			e.logger.Warn("could not convert entry name to UTF-8 text, skipping", "name", fmt.Sprintf("%q", name))
			return
		}
		info, err := d.Info()
		if err != nil {
			e.logger.Warn("failed to read an entry, skipping", "name", name, "error", err)
			return
		}
		slots[i] = Entry{Path: currentDirPrefix + name, IsDir: info.IsDir()}
		ok[i] = true
	})

	entries := make([]Entry, 0, len(dirEntries))
	for i, entry := range slots {
		if ok[i] {
			entries = append(entries, entry)
		}
	}
	return entries
}
