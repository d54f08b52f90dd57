package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"bulkrename/internal/rename"
)

const scratchPattern = "bulkrename-*.txt"

// TempScratchProvider creates scratch files in a temporary directory.
type TempScratchProvider struct {
	dir string
}

// NewTempScratchProvider creates a provider writing into dir.
// An empty dir uses the system temporary directory.
func NewTempScratchProvider(dir string) *TempScratchProvider {
	return &TempScratchProvider{dir: dir}
}

// NewScratchFile creates a new temporary file containing content.
// On error no file is left behind.
func (p *TempScratchProvider) NewScratchFile(content string) (rename.ScratchFile, error) {
	f, err := os.CreateTemp(p.dir, scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write to temp file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close temp file %s: %w", path, err)
	}

	return &TempScratchFile{path: path}, nil
}

// TempScratchFile is a scratch file on disk.
type TempScratchFile struct {
	path string
}

func (f *TempScratchFile) Path() string { return f.path }

func (f *TempScratchFile) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *TempScratchFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

var (
	_ rename.ScratchProvider = (*TempScratchProvider)(nil)
	_ rename.ScratchFile     = (*TempScratchFile)(nil)
)
