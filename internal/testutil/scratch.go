package testutil

import (
	"fmt"
	"io/fs"
	"sync"

	"bulkrename/internal/rename"
)

// MemoryScratchProvider keeps scratch files in memory and tracks which ones
// are still alive.
type MemoryScratchProvider struct {
	mu      sync.Mutex
	files   map[string]string
	created int
	// CreateErr, when set, makes NewScratchFile fail.
	CreateErr error
}

func NewMemoryScratchProvider() *MemoryScratchProvider {
	return &MemoryScratchProvider{files: make(map[string]string)}
}

func (p *MemoryScratchProvider) NewScratchFile(content string) (rename.ScratchFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	p.created++
	path := fmt.Sprintf("/tmp/bulkrename-%d.txt", p.created)
	p.files[path] = content
	return &memoryScratchFile{p: p, path: path}, nil
}

// Content returns the current content of the scratch file at path.
func (p *MemoryScratchProvider) Content(path string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.files[path]
	return c, ok
}

// Write replaces the content of the scratch file at path.
func (p *MemoryScratchProvider) Write(path, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.files[path]; !ok {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	p.files[path] = content
	return nil
}

// Created returns how many scratch files were created.
func (p *MemoryScratchProvider) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Live returns how many scratch files have not been removed.
func (p *MemoryScratchProvider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.files)
}

type memoryScratchFile struct {
	p    *MemoryScratchProvider
	path string
}

func (f *memoryScratchFile) Path() string { return f.path }

func (f *memoryScratchFile) Read() (string, error) {
	c, ok := f.p.Content(f.path)
	if !ok {
		return "", &fs.PathError{Op: "read", Path: f.path, Err: fs.ErrNotExist}
	}
	return c, nil
}

func (f *memoryScratchFile) Remove() error {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()
	delete(f.p.files, f.path)
	return nil
}

var _ rename.ScratchProvider = (*MemoryScratchProvider)(nil)
