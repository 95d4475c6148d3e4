package shell

import (
	"bytes"
	"io"
	"os"
	"sort"
	"time"

	"github.com/forgesdk/quarry/contracts"
)

var InMemoryModTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// InMemoryFileSystem substitutes for DiskFileSystem in tests.
type InMemoryFileSystem struct {
	files map[string][]byte
	Root  string
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{files: make(map[string][]byte)}
}

func (this *InMemoryFileSystem) RootPath() string {
	return this.Root
}

func (this *InMemoryFileSystem) Listing() (listing []contracts.FileInfo, err error) {
	for path, content := range this.files {
		listing = append(listing, FileInfo{path: path, size: int64(len(content)), mod: InMemoryModTime})
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].Path() < listing[j].Path() })
	return listing, nil
}

func (this *InMemoryFileSystem) Stat(path string) (contracts.FileInfo, error) {
	content, found := this.files[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return FileInfo{path: path, size: int64(len(content)), mod: InMemoryModTime}, nil
}

func (this *InMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	content, found := this.files[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	content, found := this.files[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func (this *InMemoryFileSystem) WriteFile(path string, content []byte) error {
	this.files[path] = content
	return nil
}

func (this *InMemoryFileSystem) Delete(path string) error {
	if _, found := this.files[path]; !found {
		return os.ErrNotExist
	}
	delete(this.files, path)
	return nil
}
