package shell

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/forgesdk/quarry/contracts"
)

// DiskFileSystem exposes one directory tree; all paths are relative to the
// root and reported with forward slashes.
type DiskFileSystem struct{ root string }

func NewDiskFileSystem(root string) *DiskFileSystem {
	return &DiskFileSystem{root: filepath.Clean(root)}
}

func (this *DiskFileSystem) RootPath() string {
	return this.root
}

func (this *DiskFileSystem) resolve(path string) string {
	return filepath.Join(this.root, filepath.FromSlash(path))
}

func (this *DiskFileSystem) Listing() (listing []contracts.FileInfo, err error) {
	err = filepath.Walk(this.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relative, err := filepath.Rel(this.root, path)
		if err != nil {
			return err
		}
		listing = append(listing, FileInfo{
			path: filepath.ToSlash(relative),
			size: info.Size(),
			mod:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (this *DiskFileSystem) Stat(path string) (contracts.FileInfo, error) {
	info, err := os.Stat(this.resolve(path))
	if err != nil {
		return nil, err
	}
	return FileInfo{path: path, size: info.Size(), mod: info.ModTime()}, nil
}

func (this *DiskFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(this.resolve(path))
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(this.resolve(path))
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	resolved := this.resolve(path)
	err := os.MkdirAll(filepath.Dir(resolved), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(resolved, content, 0644)
}

func (this *DiskFileSystem) Delete(path string) error {
	return os.Remove(this.resolve(path))
}

////////////////////////////////////////

type FileInfo struct {
	path string
	size int64
	mod  time.Time
}

func (this FileInfo) Path() string       { return this.path }
func (this FileInfo) Size() int64        { return this.size }
func (this FileInfo) ModTime() time.Time { return this.mod }
