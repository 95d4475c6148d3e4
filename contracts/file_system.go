package contracts

import (
	"io"
	"time"
)

// All paths are relative to the file system's root.

type PathLister interface {
	Listing() ([]FileInfo, error)
}

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileChecker interface {
	Stat(path string) (FileInfo, error)
}

type Deleter interface {
	Delete(path string) error
}

type RootPath interface {
	RootPath() string
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
}

type FileSystem interface {
	PathLister
	FileOpener
	FileReader
	FileWriter
	FileChecker
	Deleter
	RootPath
}
