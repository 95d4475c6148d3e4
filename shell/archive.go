package shell

import (
	"github.com/mholt/archiver"
)

// Archiver adapts the archive container capability; the format is chosen by
// the destination's file extension.
type Archiver struct{}

func NewArchiver() *Archiver {
	return &Archiver{}
}

func (this *Archiver) Pack(sources []string, destination string) error {
	return archiver.Archive(sources, destination)
}

func (this *Archiver) Extract(source, destination string) error {
	return archiver.Unarchive(source, destination)
}
