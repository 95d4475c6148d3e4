package contracts

// The archive container format is an external capability; these interfaces
// are the entire surface this tool relies on.

type ArchivePacker interface {
	Pack(sources []string, destination string) error
}

type ArchiveExtractor interface {
	Extract(source, destination string) error
}
