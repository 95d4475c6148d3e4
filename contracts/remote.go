package contracts

import "io"

// Fetcher retrieves the bytes behind a URL, following redirects up to the
// transport's bound. Implementations surface non-2xx terminal responses and
// exceeded redirect bounds as *TransportError.
type Fetcher interface {
	Fetch(address string) (io.ReadCloser, error)
}

type Environment interface {
	LookupEnv(key string) (value string, set bool)
}
