package sources

import "errors"

// Sentinel kinds for fetcher errors.
var (
	ErrNoAdapters = errors.New("no source adapters registered")
)
