package ingestion

import "errors"

var (
	// ErrRegistrarRequired is returned when a registrar is not provided.
	ErrRegistrarRequired = errors.New("registrar required")

	// ErrNoFiles is returned by LoadDir when the directory holds no graph files.
	ErrNoFiles = errors.New("no graph files found")
)
