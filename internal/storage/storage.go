package storage

import (
	"context"
	"io"
)

// Service persists uploaded images referenced by user and employee records.
// Records store the returned location verbatim; deleting a record never
// deletes the object it references.
type Service interface {
	// Save stores the object under key and returns its public location.
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Open returns a reader for a previously stored object.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a stored object.
	Delete(ctx context.Context, key string) error
}
