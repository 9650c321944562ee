package document

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrDocumentNotFound is returned by a Backend when no document is stored under a key
var ErrDocumentNotFound = errors.New("document not found")

// Backend stores raw documents by key
type Backend interface {
	// Read returns the stored bytes or ErrDocumentNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the stored bytes
	Write(ctx context.Context, key string, data []byte) error
}

// Mapping is an object-shaped document: user identifier to record
type Mapping map[string]json.RawMessage

// Store is the persistence gateway used by the repositories
type Store interface {
	// Load returns the mapping stored under key. Missing or malformed documents
	// load as an empty mapping; the failure is logged, never returned.
	Load(ctx context.Context, key string) Mapping

	// Save replaces the document under key with m
	Save(ctx context.Context, key string, m Mapping) error

	// Update loads, mutates and saves the mapping under key while holding the
	// key's write lock. Nothing is written if fn returns an error.
	Update(ctx context.Context, key string, fn func(m Mapping) error) error

	// Get decodes a document of any shape into v. It returns false when the
	// document is missing or malformed.
	Get(ctx context.Context, key string, v any) (bool, error)

	// Put encodes v and replaces the document under key
	Put(ctx context.Context, key string, v any) error
}
