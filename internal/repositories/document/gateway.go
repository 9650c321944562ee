package document

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config holds configuration for the gateway
type Config struct {
	// Backend is where documents are kept
	Backend Backend
}

// gateway implements Store over a Backend, serializing writes per document
type gateway struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new document gateway
func New(cfg *Config) (*gateway, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Backend == nil {
		return nil, errors.New("backend cannot be nil")
	}

	return &gateway{
		backend: cfg.Backend,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

// Load reads the mapping under key, tolerating missing or corrupt documents
func (g *gateway) Load(ctx context.Context, key string) Mapping {
	data, err := g.backend.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			log.Warn().Err(err).Str("document", key).Msg("Failed to read document, using empty mapping")
		}
		return Mapping{}
	}

	return decodeMapping(key, data)
}

// Save writes the mapping under key
func (g *gateway) Save(ctx context.Context, key string, m Mapping) error {
	lock := g.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	return g.write(ctx, key, m)
}

// Update runs a read-modify-write cycle on the mapping under key
func (g *gateway) Update(ctx context.Context, key string, fn func(m Mapping) error) error {
	lock := g.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	m := g.Load(ctx, key)
	if err := fn(m); err != nil {
		return err
	}

	return g.write(ctx, key, m)
}

// Get decodes the document under key into v
func (g *gateway) Get(ctx context.Context, key string, v any) (bool, error) {
	if v == nil {
		return false, errors.New("target cannot be nil")
	}

	data, err := g.backend.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			log.Warn().Err(err).Str("document", key).Msg("Failed to read document, treating it as absent")
		}
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("document", key).Msg("Malformed document, treating it as absent")
		return false, nil
	}

	return true, nil
}

// Put encodes v under key
func (g *gateway) Put(ctx context.Context, key string, v any) error {
	lock := g.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	return g.write(ctx, key, v)
}

func (g *gateway) write(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal document %s", key)
	}

	if err := g.backend.Write(ctx, key, data); err != nil {
		return errors.Wrapf(err, "failed to write document %s", key)
	}

	return nil
}

func (g *gateway) lockFor(key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[key] = lock
	}
	return lock
}

func decodeMapping(key string, data []byte) Mapping {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		log.Warn().Str("document", key).Msg("Document is not an object, using empty mapping")
		return Mapping{}
	}

	var m Mapping
	if err := json.Unmarshal(trimmed, &m); err != nil {
		log.Warn().Err(err).Str("document", key).Msg("Malformed document, using empty mapping")
		return Mapping{}
	}
	if m == nil {
		m = Mapping{}
	}

	return m
}
