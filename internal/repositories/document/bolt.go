package document

import (
	"context"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var documentsBucket = []byte("documents")

// BoltConfig holds configuration for the bbolt backend
type BoltConfig struct {
	// Path is the database file
	Path string
}

// boltBackend keeps documents as values in a single bucket
type boltBackend struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the database and its bucket
func NewBolt(cfg *BoltConfig) (*boltBackend, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("path cannot be empty")
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "is the bot already running? failed to open database")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create bucket")
	}

	return &boltBackend{db: db}, nil
}

// Read fetches the document value
func (b *boltBackend) Read(_ context.Context, key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(documentsBucket).Get([]byte(key))
		if v == nil {
			return ErrDocumentNotFound
		}
		// values are only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Write stores the document value
func (b *boltBackend) Write(_ context.Context, key string, data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).Put([]byte(key), data)
	})
}

// Close releases the database file
func (b *boltBackend) Close() error {
	return b.db.Close()
}
