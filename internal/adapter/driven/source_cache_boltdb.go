package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-aggregator/internal/port/driven"
	"github.com/alorle/iptv-aggregator/internal/source"
)

const sourcesBucket = "sources"

// SourceCacheBoltDB implements the SourceCache port using BoltDB.
// Entries are keyed by source address.
type SourceCacheBoltDB struct {
	db  *bbolt.DB
	now func() time.Time
}

// NewSourceCacheBoltDB creates a new BoltDB-backed source cache.
// It initializes the required bucket if it doesn't exist.
func NewSourceCacheBoltDB(db *bbolt.DB) (*SourceCacheBoltDB, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sourcesBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sources bucket: %w", err)
	}

	return &SourceCacheBoltDB{db: db, now: time.Now}, nil
}

// cachedSourceDTO is the JSON serialization format for a cached body.
type cachedSourceDTO struct {
	Content   []byte `json:"content"`
	FetchedAt int64  `json:"fetched_at"`
}

// Get returns the stored body for address, or source.ErrCacheMiss.
func (c *SourceCacheBoltDB) Get(ctx context.Context, address string) (driven.CachedSource, error) {
	if err := ctx.Err(); err != nil {
		return driven.CachedSource{}, err
	}

	var dto cachedSourceDTO
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(sourcesBucket))
		if b == nil {
			return errors.New("sources bucket not found")
		}

		data := b.Get([]byte(address))
		if data == nil {
			return source.ErrCacheMiss
		}
		return json.Unmarshal(data, &dto)
	})
	if err != nil {
		return driven.CachedSource{}, err
	}

	return driven.CachedSource{
		Content:   dto.Content,
		FetchedAt: time.Unix(0, dto.FetchedAt),
	}, nil
}

// Put stores content for address, replacing any previous copy.
func (c *SourceCacheBoltDB) Put(ctx context.Context, address string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(cachedSourceDTO{
		Content:   content,
		FetchedAt: c.now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cached source: %w", err)
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(sourcesBucket))
		if b == nil {
			return errors.New("sources bucket not found")
		}
		return b.Put([]byte(address), data)
	})
}
