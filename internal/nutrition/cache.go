// ABOUTME: Badger-backed TTL cache for food database lookups.
// ABOUTME: Keeps repeat searches and portion math off the network.
package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

// DefaultCacheTTL bounds how long a remote lookup stays valid. The food
// database changes rarely; a day keeps repeat logging snappy without
// serving stale products for long.
const DefaultCacheTTL = 24 * time.Hour

// Cache is a disk-backed lookup cache with per-entry TTL.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens (or creates) a cache directory.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open lookup cache: %w", err)
	}
	return &Cache{db: db, ttl: DefaultCacheTTL}, nil
}

// Close releases the cache directory lock.
func (c *Cache) Close() error {
	return c.db.Close()
}

// get returns the raw entry and whether it was present and fresh.
func (c *Cache) get(key string) ([]byte, bool) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return raw, true
}

// set stores an entry with the cache TTL. Failures are swallowed; a
// cache write must never fail a lookup.
func (c *Cache) set(key string, raw []byte) {
	_ = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), raw).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// cacheGet decodes a typed entry from an optional cache.
func cacheGet[T any](c *Cache, key string) (T, bool) {
	var out T
	if c == nil {
		return out, false
	}
	raw, ok := c.get(key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

// cacheSet stores a typed entry into an optional cache.
func cacheSet[T any](c *Cache, key string, value T) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.set(key, raw)
}
