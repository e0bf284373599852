// Package writeback queues persistence writes that failed so they can be
// replayed once the store recovers.
package writeback

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Item is one pending document write. Writes are whole-document overwrites,
// so only the newest payload per storage key is kept.
type Item struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`
}

// Queue wraps BoltDB to persist pending writes across restarts.
type Queue struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Queue, error) {
	if bucket == "" {
		bucket = "writeback"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Queue{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores a pending write, replacing any older write for the same key.
func (q *Queue) Enqueue(key string, payload []byte) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	item := Item{
		Key:       key,
		Payload:   append(json.RawMessage(nil), payload...),
		Timestamp: time.Now(),
	}
	encoded, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(q.bucket).Put([]byte(key), encoded)
	})
}

// Pending returns all queued writes without removing them.
func (q *Queue) Pending() ([]Item, error) {
	if q == nil || q.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var items []Item
	err := q.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(q.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

// Remove deletes the pending write for key, but only if a newer payload has
// not replaced the one being acknowledged.
func (q *Queue) Remove(item Item) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(q.bucket)
		current := bucket.Get([]byte(item.Key))
		if current == nil {
			return nil
		}
		var stored Item
		if err := json.Unmarshal(current, &stored); err == nil && stored.Timestamp.After(item.Timestamp) {
			return nil
		}
		return bucket.Delete([]byte(item.Key))
	})
}

// Bump rewrites the item with an incremented retry counter.
func (q *Queue) Bump(item Item) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	item.Retries++
	encoded, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(q.bucket)
		current := bucket.Get([]byte(item.Key))
		if current == nil {
			return nil
		}
		var stored Item
		if err := json.Unmarshal(current, &stored); err == nil && stored.Timestamp.After(item.Timestamp) {
			return nil
		}
		return bucket.Put([]byte(item.Key), encoded)
	})
}

// Size returns the number of pending writes.
func (q *Queue) Size() (int, error) {
	if q == nil || q.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := q.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(q.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (q *Queue) Close() error {
	if q == nil || q.db == nil {
		return nil
	}
	return q.db.Close()
}
