package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPalettes = []byte("palettes")
)

// storedPalette is the on-disk form of a palette
type storedPalette struct {
	Swatches  domain.Palette `json:"swatches"`
	CreatedAt int64          `json:"created_at"`
}

// PaletteStore implements domain.PaletteStore using BoltDB.
type PaletteStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewPaletteStore opens (or creates) the palette database in baseCacheDir.
// An empty baseCacheDir gives a memory-only store.
func NewPaletteStore(baseCacheDir string) (*PaletteStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &PaletteStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(baseCacheDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseCacheDir, "moodreel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPalettes)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PaletteStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *PaletteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *PaletteStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PaletteStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Palettes ===

func paletteKey(movieID int) string {
	return "movie:" + strconv.Itoa(movieID)
}

func (s *PaletteStore) GetPalette(movieID int) (domain.Palette, bool) {
	var sp storedPalette
	if !s.get(bucketPalettes, paletteKey(movieID), &sp) {
		return nil, false
	}
	if len(sp.Swatches) == 0 {
		return nil, false
	}
	return sp.Swatches, true
}

func (s *PaletteStore) SavePalette(movieID int, p domain.Palette) error {
	return s.set(bucketPalettes, paletteKey(movieID), storedPalette{
		Swatches:  p,
		CreatedAt: time.Now().Unix(),
	})
}

// Len returns the number of persisted palettes (memory entries in memory-only mode)
func (s *PaletteStore) Len() int {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.cache)
	}

	n := 0
	s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketPalettes); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}

// InvalidateAll wipes every stored palette
func (s *PaletteStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPalettes)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
