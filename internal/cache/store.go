package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// The five cache namespaces. Names are part of the persisted layout and
// must not change between releases.
const (
	NamespaceAlbums         = "etoileAlbums"
	NamespaceSongs          = "etoileSongs"
	NamespacePlaylists      = "etoilePlaylists"
	NamespacePlaylistsSongs = "etoilePlaylistsSongs"
	NamespaceRecentlyPlayed = "etoileRecentlyPlayedSongs"
)

// Singleton keys within their namespaces.
const (
	KeyAlbums         = "albums"
	KeyPlaylists      = "playlists"
	KeyRecentlyPlayed = "recentlyPlayed"
)

// Defaults matching the cache configuration every namespace uses.
const (
	DefaultTTL        = 48 * time.Hour
	DefaultCountLimit = 10
	DefaultCostLimit  = 10
)

// Options configures a Store. Zero values fall back to the defaults above.
type Options struct {
	TTL        time.Duration
	CountLimit int
	CostLimit  int
}

type memoryEntry[T any] struct {
	value T
	cost  int
}

// Store is a typed key-value cache for one namespace.
//
// A Store has a single logical owner and performs no internal locking;
// callers must serialize access externally.
type Store[T any] struct {
	db        *sql.DB
	namespace string

	ttl        time.Duration
	countLimit int
	costLimit  int

	// memory tier: deadline is fixed when the store is constructed,
	// mirroring how the persistent rows it shadows outlive a restart
	memory   map[string]memoryEntry[T]
	order    []string // insertion order, oldest first
	deadline time.Time

	now func() time.Time
}

// New constructs the Store for a namespace. Construction is idempotent:
// on-disk entries written by a previous process are preserved and keep
// the TTL they were stamped with.
func New[T any](db *sql.DB, namespace string, opts Options) (*Store[T], error) {
	if db == nil {
		return nil, fmt.Errorf("%w: nil database", shared.ErrInvalidArgument)
	}
	if namespace == "" {
		return nil, fmt.Errorf("%w: empty namespace", shared.ErrInvalidArgument)
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CountLimit <= 0 {
		opts.CountLimit = DefaultCountLimit
	}
	if opts.CostLimit <= 0 {
		opts.CostLimit = DefaultCostLimit
	}

	s := &Store[T]{
		db:         db,
		namespace:  namespace,
		ttl:        opts.TTL,
		countLimit: opts.CountLimit,
		costLimit:  opts.CostLimit,
		memory:     make(map[string]memoryEntry[T]),
		now:        time.Now,
	}
	s.deadline = s.now().Add(opts.TTL)
	return s, nil
}

// Set writes the value to both tiers, replacing any previous entry for key.
func (s *Store[T]) Set(key string, value T) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %q: %w", key, err)
	}

	expiresAt := s.now().Add(s.ttl)
	_, err = s.db.Exec(
		`INSERT INTO cache_entries (namespace, key, value, cost, expires_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(namespace, key) DO UPDATE SET
		 value = excluded.value, cost = excluded.cost, expires_at = excluded.expires_at, updated_at = CURRENT_TIMESTAMP`,
		s.namespace, key, blob, 1, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to persist cache entry %q: %w", key, err)
	}

	s.setMemory(key, value, 1)
	return nil
}

// Get returns the cached value for key. Absent, evicted, and expired
// entries all fail with an error wrapping [shared.ErrNotFound].
func (s *Store[T]) Get(key string) (T, error) {
	var zero T

	if s.now().Before(s.deadline) {
		if entry, ok := s.memory[key]; ok {
			return entry.value, nil
		}
	} else if len(s.memory) > 0 {
		// memory tier as a whole has aged out
		s.memory = make(map[string]memoryEntry[T])
		s.order = nil
	}

	var blob []byte
	var expiresAt time.Time
	err := s.db.QueryRow(
		"SELECT value, expires_at FROM cache_entries WHERE namespace = ? AND key = ?",
		s.namespace, key,
	).Scan(&blob, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s/%s", shared.ErrNotFound, s.namespace, key)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	if !s.now().Before(expiresAt) {
		// expired rows are reaped lazily on read
		s.db.Exec("DELETE FROM cache_entries WHERE namespace = ? AND key = ?", s.namespace, key)
		delete(s.memory, key)
		return zero, fmt.Errorf("%w: %s/%s expired", shared.ErrNotFound, s.namespace, key)
	}

	var value T
	if err := json.Unmarshal(blob, &value); err != nil {
		return zero, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}

	if s.now().Before(s.deadline) {
		s.setMemory(key, value, 1)
	}
	return value, nil
}

// Exists reports whether a live entry is present for key in either tier.
func (s *Store[T]) Exists(key string) bool {
	if s.now().Before(s.deadline) {
		if _, ok := s.memory[key]; ok {
			return true
		}
	}

	var expiresAt time.Time
	err := s.db.QueryRow(
		"SELECT expires_at FROM cache_entries WHERE namespace = ? AND key = ?",
		s.namespace, key,
	).Scan(&expiresAt)
	if err != nil {
		return false
	}
	return s.now().Before(expiresAt)
}

// Remove deletes the entry for key from both tiers.
// Removing an absent key is not an error.
func (s *Store[T]) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM cache_entries WHERE namespace = ? AND key = ?", s.namespace, key); err != nil {
		return fmt.Errorf("failed to remove cache entry %q: %w", key, err)
	}
	s.dropMemory(key)
	return nil
}

// setMemory inserts into the memory tier, evicting oldest entries until the
// count and cost ceilings hold.
func (s *Store[T]) setMemory(key string, value T, cost int) {
	s.dropMemory(key)
	s.memory[key] = memoryEntry[T]{value: value, cost: cost}
	s.order = append(s.order, key)

	for len(s.memory) > s.countLimit || s.totalCost() > s.costLimit {
		if len(s.order) == 0 {
			break
		}
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.memory, oldest)
	}
}

func (s *Store[T]) dropMemory(key string) {
	if _, ok := s.memory[key]; !ok {
		return
	}
	delete(s.memory, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store[T]) totalCost() int {
	total := 0
	for _, entry := range s.memory {
		total += entry.cost
	}
	return total
}
