package cache

import (
	"context"       // Context for cache operations
	"encoding/json" // JSON encoding/decoding
	"strings"       // Pattern matching for the in-memory store
	"sync"          // Mutex for the in-memory store
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Store is the keyed cache handlers depend on. It is injected rather than
// reached for globally; DeleteMatching takes a glob-style pattern
// (e.g. "*products_frontend*").
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMatching(ctx context.Context, pattern string) error
}

// RedisStore implements Store on a Redis client
type RedisStore struct {
	rdb *redis.Client // Underlying Redis client
}

// NewRedisStore wraps a Redis client as a Store
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := s.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set sets a value in Redis with a specified TTL
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return s.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Delete deletes a key from Redis
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DeleteMatching scans for keys matching the pattern and deletes them.
// SCAN is used instead of KEYS to avoid blocking the server on large keyspaces.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator() // Iterate matching keys
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err // Stop on first delete failure
		}
	}
	return iter.Err() // Surface scan errors
}

// MemoryStore is a map-backed Store. It exists for tests and local runs
// without a Redis server; TTLs are honored lazily on read.
type MemoryStore struct {
	mu      sync.Mutex           // Guards entries
	entries map[string]memoryEntry // Key to value/expiry
}

type memoryEntry struct {
	data      []byte    // JSON-encoded value
	expiresAt time.Time // Zero means no expiry
}

// NewMemoryStore returns an empty in-memory Store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get retrieves a value, treating expired entries as missing
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false, nil // Key does not exist
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.entries, key) // Expired, drop it
		return false, nil
	}
	return true, json.Unmarshal(e.data, dest)
}

// Set stores a JSON-encoded value with an optional TTL
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{data: b, expiresAt: exp}
	return nil
}

// Delete removes a key
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// DeleteMatching removes all keys containing the pattern's literal part.
// Only the "*substring*" form used by the product cache is supported.
func (s *MemoryStore) DeleteMatching(_ context.Context, pattern string) error {
	needle := strings.Trim(pattern, "*")
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if strings.Contains(k, needle) {
			delete(s.entries, k)
		}
	}
	return nil
}

// Keys returns the live keys of a MemoryStore, for assertions in tests
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
