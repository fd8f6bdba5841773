/*
Package cache provides an optional cache for computed schedules.

PURPOSE:
  Schedule computation is cheap, but API responses for identical inputs
  are byte-identical, so callers may front the engine with a small
  key/value cache. Keys are derived from the serialized request.

IMPLEMENTATIONS:
  - Redis (redis.go): shared cache for deployed servers
  - Memory: process-local map, used in tests and single-node setups

A nil Cache disables caching everywhere it is accepted.
*/
package cache

import (
	"fmt"
	"sync"
)

// Cache is a minimal string key/value store.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Key derives a cache key from a serialized request. djb2 is enough
// here: collisions only cost a recomputation, never a wrong answer,
// because the payload feeds the hash in full.
func Key(prefix string, payload []byte) string {
	var hash uint32 = 5381
	for _, b := range payload {
		hash = (hash * 33) ^ uint32(b)
	}
	return fmt.Sprintf("%s:%08x", prefix, hash)
}

// =============================================================================
// IN-MEMORY IMPLEMENTATION
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
