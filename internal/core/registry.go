package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Mapping)
	registryMu sync.RWMutex
)

// Register adds a mapping to the registry.
// Panics if a mapping with the same key is already registered or the
// mapping is malformed.
func Register(m Mapping) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[m.Key]; exists {
		panic(fmt.Sprintf("mapping already registered: %s", m.Key))
	}
	if err := ValidateMapping(m); err != nil {
		panic(fmt.Sprintf("invalid mapping %s: %v", m.Key, err))
	}

	registry[m.Key] = m
}

// Get returns a mapping by key.
// Returns false if not found.
func Get(key string) (Mapping, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := registry[key]
	return m, ok
}

// lookup is Get returning ErrUnknownMapping for an unregistered key.
func lookup(key string) (Mapping, error) {
	m, ok := Get(key)
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %s", ErrUnknownMapping, key)
	}
	return m, nil
}

// All returns all registered mappings sorted by key.
func All() []Mapping {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Mapping, 0, len(registry))
	for _, m := range registry {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// MappingCount returns the number of registered mappings.
func MappingCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered mappings.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Mapping)
}
