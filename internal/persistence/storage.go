// Package persistence keeps the small amount of state that survives between sessions.
package persistence

import (
	"strconv"
	"sync"
)

// Keys written by the game.
const (
	KeyPlayerName     = "playerName"
	KeyDeepest        = "deepest"
	KeyLoggingEnabled = "loggingEnabled"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryStore is a Store kept only in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Settings reads and writes the game's keys with their typed defaults.
type Settings struct {
	store Store
}

// NewSettings wraps a store.
func NewSettings(store Store) *Settings {
	return &Settings{store: store}
}

// PlayerName returns the remembered name, or "" if none was saved.
func (s *Settings) PlayerName() string {
	name, _ := s.store.Get(KeyPlayerName)
	return name
}

// SetPlayerName remembers the wanderer's name.
func (s *Settings) SetPlayerName(name string) error {
	return s.store.Set(KeyPlayerName, name)
}

// Deepest returns the best depth ever reached, 0 if unset or unreadable.
func (s *Settings) Deepest() int {
	raw, ok := s.store.Get(KeyDeepest)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetDeepest records a new best depth.
func (s *Settings) SetDeepest(depth int) error {
	return s.store.Set(KeyDeepest, strconv.Itoa(depth))
}

// LoggingEnabled reports whether notifications are on. Anything but an
// explicit "false" counts as enabled.
func (s *Settings) LoggingEnabled() bool {
	raw, _ := s.store.Get(KeyLoggingEnabled)
	return raw != "false"
}

// SetLoggingEnabled persists the notification toggle.
func (s *Settings) SetLoggingEnabled(enabled bool) error {
	return s.store.Set(KeyLoggingEnabled, strconv.FormatBool(enabled))
}
