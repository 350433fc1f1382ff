package auth

import (
	"sync"

	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
)

// TokenStore holds the current token pair. The pair is replaced or cleared
// as a whole, never field by field.
type TokenStore struct {
	mutex sync.RWMutex
	pair  *informdirect.TokenPair
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns a copy of the held pair, or nil.
func (s *TokenStore) Get() *informdirect.TokenPair {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.pair == nil {
		return nil
	}

	pair := *s.pair

	return &pair
}

// Set replaces the held pair with a copy of pair.
func (s *TokenStore) Set(pair *informdirect.TokenPair) {
	var stored *informdirect.TokenPair

	if pair != nil {
		clone := *pair
		stored = &clone
	}

	s.mutex.Lock()
	s.pair = stored
	s.mutex.Unlock()
}

// Clear drops the held pair.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	s.pair = nil
	s.mutex.Unlock()
}

// Has reports whether a pair is held.
func (s *TokenStore) Has() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.pair != nil
}
