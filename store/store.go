// Package store holds the in-memory session state. Four slices own disjoint
// subtrees of the tree; every transition runs to completion under the store
// lock, so no reader ever observes a partially applied mutation. The store
// lives for the page session and is rebuilt from the gateway on login.
package store

import (
	"sync"

	"go.uber.org/zap"
)

// Slice is an independently addressable subtree of session state with its
// own transition set. Reset returns the slice to its initial defaults and is
// broadcast to every registered slice on logout.
type Slice interface {
	Name() string
	Reset()
}

type Store struct {
	mu     sync.Mutex
	slices []Slice
	logger *zap.SugaredLogger
}

func NewStore(logger *zap.SugaredLogger) *Store {
	return &Store{
		logger: logger,
	}
}

// Register adds slices to the logout broadcast. Slices are registered once
// at composition time and never removed.
func (s *Store) Register(slices ...Slice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slices = append(s.slices, slices...)
}

// Update runs one or more transitions atomically. Transitions are
// synchronous and cannot fail; errors only enter the tree as failure
// payloads dispatched by a coordinator.
func (s *Store) Update(transition func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transition()
}

// View runs read against a quiescent tree. Between a request transition and
// the resolution of its gateway call the tree is speculative; readers see
// the not-yet-confirmed mutation, which is intentional.
func (s *Store) View(read func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	read()
}

// Logout resets every registered slice to its initial defaults in a single
// atomic broadcast. There is no remote call and no suspension point.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slice := range s.slices {
		slice.Reset()
	}
	if s.logger != nil {
		s.logger.Infow("session state reset", "slices", len(s.slices))
	}
}
