// Package session holds per-session cart state in memory. A session lives
// only as long as the process (and an idle TTL); carts are deliberately not
// persisted across restarts.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/domain"
)

const (
	// IdleTTL is how long an untouched session cart survives.
	IdleTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = time.Minute
)

// ErrCheckoutInFlight means a submission for this session has not finished
// yet; the caller must wait for it instead of submitting again.
var ErrCheckoutInFlight = errors.New("checkout already in progress for this session")

type entry struct {
	state            domain.CartState
	lastSeen         time.Time
	checkoutInFlight bool
}

// Store maps session ids to cart state. All transitions go through the
// cart reducer under the store's lock, so a session's cart only ever moves
// through reducer-produced states.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewStore() *Store {
	s := &Store{
		entries:     make(map[string]*entry),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-IdleTTL)
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) && !e.checkoutInFlight {
			delete(s.entries, id)
		}
	}
}

// Get returns a copy of the session's cart. An unknown session id yields the
// empty cart.
func (s *Store) Get(sessionID string) domain.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return domain.CartState{}
	}
	return e.state.Clone()
}

// Dispatch runs the reducer against the session's cart and stores the result.
// The returned state is a copy.
func (s *Store) Dispatch(sessionID string, action cart.Action) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{}
		s.entries[sessionID] = e
	}

	next, err := cart.Reduce(e.state, action)
	if err != nil {
		return domain.CartState{}, err
	}

	e.state = next
	e.lastSeen = time.Now()
	return next.Clone(), nil
}

// BeginCheckout marks the session's submission as in flight so a repeat
// submission (double-click, duplicate tab request) is refused until
// EndCheckout. This serializes submissions per session only; cross-device
// duplicates are handled by the order idempotency key, not here.
func (s *Store) BeginCheckout(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{}
		s.entries[sessionID] = e
	}
	if e.checkoutInFlight {
		return ErrCheckoutInFlight
	}
	e.checkoutInFlight = true
	e.lastSeen = time.Now()
	return nil
}

// EndCheckout releases the in-flight flag regardless of the submission outcome.
func (s *Store) EndCheckout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok {
		e.checkoutInFlight = false
	}
}

// Close stops the background cleanup goroutine.
func (s *Store) Close() {
	close(s.stopCleanup)
	s.wg.Wait()
}
