package cart

import (
	"context"
	"log"
	"sync"
)

// Persister is the best-effort durable layer behind the store. In-memory
// state stays authoritative for the session: a failed save is logged and
// dropped, a failed load means an empty cart.
type Persister interface {
	SaveCart(ctx context.Context, sessionID string, c *Cart) error
	LoadCart(ctx context.Context, sessionID string) (*Cart, bool, error)
	DeleteCart(ctx context.Context, sessionID string) error
}

// Store holds one cart per session. The mutex guards the map across
// concurrent sessions; ordering within a session is the caller's contract.
type Store struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	persister Persister // optional
}

func NewStore(p Persister) *Store {
	return &Store{carts: map[string]*Cart{}, persister: p}
}

// Get returns the session's cart, loading it from the persister on first
// touch. The returned cart must only be mutated via Mutate.
func (s *Store) Get(ctx context.Context, sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx, sessionID)
}

func (s *Store) getLocked(ctx context.Context, sessionID string) *Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c := &Cart{}
	if s.persister != nil {
		if loaded, ok, err := s.persister.LoadCart(ctx, sessionID); err != nil {
			log.Printf("cart load session=%s: %v", sessionID, err)
		} else if ok {
			c = loaded
		}
	}
	s.carts[sessionID] = c
	return c
}

// Mutate applies fn to the session's cart and persists the result
// best-effort.
func (s *Store) Mutate(ctx context.Context, sessionID string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.getLocked(ctx, sessionID)
	if err := fn(c); err != nil {
		return err
	}
	if s.persister != nil {
		if err := s.persister.SaveCart(ctx, sessionID, c); err != nil {
			log.Printf("cart save session=%s: %v", sessionID, err)
		}
	}
	return nil
}

// Drop removes the session's cart from memory and the persister. Used on
// session teardown.
func (s *Store) Drop(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.DeleteCart(ctx, sessionID); err != nil {
			log.Printf("cart delete session=%s: %v", sessionID, err)
		}
	}
}
