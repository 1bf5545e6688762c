// Package pending keeps destructive actions that wait for an operator's
// explicit confirmation. Entries live in process memory only and expire
// after a TTL; a restart drops them and their tokens become unknown.
package pending

import (
	"strings"
	"sync"
	"time"

	"movi/internal/domain/models"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store is the registry of pending actions. Implementations must be safe
// for concurrent use.
type Store interface {
	Create(action string, details models.PendingDetails) (models.PendingAction, error)
	Get(token string) (models.PendingAction, bool)
	Remove(token string)
	// Take returns and removes the action in one step, so a token is handed
	// to at most one caller.
	Take(token string) (models.PendingAction, bool)
	// Restore puts back an action that was taken but could not be executed.
	// Already expired actions are dropped.
	Restore(action models.PendingAction)
}

// MemoryStore is a Store backed by an in-process TTL cache.
type MemoryStore struct {
	ttl   time.Duration
	cache *gocache.Cache
	mu    sync.Mutex
	now   func() time.Time
}

// NewMemoryStore creates a store whose entries expire after ttl. Expired
// entries are swept every sweep interval.
func NewMemoryStore(ttl, sweep time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		cache: gocache.New(ttl, sweep),
		now:   time.Now,
	}
}

// NewToken returns a fresh confirmation token ("p_" + 32 hex chars).
func NewToken() string {
	return "p_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *MemoryStore) Create(action string, details models.PendingDetails) (models.PendingAction, error) {
	now := s.now()
	p := models.PendingAction{
		Action:    action,
		Details:   details,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		p.ID = NewToken()
		// Add refuses existing keys, so a collision just draws again.
		if err := s.cache.Add(p.ID, p, s.ttl); err == nil {
			return p, nil
		}
	}
}

func (s *MemoryStore) Get(token string) (models.PendingAction, bool) {
	if token == "" {
		return models.PendingAction{}, false
	}
	v, ok := s.cache.Get(token)
	if !ok {
		return models.PendingAction{}, false
	}
	p, ok := v.(models.PendingAction)
	return p, ok
}

func (s *MemoryStore) Remove(token string) {
	s.cache.Delete(token)
}

func (s *MemoryStore) Take(token string) (models.PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Get(token)
	if !ok {
		return models.PendingAction{}, false
	}
	s.cache.Delete(token)
	return p, true
}

func (s *MemoryStore) Restore(p models.PendingAction) {
	left := p.ExpiresAt.Sub(s.now())
	if p.ID == "" || left <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(p.ID, p, left)
}

// Len reports the number of live entries (expired but unswept entries are
// not counted).
func (s *MemoryStore) Len() int {
	return len(s.cache.Items())
}
