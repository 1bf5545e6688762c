package pending

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"movi/internal/domain/models"
)

func TestMemoryStoreCreateGetRemove(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	details := models.PendingDetails{TripID: 1, DeploymentID: 11, Bookings: 3}

	p, err := s.Create(models.ActionRemoveVehicle, details)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !strings.HasPrefix(p.ID, "p_") || len(p.ID) != 34 {
		t.Fatalf("unexpected token %q", p.ID)
	}
	if p.ExpiresAt.Sub(p.CreatedAt) != time.Minute {
		t.Fatalf("expires_at not derived from ttl: %v", p.ExpiresAt.Sub(p.CreatedAt))
	}

	got, ok := s.Get(p.ID)
	if !ok {
		t.Fatalf("expected pending action for %s", p.ID)
	}
	if got.Action != models.ActionRemoveVehicle || got.Details != details {
		t.Fatalf("unexpected action %+v", got)
	}

	s.Remove(p.ID)
	if _, ok := s.Get(p.ID); ok {
		t.Fatalf("action should be gone after Remove")
	}
}

func TestMemoryStoreTokensAreDistinct(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p, err := s.Create(models.ActionRemoveVehicle, models.PendingDetails{TripID: 1})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate token %s", p.ID)
		}
		seen[p.ID] = true
	}
	if s.Len() != 200 {
		t.Fatalf("got %d live entries, want 200", s.Len())
	}
}

func TestMemoryStoreTakeOnce(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	p, _ := s.Create(models.ActionRemoveVehicle, models.PendingDetails{TripID: 1, DeploymentID: 2})

	if _, ok := s.Take(p.ID); !ok {
		t.Fatalf("first Take should succeed")
	}
	if _, ok := s.Take(p.ID); ok {
		t.Fatalf("second Take should fail")
	}
	if _, ok := s.Take("bogus"); ok {
		t.Fatalf("unknown token should not be found")
	}
	if _, ok := s.Get(""); ok {
		t.Fatalf("empty token should not be found")
	}
}

func TestMemoryStoreConcurrentTake(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	p, _ := s.Create(models.ActionRemoveVehicle, models.PendingDetails{TripID: 1, DeploymentID: 2})

	var (
		wg      sync.WaitGroup
		winners int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Take(p.ID); ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("got %d successful takes, want exactly 1", winners)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(20*time.Millisecond, time.Hour)
	p, _ := s.Create(models.ActionRemoveVehicle, models.PendingDetails{TripID: 1})

	time.Sleep(60 * time.Millisecond)

	if _, ok := s.Get(p.ID); ok {
		t.Fatalf("expired action should not be returned")
	}
	if _, ok := s.Take(p.ID); ok {
		t.Fatalf("expired action should not be taken")
	}
}

func TestMemoryStoreRestore(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	p, _ := s.Create(models.ActionRemoveVehicle, models.PendingDetails{TripID: 1, DeploymentID: 2})

	taken, ok := s.Take(p.ID)
	if !ok {
		t.Fatalf("Take should succeed")
	}
	s.Restore(taken)
	if _, ok := s.Get(p.ID); !ok {
		t.Fatalf("restored action should be redeemable")
	}

	stale := taken
	stale.ID = "p_stale"
	stale.ExpiresAt = time.Now().Add(-time.Second)
	s.Restore(stale)
	if _, ok := s.Get("p_stale"); ok {
		t.Fatalf("expired action must not be restored")
	}
}
