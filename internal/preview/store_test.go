package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/entity"
)

func samplePreview(token string) *Preview {
	return &Preview{
		Token:     token,
		Card:      entity.Card{CardHolder: "Jane Doe", CompanyName: "Acme Corp"},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := s.Put(ctx, samplePreview("tok-1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Card.CardHolder != "Jane Doe" {
		t.Errorf("card_holder = %q, want Jane Doe", got.Card.CardHolder)
	}
}

func TestMemoryStoreMissingToken(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := s.Put(ctx, samplePreview("tok-1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "tok-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if err := s.Put(ctx, samplePreview("tok-1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Get(ctx, "tok-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get expired = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSweepOnPut(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	for _, tok := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, samplePreview(tok)); err != nil {
			t.Fatalf("put %s: %v", tok, err)
		}
	}

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := s.Put(ctx, samplePreview("d")); err != nil {
		t.Fatalf("put d: %v", err)
	}

	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	if n != 1 {
		t.Errorf("entries after sweep = %d, want 1", n)
	}
}
