package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
	"github.com/golden-burguer/appcore/internal/app/storage/memory"
)

func seededService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	if err := store.SeedProducts(context.Background(), []product.Product{
		{ID: 1, Name: "P1", Price: 1000},
		{ID: 2, Name: "P2", Price: 500},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := New(store, nil)
	t.Cleanup(svc.Close)
	return svc, store
}

// waitFor polls snapshot updates until cond holds or the deadline passes.
func waitFor(t *testing.T, svc *Service, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	ch, cancel := svc.Subscribe()
	defer cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed while waiting")
			}
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatalf("condition not reached; last state: %+v", svc.State())
		}
	}
}

func TestInitialSnapshotMirrorsStore(t *testing.T) {
	svc, _ := seededService(t)

	snap := waitFor(t, svc, func(s Snapshot) bool { return len(s.Products) == 2 })
	if len(snap.Favorites) != 0 {
		t.Fatalf("expected no favorites, got %v", snap.Favorites)
	}
	if len(snap.Cart) != 0 {
		t.Fatal("cart must start empty")
	}
}

func TestToggleFavoriteArrivesThroughSubscription(t *testing.T) {
	svc, _ := seededService(t)
	waitFor(t, svc, func(s Snapshot) bool { return len(s.Products) == 2 })

	svc.ToggleFavorite(1, false)

	snap := waitFor(t, svc, func(s Snapshot) bool { return len(s.Favorites) == 1 })
	if snap.Favorites[0].ID != 1 || !snap.Favorites[0].Favorite {
		t.Fatalf("unexpected favorites: %v", snap.Favorites)
	}

	// Toggling back settles on not-favorite; same-target writes are
	// idempotent so a repeat changes nothing.
	svc.ToggleFavorite(1, true)
	waitFor(t, svc, func(s Snapshot) bool { return len(s.Favorites) == 0 })
	svc.ToggleFavorite(1, true)
	waitFor(t, svc, func(s Snapshot) bool { return len(s.Favorites) == 0 })
}

func TestCartScenario(t *testing.T) {
	svc, _ := seededService(t)
	snap := waitFor(t, svc, func(s Snapshot) bool { return len(s.Products) == 2 })

	p1, p2 := snap.Products[0], snap.Products[1]

	svc.AddToCart(p1)
	svc.AddToCart(p1)
	svc.AddToCart(p2)

	got := svc.State()
	if len(got.Cart) != 2 || got.Cart[0].Quantity != 2 || got.Cart[1].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", got.Cart)
	}
	if got.Subtotal() != 2500 {
		t.Fatalf("subtotal = %v, want 2500", got.Subtotal())
	}

	svc.DecreaseQuantity(p1.ID)
	if got := svc.State(); got.Subtotal() != 1500 {
		t.Fatalf("subtotal = %v, want 1500", got.Subtotal())
	}

	svc.DecreaseQuantity(p1.ID)
	got = svc.State()
	if len(got.Cart) != 1 || got.Cart[0].Product.ID != p2.ID {
		t.Fatalf("unexpected cart: %+v", got.Cart)
	}
	if got.Subtotal() != 500 {
		t.Fatalf("subtotal = %v, want 500", got.Subtotal())
	}

	svc.ClearCart()
	if got := svc.State(); len(got.Cart) != 0 || got.Subtotal() != 0 {
		t.Fatalf("cart should be empty after clear: %+v", got.Cart)
	}
}

func TestIncreaseDecreaseMissingAreNoops(t *testing.T) {
	svc, _ := seededService(t)
	waitFor(t, svc, func(s Snapshot) bool { return len(s.Products) == 2 })

	svc.IncreaseQuantity(99)
	svc.DecreaseQuantity(99)
	if got := svc.State(); len(got.Cart) != 0 {
		t.Fatalf("expected empty cart, got %+v", got.Cart)
	}
}

func TestConcurrentCartUpdatesAreNotLost(t *testing.T) {
	svc, _ := seededService(t)
	snap := waitFor(t, svc, func(s Snapshot) bool { return len(s.Products) == 2 })
	p1 := snap.Products[0]

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				svc.AddToCart(p1)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	got := svc.State()
	if len(got.Cart) != 1 || got.Cart[0].Quantity != 400 {
		t.Fatalf("lost updates: %+v", got.Cart)
	}
}
