package cart

import (
	"testing"

	"github.com/golden-burguer/appcore/internal/app/domain/product"
)

var (
	p1 = product.Product{ID: 1, Name: "Golden Clásica", Price: 1000}
	p2 = product.Product{ID: 2, Name: "Papas Golden", Price: 500}
)

func quantities(items []Item) map[int]int {
	out := make(map[int]int, len(items))
	for _, it := range items {
		out[it.Product.ID] = it.Quantity
	}
	return out
}

func checkInvariants(t *testing.T, items []Item) {
	t.Helper()
	seen := make(map[int]bool)
	for _, it := range items {
		if seen[it.Product.ID] {
			t.Fatalf("duplicate cart entry for product %d", it.Product.ID)
		}
		seen[it.Product.ID] = true
		if it.Quantity < 1 {
			t.Fatalf("product %d has quantity %d", it.Product.ID, it.Quantity)
		}
	}
}

func TestAddNewAndExisting(t *testing.T) {
	items := Add(nil, p1)
	items = Add(items, p1)
	items = Add(items, p2)

	checkInvariants(t, items)
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if q := quantities(items); q[1] != 2 || q[2] != 1 {
		t.Fatalf("unexpected quantities: %v", q)
	}
	// New items append at the end; existing order is preserved.
	if items[0].Product.ID != 1 || items[1].Product.ID != 2 {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestAddDoesNotMutateInput(t *testing.T) {
	original := Add(nil, p1)
	_ = Add(original, p1)
	if original[0].Quantity != 1 {
		t.Fatalf("input slice was mutated: %v", original)
	}
}

func TestIncreaseMissingIsNoop(t *testing.T) {
	items := Add(nil, p1)
	next := Increase(items, 99)
	if q := quantities(next); q[1] != 1 {
		t.Fatalf("unexpected quantities: %v", q)
	}
}

func TestDecrease(t *testing.T) {
	items := Add(Add(nil, p1), p1)

	items = Decrease(items, p1.ID)
	if q := quantities(items); q[1] != 1 {
		t.Fatalf("expected quantity 1, got %v", q)
	}

	items = Decrease(items, p1.ID)
	if len(items) != 0 {
		t.Fatalf("expected item removed at quantity 1, got %v", items)
	}

	if next := Decrease(items, 99); len(next) != 0 {
		t.Fatalf("decrease on missing product should be a no-op")
	}
}

func TestSubtotal(t *testing.T) {
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("empty cart subtotal = %v, want 0", got)
	}

	// Seeded scenario: 2x P1 ($1000) + 1x P2 ($500).
	items := Add(Add(Add(nil, p1), p1), p2)
	if got := Subtotal(items); got != 2500 {
		t.Fatalf("subtotal = %v, want 2500", got)
	}

	items = Decrease(items, p1.ID)
	if got := Subtotal(items); got != 1500 {
		t.Fatalf("subtotal = %v, want 1500", got)
	}

	items = Decrease(items, p1.ID)
	if got := Subtotal(items); got != 500 {
		t.Fatalf("subtotal = %v, want 500", got)
	}
	if len(items) != 1 || items[0].Product.ID != 2 {
		t.Fatalf("expected only P2 left, got %v", items)
	}
}
