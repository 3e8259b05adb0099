package domain

import (
	"reflect"
	"testing"
	"time"
)

func sampleCart() Cart {
	return Cart{
		{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 17990, Amount: 1},
		{ID: 2, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 13990, Amount: 2},
	}
}

func TestCart_Find(t *testing.T) {
	cart := sampleCart()

	product, ok := cart.Find(2)
	if !ok {
		t.Fatal("expected product 2 to be found")
	}
	if product.Amount != 2 {
		t.Fatalf("expected amount 2, got %d", product.Amount)
	}

	if _, ok := cart.Find(9); ok {
		t.Fatal("expected product 9 not to be found")
	}
	if idx := cart.IndexOf(9); idx != -1 {
		t.Fatalf("expected index -1, got %d", idx)
	}
}

func TestCart_WithProduct(t *testing.T) {
	cart := sampleCart()

	next := cart.WithProduct(Product{ID: 3, Title: "Tênis Adidas", Price: 21990, Amount: 7}, 1)

	if len(cart) != 2 {
		t.Fatalf("receiver was modified: len %d", len(cart))
	}
	if len(next) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(next))
	}
	if next[2].ID != 3 || next[2].Amount != 1 {
		t.Fatalf("expected appended product 3 with amount 1, got %+v", next[2])
	}
}

func TestCart_WithoutProduct(t *testing.T) {
	cart := sampleCart()

	next := cart.WithoutProduct(1)

	if len(next) != 1 || next[0].ID != 2 {
		t.Fatalf("expected only product 2 to remain, got %+v", next)
	}
	if !reflect.DeepEqual(cart, sampleCart()) {
		t.Fatal("receiver was modified")
	}
}

func TestCart_WithAmount(t *testing.T) {
	t.Run("updates matching entry", func(t *testing.T) {
		cart := sampleCart()
		next, ok := cart.WithAmount(1, 4)
		if !ok {
			t.Fatal("expected product to be found")
		}
		if next[0].Amount != 4 {
			t.Fatalf("expected amount 4, got %d", next[0].Amount)
		}
		if next[1] != cart[1] {
			t.Fatal("other entries must be unchanged")
		}
		if cart[0].Amount != 1 {
			t.Fatal("receiver was modified")
		}
	})

	t.Run("non-positive amount removes entry", func(t *testing.T) {
		next, ok := sampleCart().WithAmount(2, 0)
		if !ok {
			t.Fatal("expected product to be found")
		}
		if _, found := next.Find(2); found {
			t.Fatal("expected product 2 to be removed")
		}
	})

	t.Run("missing product", func(t *testing.T) {
		cart := sampleCart()
		next, ok := cart.WithAmount(9, 1)
		if ok {
			t.Fatal("expected missing product to report false")
		}
		if !reflect.DeepEqual(next, cart) {
			t.Fatal("expected cart unchanged")
		}
	})
}

func TestCart_Normalize(t *testing.T) {
	cart := Cart{
		{ID: 1, Amount: 1},
		{ID: 2, Amount: 0},
		{ID: 1, Amount: 5},
		{ID: 3, Amount: -1},
		{ID: 4, Amount: 2},
	}

	next, dropped := cart.Normalize()

	if dropped != 3 {
		t.Fatalf("expected 3 dropped entries, got %d", dropped)
	}
	want := Cart{{ID: 1, Amount: 1}, {ID: 4, Amount: 2}}
	if !reflect.DeepEqual(next, want) {
		t.Fatalf("expected %+v, got %+v", want, next)
	}
}

func TestCart_Totals(t *testing.T) {
	cart := sampleCart()

	if cart.Size() != 2 {
		t.Fatalf("expected size 2, got %d", cart.Size())
	}
	// 17990*1 + 13990*2 = 45970
	if cart.Total() != 45970 {
		t.Fatalf("expected total 45970, got %d", cart.Total())
	}
	if got := (Cart{}).Total(); got != 0 {
		t.Fatalf("expected empty total 0, got %d", got)
	}

	amounts := cart.AmountByProduct()
	if amounts[1] != 1 || amounts[2] != 2 || len(amounts) != 2 {
		t.Fatalf("unexpected amounts %v", amounts)
	}
}

func TestNewCartChangedEvent(t *testing.T) {
	before := time.Now()
	event := NewCartChangedEvent(CartProductAdded, 1, 1, sampleCart())

	if event.GetName() != "cart.product_added" {
		t.Fatalf("expected 'cart.product_added', got %q", event.GetName())
	}
	if event.GetEntityName() != "cart" {
		t.Fatalf("expected 'cart', got %q", event.GetEntityName())
	}
	if event.CartSize != 2 || event.CartTotal != 45970 {
		t.Fatalf("unexpected cart summary: size %d total %d", event.CartSize, event.CartTotal)
	}
	if event.OccurredAt.Before(before) {
		t.Fatal("OccurredAt not in expected range")
	}
}

func TestNotification_Names(t *testing.T) {
	success := NewSuccessNotification(1, "Product added to cart")
	if success.GetName() != "notification.success" {
		t.Fatalf("unexpected name %q", success.GetName())
	}
	failure := NewErrorNotification(1, "error adding product")
	if failure.GetName() != "notification.error" {
		t.Fatalf("unexpected name %q", failure.GetName())
	}
	if failure.GetEntityName() != "notification" {
		t.Fatalf("unexpected entity %q", failure.GetEntityName())
	}
}
