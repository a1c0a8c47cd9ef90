package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/mickytroxxy/bluegrass/internal/cart"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/shopspring/decimal"
)

type countingCommitter struct {
	mu      sync.Mutex
	commits int
}

func (c *countingCommitter) Commit(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits++
}

func (c *countingCommitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

func product(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: "product " + id, Price: decimal.NewFromInt(price)}
}

func TestConfirmEmptyCart(t *testing.T) {
	cartStore := cart.NewStore()
	committer := &countingCommitter{}
	svc, err := NewService(ServiceParams{Cart: cartStore, Committer: committer})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Confirm(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if committer.count() != 0 {
		t.Fatal("empty cart confirmation must not commit")
	}
}

func TestConfirmClearsCartAndTotals(t *testing.T) {
	cartStore := cart.NewStore()
	cartStore.Add(product("p1", 20))
	cartStore.Add(product("p1", 20))
	cartStore.Add(product("p2", 15))

	committer := &countingCommitter{}
	svc, err := NewService(ServiceParams{Cart: cartStore, Committer: committer})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	confirmation, err := svc.Confirm(context.Background())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if confirmation.OrderRef == "" {
		t.Fatal("expected an order reference")
	}
	if confirmation.PlacedAt.IsZero() {
		t.Fatal("expected a placement timestamp")
	}
	if len(confirmation.Lines) != 2 {
		t.Fatalf("expected 2 receipt lines got %d", len(confirmation.Lines))
	}
	if confirmation.ItemCount != 3 {
		t.Fatalf("expected item count 3 got %d", confirmation.ItemCount)
	}
	want := decimal.NewFromInt(55)
	if !confirmation.Total.Equal(want) {
		t.Fatalf("expected total %s got %s", want, confirmation.Total)
	}

	if len(cartStore.Lines()) != 0 {
		t.Fatal("confirmation must empty the cart")
	}
	if committer.count() != 1 {
		t.Fatalf("expected 1 commit got %d", committer.count())
	}
}

func TestConfirmReferencesAreUnique(t *testing.T) {
	cartStore := cart.NewStore()
	svc, err := NewService(ServiceParams{Cart: cartStore})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	refs := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		cartStore.Add(product("p1", 10))
		confirmation, err := svc.Confirm(context.Background())
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if _, dup := refs[confirmation.OrderRef]; dup {
			t.Fatalf("duplicate order ref %s", confirmation.OrderRef)
		}
		refs[confirmation.OrderRef] = struct{}{}
	}
}
