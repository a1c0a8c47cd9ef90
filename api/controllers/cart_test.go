package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mickytroxxy/bluegrass/internal/cart"
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

type cartViewBody struct {
	Lines []struct {
		Product struct {
			ID    string          `json:"id"`
			Price decimal.Decimal `json:"price"`
		} `json:"product"`
		Quantity int `json:"quantity"`
	} `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func newCartRouter(store *cart.Store, committer Committer) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", CartGet(store, nil))
	r.Delete("/cart", CartClear(store, committer, nil))
	r.Post("/cart/items", CartAddItem(store, committer, nil))
	r.Patch("/cart/items/{productId}", CartSetQuantity(store, committer, nil))
	r.Delete("/cart/items/{productId}", CartRemoveItem(store, committer, nil))
	return r
}

func doCart(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, cartViewBody) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope struct {
		Data cartViewBody `json:"data"`
	}
	if rec.Code < 400 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v body=%s", err, rec.Body.String())
		}
	}
	return rec, envelope.Data
}

func addBody(id string, price int64) string {
	payload := map[string]any{"product": map[string]any{
		"id":       id,
		"name":     "product " + id,
		"category": "Beef",
		"price":    decimal.NewFromInt(price),
	}}
	blob, _ := json.Marshal(payload)
	return string(blob)
}

func TestCartEndpointsFlow(t *testing.T) {
	store := cart.NewStore()
	committer := &countingCommitter{}
	router := newCartRouter(store, committer)

	rec, view := doCart(t, router, http.MethodPost, "/cart/items", addBody("p1", 20))
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	if view.ItemCount != 1 {
		t.Fatalf("add: expected item count 1 got %d", view.ItemCount)
	}

	doCart(t, router, http.MethodPost, "/cart/items", addBody("p1", 20))
	rec, view = doCart(t, router, http.MethodPost, "/cart/items", addBody("p2", 15))
	if rec.Code != http.StatusCreated || len(view.Lines) != 2 || view.ItemCount != 3 {
		t.Fatalf("expected 2 lines / count 3, got %d / %d", len(view.Lines), view.ItemCount)
	}
	if !view.Total.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected total 55 got %s", view.Total)
	}

	rec, view = doCart(t, router, http.MethodPatch, "/cart/items/p1", `{"quantity":5}`)
	if rec.Code != http.StatusOK || view.Lines[0].Quantity != 5 {
		t.Fatalf("set quantity: code=%d lines=%+v", rec.Code, view.Lines)
	}

	rec, view = doCart(t, router, http.MethodPatch, "/cart/items/p1", `{"quantity":0}`)
	if rec.Code != http.StatusOK || len(view.Lines) != 1 || view.Lines[0].Product.ID != "p2" {
		t.Fatalf("quantity 0 must remove the line, got %+v", view.Lines)
	}

	rec, view = doCart(t, router, http.MethodDelete, "/cart/items/p2", "")
	if rec.Code != http.StatusOK || len(view.Lines) != 0 {
		t.Fatalf("remove: code=%d lines=%+v", rec.Code, view.Lines)
	}

	doCart(t, router, http.MethodPost, "/cart/items", addBody("p3", 10))
	rec, view = doCart(t, router, http.MethodDelete, "/cart", "")
	if rec.Code != http.StatusOK || view.ItemCount != 0 {
		t.Fatalf("clear: code=%d count=%d", rec.Code, view.ItemCount)
	}

	// add x4, patch x2, remove, clear
	if committer.count() != 8 {
		t.Fatalf("expected 8 commits got %d", committer.count())
	}

	rec, view = doCart(t, router, http.MethodGet, "/cart", "")
	if rec.Code != http.StatusOK || len(view.Lines) != 0 || !view.Total.IsZero() {
		t.Fatalf("get: code=%d view=%+v", rec.Code, view)
	}
}

func TestCartAddRequiresProductID(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store, nil)

	rec, _ := doCart(t, router, http.MethodPost, "/cart/items", `{"product":{"name":"nameless"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if len(store.Lines()) != 0 {
		t.Fatal("invalid add must not touch the cart")
	}
}

func TestCartAddRejectsUnknownFields(t *testing.T) {
	router := newCartRouter(cart.NewStore(), nil)

	rec, _ := doCart(t, router, http.MethodPost, "/cart/items", `{"product":{"id":"p1"},"bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCartAddCopiesProductSnapshot(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store, nil)

	doCart(t, router, http.MethodPost, "/cart/items", addBody("p1", 42))

	line, ok := store.Item("p1")
	if !ok {
		t.Fatal("expected line for p1")
	}
	if !line.Product.Price.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("cart must keep the submitted product snapshot, got price %s", line.Product.Price)
	}
	if line.Product.Category != "Beef" {
		t.Fatalf("unexpected category %s", line.Product.Category)
	}
}
