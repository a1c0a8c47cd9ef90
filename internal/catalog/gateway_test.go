package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
)

func TestFilterByCategoryMapsProducts(t *testing.T) {
	var gotPath, gotCategory string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCategory = r.URL.Query().Get("c")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meals":[
			{"idMeal":"52874","strMeal":"Beef and Mustard Pie","strMealThumb":"https://example.com/52874.jpg"},
			{"idMeal":"52878","strMeal":"Beef and Oyster pie","strMealThumb":"https://example.com/52878.jpg","strCategory":"Beef"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	products, err := client.FilterByCategory(context.Background(), "Beef")
	if err != nil {
		t.Fatalf("FilterByCategory: %v", err)
	}

	if gotPath != "/filter.php" || gotCategory != "Beef" {
		t.Fatalf("unexpected request: path=%s c=%s", gotPath, gotCategory)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products got %d", len(products))
	}

	first := products[0]
	if first.ID != "52874" || first.Name != "Beef and Mustard Pie" || first.ImageURL != "https://example.com/52874.jpg" {
		t.Fatalf("unexpected product mapping: %+v", first)
	}
	if first.Category != "Beef" {
		t.Fatalf("missing upstream category must fall back to the requested one, got %q", first.Category)
	}
	if first.Price.IsZero() {
		t.Fatal("expected a synthetic price")
	}
	if !first.Price.Equal(syntheticPrice("52874")) {
		t.Fatalf("price must be deterministic per product id, got %s", first.Price)
	}
}

func TestFilterByCategoryNullMealsIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	products, err := client.FilterByCategory(context.Background(), "Goat")
	if err != nil {
		t.Fatalf("FilterByCategory: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog got %d products", len(products))
	}
}

func TestFilterByCategoryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FilterByCategory(context.Background(), "Beef")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error got %v", err)
	}
}

func TestFilterByCategoryMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals": [`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.FilterByCategory(context.Background(), "Beef"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFilterByCategoryRequiresCategory(t *testing.T) {
	client := NewClient()
	_, err := client.FilterByCategory(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestSyntheticPriceRange(t *testing.T) {
	ids := []string{"52874", "52878", "1", "abc", ""}
	for _, id := range ids {
		price := syntheticPrice(id)
		if !price.Equal(price.Truncate(0)) {
			t.Fatalf("price %s for id %q is not a whole amount", price, id)
		}
		units := price.IntPart()
		if units < priceFloor || units >= priceFloor+priceBand {
			t.Fatalf("price %s for id %q out of band", price, id)
		}
		if !price.Equal(syntheticPrice(id)) {
			t.Fatalf("price for id %q is not stable", id)
		}
	}
}
