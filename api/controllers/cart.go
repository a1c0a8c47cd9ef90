package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mickytroxxy/bluegrass/api/responses"
	"github.com/mickytroxxy/bluegrass/api/validators"
	"github.com/mickytroxxy/bluegrass/internal/cart"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

// Committer mirrors the snapshot hook the stores use; cart mutations go
// through controllers, so the commit happens here.
type Committer interface {
	Commit(ctx context.Context)
}

type addCartItemPayload struct {
	Product catalog.Product `json:"product"`
}

type setQuantityPayload struct {
	Quantity int `json:"quantity"`
}

type cartView struct {
	Lines     []cart.Line     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func viewOf(store *cart.Store) cartView {
	return cartView{
		Lines:     store.Lines(),
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
	}
}

// CartGet returns the cart with derived totals.
func CartGet(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartAddItem adds the product snapshot to the cart, incrementing the
// existing line when present.
func CartAddItem(store *cart.Store, committer Committer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if strings.TrimSpace(payload.Product.ID) == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		store.Add(payload.Product)
		if committer != nil {
			committer.Commit(ctx)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(store))
	}
}

// CartSetQuantity sets the line quantity; zero or below removes the line.
func CartSetQuantity(store *cart.Store, committer Committer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store.SetQuantity(productID, payload.Quantity)
		if committer != nil {
			committer.Commit(ctx)
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartRemoveItem deletes the line for the product id; absent lines are fine.
func CartRemoveItem(store *cart.Store, committer Committer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		store.Remove(productID)
		if committer != nil {
			committer.Commit(ctx)
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartClear empties the cart.
func CartClear(store *cart.Store, committer Committer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		store.Clear()
		if committer != nil {
			committer.Commit(ctx)
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}
