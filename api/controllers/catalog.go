package controllers

import (
	"net/http"

	"github.com/mickytroxxy/bluegrass/api/responses"
	"github.com/mickytroxxy/bluegrass/api/validators"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

type changeCategoryPayload struct {
	Category string `json:"category" validate:"required"`
}

// CatalogState returns the current category session.
func CatalogState(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}

// CatalogChangeCategory switches the category session and loads its first
// page. Upstream fetch failures are not surfaced here; the returned state
// simply keeps its previous items, matching the best-effort catalog
// contract.
func CatalogChangeCategory(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog store unavailable"))
			return
		}

		var payload changeCategoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.ChangeCategory(ctx, payload.Category))
	}
}

// CatalogLoadMore appends the next page to the current session. A no-op
// while loading or exhausted.
func CatalogLoadMore(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.LoadMore(ctx))
	}
}
