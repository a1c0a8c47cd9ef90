package controllers

import (
	"net/http"

	"github.com/mickytroxxy/bluegrass/api/responses"
	checkoutsvc "github.com/mickytroxxy/bluegrass/internal/checkout"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

// CheckoutConfirm converts the cart into a simulated order confirmation.
func CheckoutConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		confirmation, err := svc.Confirm(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithField(ctx, "order_ref", confirmation.OrderRef)
			logg.Info(ctx, "checkout.confirmed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
