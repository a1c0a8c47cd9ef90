package controllers

import (
	"net/http"

	"github.com/mickytroxxy/bluegrass/api/responses"
	"github.com/mickytroxxy/bluegrass/api/validators"
	"github.com/mickytroxxy/bluegrass/internal/account"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

// accountView is the API shape of an account; the stored hash never leaves
// the service.
type accountView struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func viewOfAccount(info *account.Info) *accountView {
	if info == nil {
		return nil
	}
	return &accountView{
		FullName:    info.FullName,
		Email:       info.Email,
		PhoneNumber: info.PhoneNumber,
	}
}

// AccountSignup validates the signup form and stores the account. Field
// failures come back as a field→message map; a failed signup stores
// nothing.
func AccountSignup(svc account.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var req account.SignupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		info, err := svc.Signup(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, viewOfAccount(info))
	}
}

// AccountSignOut clears the stored account.
func AccountSignOut(svc account.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		svc.SignOut(ctx)
		responses.WriteSuccess(w, map[string]bool{"signed_out": true})
	}
}

// AccountCurrent returns the signed-in account, or null.
func AccountCurrent(svc account.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}
		responses.WriteSuccess(w, viewOfAccount(svc.Current()))
	}
}
