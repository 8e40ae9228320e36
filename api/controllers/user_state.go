package controllers

import (
	"net/http"

	"github.com/saikambala25/goat/api/middleware"
	"github.com/saikambala25/goat/api/responses"
	"github.com/saikambala25/goat/api/validators"
	"github.com/saikambala25/goat/internal/userstate"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
)

func UserStateGet(svc userstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "not authenticated"))
			return
		}

		state, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// UserStateSet applies a partial replacement of cart, wishlist and addresses.
func UserStateSet(svc userstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "not authenticated"))
			return
		}

		var body userstate.StateUpdate
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Set(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}
