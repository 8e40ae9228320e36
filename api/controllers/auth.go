package controllers

import (
	"net/http"

	"github.com/saikambala25/goat/api/middleware"
	"github.com/saikambala25/goat/api/responses"
	"github.com/saikambala25/goat/api/validators"
	"github.com/saikambala25/goat/internal/auth"
	pkgAuth "github.com/saikambala25/goat/pkg/auth"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
)

// AuthRegister creates an account and starts a session for it.
func AuthRegister(svc auth.Service, secureCookies bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.IssueSession(r.Context(), user.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetSessionCookie(w, session.Token, session.ExpiresAt, secureCookies)
		responses.WriteSuccessStatus(w, http.StatusCreated, auth.UserResponse{User: user})
	}
}

// AuthLogin checks credentials and sets a fresh session cookie.
func AuthLogin(svc auth.Service, secureCookies bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Authenticate(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.IssueSession(r.Context(), user.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetSessionCookie(w, session.Token, session.ExpiresAt, secureCookies)
		responses.WriteSuccess(w, auth.UserResponse{User: user})
	}
}

// AuthMe re-reads the caller from the store so renamed or deleted accounts
// are reflected immediately.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "not authenticated"))
			return
		}

		user, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, auth.UserResponse{User: user})
	}
}

// AuthLogout clears the session cookie. Tokens are stateless, so nothing is
// revoked server side.
func AuthLogout(secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgAuth.ClearSessionCookie(w, secureCookies)
		responses.WriteSuccess(w, map[string]string{"message": "Logged out"})
	}
}
