package middleware

import (
	"context"
	"net/http"

	"github.com/saikambala25/goat/api/responses"
	pkgAuth "github.com/saikambala25/goat/pkg/auth"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
)

// Auth reads the session cookie, verifies it and seeds the request context
// with the caller's id.
func Auth(verifier pkgAuth.TokenSigner, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := pkgAuth.SessionTokenFromRequest(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "not authenticated"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidSession, err, "invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
