package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/saikambala25/goat/pkg/config"
)

// CORS applies the configured origin policy. Credentials are allowed so the
// browser sends the session cookie cross-origin.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
