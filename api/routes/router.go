package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saikambala25/goat/api/controllers"
	"github.com/saikambala25/goat/api/middleware"
	"github.com/saikambala25/goat/api/responses"
	"github.com/saikambala25/goat/internal/auth"
	"github.com/saikambala25/goat/internal/livestock"
	"github.com/saikambala25/goat/internal/orders"
	"github.com/saikambala25/goat/internal/userstate"
	pkgAuth "github.com/saikambala25/goat/pkg/auth"
	"github.com/saikambala25/goat/pkg/config"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
	"github.com/saikambala25/goat/pkg/metrics"
)

// Dependencies are the handles cmd/api builds and hands to the router.
// RateLimiter, Redis and Metrics may be nil.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       controllers.Pinger
	RateLimiter middleware.RateLimitStore
	Signer      pkgAuth.TokenSigner
	Metrics     *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	AuthService      auth.Service
	UserStateService userstate.Service
	LivestockService livestock.Service
	OrdersService    orders.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	secureCookies := cfg.App.IsProd()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	).WithTrustedProxies(cfg.AuthRateLimit.TrustedProxyNets)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	).WithTrustedProxies(cfg.AuthRateLimit.TrustedProxyNets)
	requireSession := middleware.Auth(deps.Signer, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).
				Post("/register", controllers.AuthRegister(deps.AuthService, secureCookies, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
				Post("/login", controllers.AuthLogin(deps.AuthService, secureCookies, logg))
			r.With(requireSession).Get("/me", controllers.AuthMe(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(secureCookies))
		})

		r.Route("/user/state", func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/", controllers.UserStateGet(deps.UserStateService, logg))
			r.Put("/", controllers.UserStateSet(deps.UserStateService, logg))
		})

		r.Route("/livestock", func(r chi.Router) {
			r.Get("/", controllers.LivestockList(deps.LivestockService, logg))
			r.Post("/", controllers.LivestockCreate(deps.LivestockService, logg))
			r.Get("/{id}", controllers.LivestockGet(deps.LivestockService, logg))
			r.Delete("/{id}", controllers.LivestockDelete(deps.LivestockService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(requireSession).Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.With(requireSession).Post("/", controllers.OrdersCreate(deps.OrdersService, logg))
			r.Put("/{id}", controllers.OrdersUpdateStatus(deps.OrdersService, logg))
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
		})
	})

	if cfg.App.StaticDir != "" {
		r.Get("/*", controllers.Static(cfg.App.StaticDir))
	}

	return r
}
