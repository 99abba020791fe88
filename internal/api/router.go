package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/api/handler"
	"github.com/mcoot/gamevault/internal/api/middleware"
	"github.com/mcoot/gamevault/internal/dependencies/clock"
	sharedmw "github.com/mcoot/gamevault/internal/middleware"
	"github.com/mcoot/gamevault/internal/ratelimit"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/games"
	"github.com/mcoot/gamevault/internal/services/search"
	"github.com/mcoot/gamevault/internal/services/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	// Production hides internal error details from responses
	Production bool
	// FrontendURL is the only origin allowed to make cross-origin requests
	FrontendURL string

	Clock         clock.Clock
	Limiter       ratelimit.Limiter
	AuthService   *auth.Service
	TokenService  *token.Service
	GamesService  *games.Service
	SearchService *search.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	errs := apierr.NewWriter(cfg.Logger, cfg.Production)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.TokenService, errs, cfg.Logger)
	gamesHandler := handler.NewGamesHandler(cfg.GamesService, cfg.SearchService, errs)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.TokenService, errs, cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Game routes. Fixed paths are registered before /{id} so they are not taken as ids.
	gamesRoutes := api.PathPrefix("/games").Subrouter()
	gamesRoutes.HandleFunc("/search", gamesHandler.Search).Methods(http.MethodGet)
	gamesRoutes.HandleFunc("/custom", gamesHandler.ListCustom).Methods(http.MethodGet)
	gamesRoutes.HandleFunc("/{id}", gamesHandler.Get).Methods(http.MethodGet)

	// Protected game routes
	gamesRoutes.Handle("", authMiddleware(http.HandlerFunc(gamesHandler.Create))).Methods(http.MethodPost)

	// Status routes (no auth)
	api.HandleFunc("/status", handler.Status).Methods(http.MethodGet)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		errs.Write(w, req, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		errs.Write(w, req, apierr.NewMethodNotAllowedError())
	})

	// mux only runs Use middleware for matched routes, so the outer chain wraps the router itself
	var h http.Handler = r
	h = apiOnly(middleware.RateLimit(cfg.Limiter, cfg.Clock, errs, cfg.Logger), h)
	h = middleware.CORS(cfg.FrontendURL)(h)
	h = middleware.SecurityHeaders(h)
	h = sharedmw.Logging(cfg.Logger)(h)
	h = middleware.Recovery(cfg.Logger)(h)
	return h
}

// apiOnly applies mw to requests under /api/ and passes everything else straight to next
func apiOnly(mw func(http.Handler) http.Handler, next http.Handler) http.Handler {
	wrapped := mw(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			wrapped.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
