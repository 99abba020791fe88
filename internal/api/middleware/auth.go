package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/middleware"
	"github.com/mcoot/gamevault/internal/services/token"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Auth creates middleware that rejects requests without a valid bearer token.
// On success the token's claims are available through GetClaims.
func Auth(tokens *token.Service, errs *apierr.Writer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Verify(extractToken(r))
			if err != nil {
				logger.Warn("token rejected",
					slog.String("client_ip", middleware.ClientIP(r)),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				errs.Write(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken returns the bearer token from the Authorization header, or ""
func extractToken(r *http.Request) string {
	scheme, credentials, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(credentials)
}

// GetClaims returns the verified token claims from the request context
func GetClaims(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*token.Claims)
	return claims
}

// MustGetClaims returns the verified token claims or panics
func MustGetClaims(ctx context.Context) *token.Claims {
	claims := GetClaims(ctx)
	if claims == nil {
		panic("no claims in context - auth middleware not applied?")
	}
	return claims
}
