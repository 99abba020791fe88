package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/api/request"
	"github.com/mcoot/gamevault/internal/api/response"
	"github.com/mcoot/gamevault/internal/middleware"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/token"
)

// AuthHandler handles login
type AuthHandler struct {
	authService  *auth.Service
	tokenService *token.Service
	errs         *apierr.Writer
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, tokenService *token.Service, errs *apierr.Writer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		errs:         errs,
		logger:       logger,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("failed login",
				slog.String("username", req.Username),
				slog.String("client_ip", middleware.ClientIP(r)),
			)
		}
		h.errs.Write(w, r, err)
		return
	}

	signed, claims, err := h.tokenService.Issue(user)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", string(user.ID)))

	response.JSON(w, http.StatusOK, response.LoginResponse{
		Token:     signed,
		Message:   "Login successful",
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	})
}
