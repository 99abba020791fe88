// Package apierr maps domain errors to HTTP error responses.
package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/gamevault/internal/dependencies/catalog"
	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/token"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detail carries the underlying error outside production
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// Writer writes error responses and logs the ones that indicate a fault on our side
type Writer struct {
	logger     *slog.Logger
	production bool
}

// NewWriter creates a Writer. In production, internal error details are left out of responses.
func NewWriter(logger *slog.Logger, production bool) *Writer {
	return &Writer{logger: logger, production: production}
}

// Write writes an error response for err
func (ew *Writer) Write(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)
	apiError := he.apiError

	if he.status >= http.StatusInternalServerError {
		ew.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", he.status),
			slog.String("error", err.Error()),
		)
		if !ew.production && apiError.Detail == "" {
			apiError.Detail = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: apiError.Message, Error: apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{Code: CodeValidation, Message: ve.Error()}}
	}

	var ue *catalog.UpstreamError
	if errors.As(err, &ue) {
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeUpstreamError, Message: "External catalog request failed"}}
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeUsernameExists, Message: "Username already exists"}}
	case errors.Is(err, model.ErrOwnerNotFound):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "User no longer exists"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
	case errors.Is(err, token.ErrMissingToken):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Access denied: no token provided"}}
	case errors.Is(err, token.ErrExpired):
		return &httpError{http.StatusForbidden, APIError{Code: CodeTokenExpired, Message: "Token expired"}}
	case errors.Is(err, token.ErrInvalidSignature), errors.Is(err, token.ErrInvalidToken):
		return &httpError{http.StatusForbidden, APIError{Code: CodeInvalidToken, Message: "Invalid token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{Code: CodeNotFound, Message: "Route not found"}}
}

// NewMethodNotAllowedError creates an error for a known route called with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{Code: CodeMethodNotAllowed, Message: "Method not allowed"}}
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{Code: CodeRateLimited, Message: "Too many requests, please try again later"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
