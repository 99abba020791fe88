package handler

import (
	"net/http"

	"github.com/mcoot/gamevault/internal/api/response"
)

// Status handles GET /api/status
func Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "gamevault API is running"})
}

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
