package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gamevault/internal/api/apierr"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}
