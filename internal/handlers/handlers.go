// Package handlers exposes the entity operations over JSON HTTP. Handlers are
// thin: decode, call the operation module, map faults to status codes.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Harshverma1208/smartech/internal/httpx"
)

// pathID parses the {id} route segment. Writes a 400 and returns false on bad
// input.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// decodeBody parses the JSON request body into dst. Writes a 400 and returns
// false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}
