// Package handler contains the JSON HTTP handlers. Handlers decode and
// validate request shape, delegate to services and translate fault kinds
// into status codes.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"homeledger/internal/fault"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps a fault kind to its status code. Anything that is not
// a fault is an internal error and gets logged with full detail but
// reported generically.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	kind, ok := fault.KindOf(err)
	if !ok {
		logger.Error("internal error", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindForbidden:
		status = http.StatusForbidden
	}
	writeErrorMessage(w, status, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fault.Invalid("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.Invalid("invalid %s", name)
	}
	return id, nil
}
