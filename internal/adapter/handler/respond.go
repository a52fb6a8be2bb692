package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tripnest/server/pkg/apperrors"
)

// intQuery reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the error taxonomy onto HTTP statuses so clients can tell
// a missing resource from a conflicting state.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeConflict:
		status = http.StatusConflict
	case apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.CodeUpstream:
		status = http.StatusBadGateway
	}

	message := err.Error()
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		message = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": message})
}
