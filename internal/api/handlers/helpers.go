package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mission-feasibility-service/internal/domain"
	"mission-feasibility-service/internal/ports"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeRawJSON(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("write failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain error kinds to HTTP statuses. Unknown errors
// are logged and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, lg *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrReferenceDataNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrReportNotFound):
		writeError(w, r, http.StatusNotFound, "report not found")
	default:
		lg.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
