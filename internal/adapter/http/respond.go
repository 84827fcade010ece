package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fundvault/internal/core/domain"
)

// errorResponse carries a human-readable message plus a stable kind so
// calling systems can branch on cause instead of parsing text.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// caller extracts the opaque caller identity from the request. The
// second return value is false when no identity was supplied.
func caller(r *http.Request) (string, bool) {
	id := r.Header.Get("X-Caller-Id")
	return id, id != ""
}

// campaignID parses the {id} path parameter.
func campaignID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged and reported as a generic 500 without leaking
// detail.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		status int
		kind   string
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrLowAmount):
		status, kind = http.StatusBadRequest, "low_amount"
	case errors.Is(err, domain.ErrUnauthorized):
		status, kind = http.StatusForbidden, "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrState):
		status, kind = http.StatusConflict, "state"
	case errors.Is(err, domain.ErrDeadline):
		status, kind = http.StatusConflict, "deadline"
	case errors.Is(err, domain.ErrTargetExceeded):
		status, kind = http.StatusConflict, "target_exceeded"
	case errors.Is(err, domain.ErrEmergencyMode):
		status, kind = http.StatusServiceUnavailable, "emergency_mode"
	case errors.Is(err, domain.ErrTransfer):
		status, kind = http.StatusBadGateway, "transfer"
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func (h *Handler) writeMissingCaller(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing caller identity", Kind: "unauthenticated"})
}
