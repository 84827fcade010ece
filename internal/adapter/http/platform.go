package httpadapter

import (
	"encoding/json"
	"net/http"
)

type taxRequest struct {
	Percent int64 `json:"percent"`
}

type refundRangeRequest struct {
	StartID uint64 `json:"start_id"`
	EndID   uint64 `json:"end_id"`
}

// handleSetTax stores the platform fee percentage. Platform owner only.
func (h *Handler) handleSetTax(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	var req taxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.SetTax(r.Context(), callerID, req.Percent); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHaltDeadline force-expires a campaign's deadline. Platform
// owner only.
func (h *Handler) handleHaltDeadline(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	if err := h.svc.HaltDeadline(r.Context(), callerID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleEmergency flips the platform-wide emergency flag and
// returns the new state. Platform owner only.
func (h *Handler) handleToggleEmergency(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	state, err := h.svc.ToggleEmergency(r.Context(), callerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"emergency": state})
}

// handleEmergencyRefund mass-refunds every campaign in the inclusive id
// range. Platform owner only, emergency mode only.
func (h *Handler) handleEmergencyRefund(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	var req refundRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.EmergencyRefundRange(r.Context(), callerID, req.StartID, req.EndID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
