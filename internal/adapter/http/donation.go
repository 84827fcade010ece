package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"fundvault/internal/core/domain"
)

type donateRequest struct {
	Amount int64 `json:"amount"`
}

type donationView struct {
	Donor     string    `json:"donor"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func toDonationViews(ds []domain.Donation) []donationView {
	views := make([]donationView, 0, len(ds))
	for _, d := range ds {
		views = append(views, donationView{Donor: d.Donor, Amount: d.Amount, CreatedAt: d.CreatedAt})
	}
	return views
}

// handleDonate records a contribution from the caller. The donation is
// accepted in full or rejected in full.
func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	donor, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.Donate(r.Context(), donor, id, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleListDonations returns the campaign's donation entries in
// arrival order. Refunded entries stay listed with a zero amount.
func (h *Handler) handleListDonations(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	donations, err := h.svc.Donations(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDonationViews(donations))
}
