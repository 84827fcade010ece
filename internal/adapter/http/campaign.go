package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"fundvault/internal/core/domain"
	"fundvault/internal/core/port"
)

type campaignRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Target      int64     `json:"target"`
	Deadline    time.Time `json:"deadline"`
}

func (req campaignRequest) toPort() port.CampaignReq {
	return port.CampaignReq{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Target:      req.Target,
		Deadline:    req.Deadline,
	}
}

type campaignView struct {
	ID              uint64         `json:"id"`
	Owner           string         `json:"owner"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Image           string         `json:"image"`
	Target          int64          `json:"target"`
	Deadline        time.Time      `json:"deadline"`
	AmountCollected int64          `json:"amount_collected"`
	PaidOut         bool           `json:"paid_out"`
	Donations       []donationView `json:"donations"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func toCampaignView(c domain.Campaign) campaignView {
	return campaignView{
		ID:              c.ID,
		Owner:           c.Owner,
		Title:           c.Title,
		Description:     c.Description,
		Image:           c.Image,
		Target:          c.Target,
		Deadline:        c.Deadline,
		AmountCollected: c.AmountCollected,
		PaidOut:         c.PaidOut,
		Donations:       toDonationViews(c.Donations),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// handleCreateCampaign registers a new campaign owned by the caller.
// On success it returns HTTP 201 with the assigned id.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(r)
	if !ok {
		h.writeMissingCaller(w)
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := h.svc.CreateCampaign(r.Context(), owner, req.toPort())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

// handleListCampaigns returns all live campaigns in ascending id order.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]campaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, toCampaignView(c))
	}
	h.writeJSON(w, http.StatusOK, views)
}

// handleGetCampaign returns one campaign by id.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignView(*c))
}

// handleUpdateCampaign overwrites campaign fields before funding starts.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
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
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.UpdateCampaign(r.Context(), callerID, id, req.toPort()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCampaign refunds held funds and removes the campaign.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeleteCampaign(r.Context(), callerID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePayout releases a fully funded campaign's balance.
func (h *Handler) handlePayout(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.Payout(r.Context(), callerID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
