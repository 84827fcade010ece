package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"fundvault/internal/core/domain"
)

type actionView struct {
	ID         int64     `json:"id"`
	CampaignID uint64    `json:"campaign_id"`
	Type       string    `json:"type"`
	Executor   string    `json:"executor"`
	CreatedAt  time.Time `json:"created_at"`
}

// handleListActions returns audit records, newest first. It accepts
// optional `campaign_id` and `limit` query parameters. Invalid
// parameters result in HTTP 400.
func (h *Handler) handleListActions(w http.ResponseWriter, r *http.Request) {
	var (
		q          = r.URL.Query()
		campaignID *uint64
		limit      int
	)

	if cid := q.Get("campaign_id"); cid != "" {
		id, err := strconv.ParseUint(cid, 10, 64)
		if err != nil {
			http.Error(w, "invalid campaign_id", http.StatusBadRequest)
			return
		}
		campaignID = &id
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	actions, err := h.svc.Actions(r.Context(), campaignID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]actionView, 0, len(actions))
	for _, a := range actions {
		views = append(views, toActionView(a))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func toActionView(a domain.Action) actionView {
	return actionView{
		ID:         a.ID,
		CampaignID: a.CampaignID,
		Type:       string(a.Type),
		Executor:   a.Executor,
		CreatedAt:  a.CreatedAt,
	}
}
