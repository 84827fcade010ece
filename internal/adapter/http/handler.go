package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundvault/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter
// for HTTP. It holds a CampaignLedger to execute business logic and a
// logger for structured logging. Routes are registered on a chi.Router
// for convenient method handling.
//
// Caller identity arrives as the opaque X-Caller-Id header, injected by
// the authentication layer in front of this service.
type Handler struct {
	svc    port.CampaignLedger
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// CampaignLedger implementation and a logger. The returned Handler
// registers handlers for each endpoint on a new chi.Router.
func NewHandler(svc port.CampaignLedger, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Put("/campaigns/{id}", h.handleUpdateCampaign)
		r.Delete("/campaigns/{id}", h.handleDeleteCampaign)

		r.Post("/campaigns/{id}/donations", h.handleDonate)
		r.Get("/campaigns/{id}/donations", h.handleListDonations)
		r.Post("/campaigns/{id}/payout", h.handlePayout)
		r.Post("/campaigns/{id}/halt-deadline", h.handleHaltDeadline)

		r.Put("/platform/tax", h.handleSetTax)
		r.Post("/platform/emergency", h.handleToggleEmergency)
		r.Post("/platform/emergency/refunds", h.handleEmergencyRefund)

		r.Get("/actions", h.handleListActions)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
