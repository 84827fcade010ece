package port

import (
	"context"
	"time"

	"fundvault/internal/core/domain"
)

// CampaignLedger defines the business operations of the fund-custody
// ledger. This interface is the primary port into the application
// domain; the HTTP adapter and the operator CLI both drive it.
//
// Mutating operations are atomic: either every state change is applied
// or none is, with one documented exception inside Payout. Each
// rejection is reported with one of the domain sentinel errors so
// callers can branch on cause.
type CampaignLedger interface {
	// CreateCampaign validates the fields, assigns the next id and
	// stores the campaign with nothing collected. The caller becomes
	// the owner. Blocked in emergency mode.
	CreateCampaign(ctx context.Context, caller string, req CampaignReq) (uint64, error)

	// UpdateCampaign overwrites the campaign fields and resets the
	// paid-out flag. Only the owner or the platform owner may update,
	// and only while nothing has been donated yet.
	UpdateCampaign(ctx context.Context, caller string, id uint64, req CampaignReq) error

	// DeleteCampaign refunds any collected funds, then removes the
	// campaign. Only the owner or the platform owner may delete.
	DeleteCampaign(ctx context.Context, caller string, id uint64) error

	// GetCampaign returns a single campaign by id.
	GetCampaign(ctx context.Context, id uint64) (*domain.Campaign, error)

	// ListCampaigns returns all live campaigns in ascending id order.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// Donate appends a contribution from the caller. The donation is
	// accepted in full or rejected in full; it may never push the
	// collected amount past the target.
	Donate(ctx context.Context, donor string, id uint64, amount int64) error

	// Donations returns the campaign's donation entries in arrival
	// order, refunded entries included with a zero amount.
	Donations(ctx context.Context, id uint64) ([]domain.Donation, error)

	// Payout releases a fully funded campaign's balance: the platform
	// fee to the platform account, the rest to the owner. The paid-out
	// flag is committed before the transfers are attempted, so a
	// transfer failure leaves the campaign marked paid but unpaid and
	// requires operator intervention.
	Payout(ctx context.Context, caller string, id uint64) error

	// SetTax stores the platform fee percentage (0-100) applied on
	// payout. Platform owner only.
	SetTax(ctx context.Context, caller string, percent int64) error

	// HaltDeadline force-expires a campaign's deadline, freezing
	// further donations without deleting it. Platform owner only.
	HaltDeadline(ctx context.Context, caller string, id uint64) error

	// ToggleEmergency flips the platform-wide emergency flag and
	// returns the new state. Platform owner only.
	ToggleEmergency(ctx context.Context, caller string) (bool, error)

	// EmergencyRefundRange refunds every campaign with an id in the
	// inclusive range. Platform owner only, and only while the
	// emergency flag is set. The call stops at the first id with no
	// live campaign; refunds already performed stand.
	EmergencyRefundRange(ctx context.Context, caller string, startID, endID uint64) error

	// Actions returns audit records, newest first, optionally filtered
	// by campaign id.
	Actions(ctx context.Context, campaignID *uint64, limit int) ([]domain.Action, error)
}

// CampaignReq carries the caller-supplied campaign fields for create and
// update. It is a DTO used by the transport layer and holds no domain
// behaviour.
type CampaignReq struct {
	Title       string
	Description string
	Image       string
	Target      int64
	Deadline    time.Time
}
