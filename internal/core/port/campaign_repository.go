package port

import (
	"context"

	"fundvault/internal/core/domain"
)

// CampaignRepository defines the keyed campaign store. It is an
// outbound port in hexagonal architecture. Ids are assigned by the
// store, increase monotonically and are never reused, so a deleted id
// reads as absent rather than as a zero-valued record.
//
// Methods that touch more than one row (AddDonation) must apply their
// changes atomically. The usecase serializes operations, so
// implementations do not need to guard against interleaved
// read-modify-write cycles beyond that.
type CampaignRepository interface {
	// Create stores a new campaign and returns its assigned id.
	Create(ctx context.Context, c domain.Campaign) (uint64, error)
	// Get returns the campaign with its donations, or nil when the id
	// has no live campaign.
	Get(ctx context.Context, id uint64) (*domain.Campaign, error)
	// Update overwrites the campaign's mutable fields (title,
	// description, image, target, deadline, paid-out flag, updated-at).
	Update(ctx context.Context, c domain.Campaign) error
	// Delete removes the campaign and its donation entries.
	Delete(ctx context.Context, id uint64) error
	// List returns all live campaigns with donations, ascending by id.
	List(ctx context.Context) ([]domain.Campaign, error)

	// AddDonation appends a donation entry and increases the collected
	// amount by the donation value in one atomic step.
	AddDonation(ctx context.Context, campaignID uint64, d domain.Donation) error
	// MarkPaidOut sets the paid-out flag.
	MarkPaidOut(ctx context.Context, id uint64) error
	// ZeroDonation sets a single donation entry's amount to zero.
	ZeroDonation(ctx context.Context, campaignID uint64, donationID int64) error
	// ResetCollected sets the campaign's collected amount to zero.
	ResetCollected(ctx context.Context, id uint64) error
}

// ActionLog records the audit trail of successful mutating operations.
type ActionLog interface {
	Append(ctx context.Context, a domain.Action) error
	// List returns records newest first. A nil campaignID returns
	// records for all campaigns. limit <= 0 means no limit.
	List(ctx context.Context, campaignID *uint64, limit int) ([]domain.Action, error)
}
