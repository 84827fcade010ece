package domain

import "time"

// Campaign represents a crowdfunding campaign holding donated funds in
// custody until payout or refund. Amounts are stored in integer minor
// units (e.g. cents).
type Campaign struct {
	ID              uint64
	Owner           string // opaque caller identity of the beneficiary
	Title           string
	Description     string
	Image           string
	Target          int64
	Deadline        time.Time
	AmountCollected int64
	PaidOut         bool
	Donations       []Donation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Donation is a single recorded contribution. Entries keep their
// insertion order; a refund zeroes Amount in place instead of removing
// the entry, so a refunded donation stays visible in the ledger.
type Donation struct {
	ID        int64
	Donor     string
	Amount    int64
	CreatedAt time.Time
}

// GoalReached reports whether the campaign collected enough to be paid out.
func (c *Campaign) GoalReached() bool {
	return c.AmountCollected >= c.Target
}

// Expired reports whether the campaign deadline has passed at the given time.
func (c *Campaign) Expired(now time.Time) bool {
	return !now.Before(c.Deadline)
}
