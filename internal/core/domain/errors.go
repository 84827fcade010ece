package domain

import "errors"

// Sentinel errors for every way an operation can be rejected. Callers
// branch on cause with errors.Is; operations wrap these with detail via
// fmt.Errorf("%w: ...").
var (
	// ErrValidation rejects empty text fields, a zero target or a
	// deadline that is not strictly in the future.
	ErrValidation = errors.New("invalid campaign data")
	// ErrState rejects operations the campaign lifecycle forbids:
	// update after funding started, payout of an already paid-out
	// campaign.
	ErrState = errors.New("operation not allowed in current state")
	// ErrLowAmount rejects donations of zero or negative value.
	ErrLowAmount = errors.New("donation amount must be positive")
	// ErrDeadline rejects donations after the campaign deadline.
	ErrDeadline = errors.New("campaign deadline has passed")
	// ErrTargetExceeded rejects a donation that would push the
	// collected amount past the target. The donation is rejected in
	// full, never partially accepted.
	ErrTargetExceeded = errors.New("donation would exceed campaign target")
	// ErrUnauthorized rejects callers that are neither the campaign
	// owner nor the platform owner.
	ErrUnauthorized = errors.New("caller not authorized")
	// ErrNotFound is returned for ids with no live campaign.
	ErrNotFound = errors.New("campaign not found")
	// ErrEmergencyMode rejects normal operations while the platform is
	// in emergency mode, and the mass refund while it is not.
	ErrEmergencyMode = errors.New("operation disallowed in current emergency state")
	// ErrTransfer reports a failed external fund transfer.
	ErrTransfer = errors.New("fund transfer failed")
)
