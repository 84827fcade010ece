package domain

import "time"

// ActionType identifies a mutating operation in the audit log.
type ActionType string

const (
	ActionCreate       ActionType = "create"
	ActionUpdate       ActionType = "update"
	ActionDonate       ActionType = "donate"
	ActionPayout       ActionType = "payout"
	ActionDelete       ActionType = "delete"
	ActionRefund       ActionType = "refund"
	ActionSetTax       ActionType = "set_tax"
	ActionHaltDeadline ActionType = "halt_deadline"
	ActionEmergencyOn  ActionType = "emergency_on"
	ActionEmergencyOff ActionType = "emergency_off"
)

// Action is an append-only audit record emitted exactly once per
// successful mutating operation. Emergency toggles use CampaignID 0;
// the new flag state is carried by the action type.
type Action struct {
	ID         int64
	CampaignID uint64
	Type       ActionType
	Executor   string
	CreatedAt  time.Time
}
