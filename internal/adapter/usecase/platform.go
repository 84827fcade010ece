package usecase

import (
	"context"
	"fmt"

	"fundvault/internal/core/domain"
)

// SetTax stores the platform fee percentage applied on payout. Not
// gated by emergency mode: adjusting the fee is platform governance,
// not fund movement.
func (s *CampaignLedger) SetTax(ctx context.Context, caller string, percent int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platformOnly(caller); err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: tax percent %d out of range 0-100", domain.ErrValidation, percent)
	}
	s.taxPercent = percent
	return s.record(ctx, 0, domain.ActionSetTax, caller)
}

// HaltDeadline force-expires a campaign's deadline, freezing further
// donations without deleting the campaign.
func (s *CampaignLedger) HaltDeadline(ctx context.Context, caller string, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platformOnly(caller); err != nil {
		return err
	}
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	c.Deadline = now
	c.UpdatedAt = now
	if err := s.repo.Update(ctx, *c); err != nil {
		return err
	}
	return s.record(ctx, id, domain.ActionHaltDeadline, caller)
}

// ToggleEmergency flips the platform-wide emergency flag and returns
// the new state. While the flag is set, create, update, donate, payout
// and delete are all blocked and only the mass refund and read-only
// queries are allowed.
func (s *CampaignLedger) ToggleEmergency(ctx context.Context, caller string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platformOnly(caller); err != nil {
		return false, err
	}
	s.emergency = !s.emergency
	t := domain.ActionEmergencyOff
	if s.emergency {
		t = domain.ActionEmergencyOn
	}
	if err := s.record(ctx, 0, t, caller); err != nil {
		return s.emergency, err
	}
	return s.emergency, nil
}
