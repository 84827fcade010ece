package usecase

import (
	"context"
	"fmt"

	"fundvault/internal/core/domain"
)

// Donate appends a contribution from the donor to the campaign. The
// acceptance policy is all-or-nothing: a donation that would push the
// collected amount past the target is rejected in full, never trimmed
// to the portion that fits.
func (s *CampaignLedger) Donate(ctx context.Context, donor string, id uint64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNormalMode(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrLowAmount, amount)
	}
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if c.PaidOut {
		return fmt.Errorf("%w: campaign %d already paid out", domain.ErrState, id)
	}
	if c.Expired(s.now()) {
		return fmt.Errorf("%w: campaign %d", domain.ErrDeadline, id)
	}
	// compare against the remaining headroom rather than summing, so a
	// huge amount cannot wrap past the target
	if amount > c.Target-c.AmountCollected {
		return fmt.Errorf("%w: %d collected, %d offered, %d target",
			domain.ErrTargetExceeded, c.AmountCollected, amount, c.Target)
	}

	d := domain.Donation{Donor: donor, Amount: amount, CreatedAt: s.now()}
	if err := s.repo.AddDonation(ctx, id, d); err != nil {
		return err
	}
	return s.record(ctx, id, domain.ActionDonate, donor)
}

// Donations returns the campaign's donation entries in arrival order.
// Refunded entries remain listed with a zero amount.
func (s *CampaignLedger) Donations(ctx context.Context, id uint64) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Donations, nil
}
