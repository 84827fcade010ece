package usecase

import (
	"context"
	"fmt"

	"fundvault/internal/core/domain"
)

// refundAll returns every still-held donation to its donor. Each entry
// is zeroed immediately after its transfer succeeds, so an interrupted
// refund can be re-run and skips entries already returned. Applying it
// to an already refunded campaign performs no transfers. Must be called
// with the mutex held.
func (s *CampaignLedger) refundAll(ctx context.Context, c *domain.Campaign) error {
	// a paid-out campaign's balance already went to the owner and the
	// platform; nothing remains in custody for donors
	if c.PaidOut {
		return nil
	}
	for i := range c.Donations {
		d := &c.Donations[i]
		if d.Amount == 0 {
			continue
		}
		if err := s.transfer(ctx, d.Donor, d.Amount); err != nil {
			return err
		}
		if err := s.repo.ZeroDonation(ctx, c.ID, d.ID); err != nil {
			return err
		}
		d.Amount = 0
	}
	if err := s.repo.ResetCollected(ctx, c.ID); err != nil {
		return err
	}
	c.AmountCollected = 0
	return nil
}

// EmergencyRefundRange refunds every campaign with an id in the
// inclusive range. Only the platform owner may run it, and only while
// the emergency flag is set. The call stops at the first id with no
// live campaign; refunds performed for earlier ids stand, and
// re-running the corrected range is safe because refunds are
// idempotent.
func (s *CampaignLedger) EmergencyRefundRange(ctx context.Context, caller string, startID, endID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platformOnly(caller); err != nil {
		return err
	}
	if !s.emergency {
		return fmt.Errorf("%w: mass refund requires emergency mode", domain.ErrEmergencyMode)
	}
	if startID > endID {
		return fmt.Errorf("%w: start id %d after end id %d", domain.ErrValidation, startID, endID)
	}

	for id := startID; id <= endID; id++ {
		c, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.refundAll(ctx, c); err != nil {
			return err
		}
		if err := s.record(ctx, id, domain.ActionRefund, caller); err != nil {
			return err
		}
	}
	return nil
}
