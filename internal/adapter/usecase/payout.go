package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fundvault/internal/core/domain"
	"fundvault/internal/core/port"
)

// Payout releases a fully funded campaign's balance: the platform fee
// to the platform account and the remainder to the campaign owner.
//
// The paid-out flag is committed before any transfer is attempted, so a
// failed attempt can never be retried into a double payout. The cost of
// that ordering is that a transfer failure leaves the campaign marked
// paid but unpaid; the operation reports a transfer error and the
// condition needs operator intervention. The payout action is recorded
// only when both transfers succeed.
func (s *CampaignLedger) Payout(ctx context.Context, caller string, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNormalMode(); err != nil {
		return err
	}
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, c.Owner, s.platformOwner); err != nil {
		return err
	}
	if c.PaidOut {
		return fmt.Errorf("%w: campaign %d already paid out", domain.ErrState, id)
	}
	if !c.GoalReached() {
		return fmt.Errorf("%w: campaign %d collected %d of %d",
			domain.ErrState, id, c.AmountCollected, c.Target)
	}

	if err := s.repo.MarkPaidOut(ctx, id); err != nil {
		return err
	}

	tax := c.AmountCollected * s.taxPercent / 100
	net := c.AmountCollected - tax
	if net > 0 {
		if err := s.transfer(ctx, c.Owner, net); err != nil {
			return err
		}
	}
	if tax > 0 {
		if err := s.transfer(ctx, s.platformAccount, tax); err != nil {
			return err
		}
	}
	return s.record(ctx, id, domain.ActionPayout, caller)
}

// transfer instructs the gateway to move funds under a fresh
// idempotency reference and folds failures into the transfer error
// kind.
func (s *CampaignLedger) transfer(ctx context.Context, account string, amount int64) error {
	t := port.Transfer{Reference: uuid.NewString(), Account: account, Amount: amount}
	if err := s.gateway.Transfer(ctx, t); err != nil {
		return fmt.Errorf("%w: pay %d to %q: %v", domain.ErrTransfer, amount, account, err)
	}
	return nil
}
