package usecase

import (
	"context"
	"fmt"

	"fundvault/internal/core/domain"
	"fundvault/internal/core/port"
)

// CreateCampaign validates the fields and stores a fresh campaign owned
// by the caller. Ids are assigned by the store, monotonically and never
// reused, so deleting a campaign cannot alias a later one.
func (s *CampaignLedger) CreateCampaign(ctx context.Context, caller string, req port.CampaignReq) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNormalMode(); err != nil {
		return 0, err
	}
	now := s.now()
	if err := validate(req, now); err != nil {
		return 0, err
	}

	c := domain.Campaign{
		Owner:       caller,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Target:      req.Target,
		Deadline:    req.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return 0, err
	}
	if err := s.record(ctx, id, domain.ActionCreate, caller); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCampaign overwrites the campaign fields. Updates are only
// allowed before any donation has arrived; once funds are held the
// terms are frozen. The paid-out flag is reset along with the fields.
func (s *CampaignLedger) UpdateCampaign(ctx context.Context, caller string, id uint64, req port.CampaignReq) error {
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
	if c.AmountCollected != 0 {
		return fmt.Errorf("%w: campaign %d already holds donations", domain.ErrState, id)
	}
	now := s.now()
	if err := validate(req, now); err != nil {
		return err
	}

	c.Title = req.Title
	c.Description = req.Description
	c.Image = req.Image
	c.Target = req.Target
	c.Deadline = req.Deadline
	c.PaidOut = false
	c.UpdatedAt = now
	if err := s.repo.Update(ctx, *c); err != nil {
		return err
	}
	return s.record(ctx, id, domain.ActionUpdate, caller)
}

// DeleteCampaign returns any held funds to their donors, then removes
// the campaign. Its id is never handed out again.
func (s *CampaignLedger) DeleteCampaign(ctx context.Context, caller string, id uint64) error {
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
	if c.AmountCollected > 0 {
		if err := s.refundAll(ctx, c); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.record(ctx, id, domain.ActionDelete, caller)
}

// GetCampaign returns a single campaign by id.
func (s *CampaignLedger) GetCampaign(ctx context.Context, id uint64) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, id)
}

// ListCampaigns returns all live campaigns in ascending id order.
func (s *CampaignLedger) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(ctx)
}
