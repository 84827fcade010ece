package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fundvault/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository with an
// in-process map. Ids come from a counter that only ever increases;
// deletion removes the entry without touching the counter, so a deleted
// id stays dead and can never alias a later campaign.
//
// Get and List return copies so callers never share slices with the
// store.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[uint64]*domain.Campaign
	nextID    uint64
	nextDonID int64
}

// NewCampaignRepository returns an empty store. The first assigned
// campaign id is 1.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{campaigns: make(map[uint64]*domain.Campaign)}
}

func (r *CampaignRepository) Create(_ context.Context, c domain.Campaign) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.campaigns[c.ID] = &c
	return c.ID, nil
}

func (r *CampaignRepository) Get(_ context.Context, id uint64) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Donations = append([]domain.Donation(nil), c.Donations...)
	return &cp, nil
}

func (r *CampaignRepository) Update(_ context.Context, c domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.campaigns[c.ID]
	if !ok {
		return fmt.Errorf("update: campaign %d not in store", c.ID)
	}
	cur.Title = c.Title
	cur.Description = c.Description
	cur.Image = c.Image
	cur.Target = c.Target
	cur.Deadline = c.Deadline
	cur.PaidOut = c.PaidOut
	cur.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *CampaignRepository) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[id]; !ok {
		return fmt.Errorf("delete: campaign %d not in store", id)
	}
	delete(r.campaigns, id)
	return nil
}

func (r *CampaignRepository) List(_ context.Context) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		cp := *c
		cp.Donations = append([]domain.Donation(nil), c.Donations...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CampaignRepository) AddDonation(_ context.Context, campaignID uint64, d domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[campaignID]
	if !ok {
		return fmt.Errorf("add donation: campaign %d not in store", campaignID)
	}
	r.nextDonID++
	d.ID = r.nextDonID
	c.Donations = append(c.Donations, d)
	c.AmountCollected += d.Amount
	return nil
}

func (r *CampaignRepository) MarkPaidOut(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return fmt.Errorf("mark paid out: campaign %d not in store", id)
	}
	c.PaidOut = true
	return nil
}

func (r *CampaignRepository) ZeroDonation(_ context.Context, campaignID uint64, donationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[campaignID]
	if !ok {
		return fmt.Errorf("zero donation: campaign %d not in store", campaignID)
	}
	for i := range c.Donations {
		if c.Donations[i].ID == donationID {
			c.Donations[i].Amount = 0
			return nil
		}
	}
	return fmt.Errorf("zero donation: donation %d not in campaign %d", donationID, campaignID)
}

func (r *CampaignRepository) ResetCollected(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return fmt.Errorf("reset collected: campaign %d not in store", id)
	}
	c.AmountCollected = 0
	return nil
}
