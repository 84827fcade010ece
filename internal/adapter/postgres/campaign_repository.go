package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundvault/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository using pgxpool
// for PostgreSQL. Campaign ids come from a bigserial sequence, so they
// increase monotonically and are never reused after deletion.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create stores a new campaign and returns the id assigned by the
// database sequence.
func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign) (uint64, error) {
	var id uint64
	err := r.pool.QueryRow(ctx, `INSERT INTO campaigns
    (owner, title, description, image, target, deadline, amount_collected, paid_out, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,0,false,$7,$8) RETURNING id`,
		c.Owner, c.Title, c.Description, c.Image, c.Target, c.Deadline, c.CreatedAt, c.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns a campaign with its donations, or nil when the id has no
// live campaign.
func (r *CampaignRepository) Get(ctx context.Context, id uint64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, `SELECT id, owner, title, description, image, target, deadline,
    amount_collected, paid_out, created_at, updated_at FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Owner, &c.Title, &c.Description, &c.Image, &c.Target, &c.Deadline,
			&c.AmountCollected, &c.PaidOut, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Donations, err = r.donations(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) donations(ctx context.Context, campaignID uint64) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, donor, amount, created_at
FROM donations WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Donation, error) {
		var d domain.Donation
		err := row.Scan(&d.ID, &d.Donor, &d.Amount, &d.CreatedAt)
		return d, err
	})
}

// Update overwrites the campaign's mutable fields.
func (r *CampaignRepository) Update(ctx context.Context, c domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET title = $1, description = $2, image = $3,
    target = $4, deadline = $5, paid_out = $6, updated_at = $7 WHERE id = $8`,
		c.Title, c.Description, c.Image, c.Target, c.Deadline, c.PaidOut, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update: campaign %d not in store", c.ID)
	}
	return nil
}

// Delete removes the campaign; donation rows go with it via the foreign
// key cascade.
func (r *CampaignRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete: campaign %d not in store", id)
	}
	return nil
}

// List returns all live campaigns with their donations, ascending by id.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, owner, title, description, image, target, deadline,
    amount_collected, paid_out, created_at, updated_at FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.Owner, &c.Title, &c.Description, &c.Image, &c.Target, &c.Deadline,
			&c.AmountCollected, &c.PaidOut, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, err
	}

	donRows, err := r.pool.Query(ctx, `SELECT id, campaign_id, donor, amount, created_at
FROM donations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	type donRow struct {
		d          domain.Donation
		campaignID uint64
	}
	dons, err := pgx.CollectRows(donRows, func(row pgx.CollectableRow) (donRow, error) {
		var dr donRow
		err := row.Scan(&dr.d.ID, &dr.campaignID, &dr.d.Donor, &dr.d.Amount, &dr.d.CreatedAt)
		return dr, err
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]int, len(campaigns))
	for i := range campaigns {
		byID[campaigns[i].ID] = i
	}
	for _, dr := range dons {
		if i, ok := byID[dr.campaignID]; ok {
			campaigns[i].Donations = append(campaigns[i].Donations, dr.d)
		}
	}
	return campaigns, nil
}

// AddDonation appends a donation entry and bumps the collected amount
// in one transaction, holding a row lock on the campaign.
func (r *CampaignRepository) AddDonation(ctx context.Context, campaignID uint64, d domain.Donation) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()
	// lock campaign
	var collected int64
	err = tx.QueryRow(ctx, `SELECT amount_collected FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&collected)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO donations (campaign_id, donor, amount, created_at)
VALUES ($1,$2,$3,$4)`, campaignID, d.Donor, d.Amount, d.CreatedAt)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns SET amount_collected = amount_collected + $1 WHERE id = $2`,
		d.Amount, campaignID)
	return err
}

// MarkPaidOut sets the paid-out flag.
func (r *CampaignRepository) MarkPaidOut(ctx context.Context, id uint64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET paid_out = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark paid out: campaign %d not in store", id)
	}
	return nil
}

// ZeroDonation zeroes a single donation entry.
func (r *CampaignRepository) ZeroDonation(ctx context.Context, campaignID uint64, donationID int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE donations SET amount = 0 WHERE id = $1 AND campaign_id = $2`,
		donationID, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("zero donation: donation %d not in campaign %d", donationID, campaignID)
	}
	return nil
}

// ResetCollected zeroes the campaign's collected amount.
func (r *CampaignRepository) ResetCollected(ctx context.Context, id uint64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET amount_collected = 0 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reset collected: campaign %d not in store", id)
	}
	return nil
}
