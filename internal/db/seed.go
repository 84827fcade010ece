package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and donations into the fundvault
// database. Intended for local development only.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	owners := []string{"alice", "bob", "carol"}
	for i := 1; i <= 5; i++ {
		owner := owners[r.Intn(len(owners))]
		title := fmt.Sprintf("Campaign %d", i)
		description := fmt.Sprintf("Demo crowdfunding campaign %d", i)
		image := fmt.Sprintf("https://example.com/images/%d.png", i)
		target := int64(100000 * i) // 1000.00 units per step
		deadline := time.Now().AddDate(0, 1, 0)

		var campaignID uint64
		err := db.QueryRow(ctx, `INSERT INTO campaigns
    (owner, title, description, image, target, deadline, amount_collected, paid_out, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,0,false,now(),now()) RETURNING id`,
			owner, title, description, image, target, deadline).Scan(&campaignID)
		if err != nil {
			return err
		}

		// a handful of donations, staying under the target
		var collected int64
		for j := 0; j < r.Intn(6); j++ {
			amount := int64(1000 * (r.Intn(20) + 1))
			if collected+amount > target {
				break
			}
			donor := fmt.Sprintf("donor-%d", r.Intn(50)+1)
			_, err = db.Exec(ctx, `INSERT INTO donations (campaign_id, donor, amount, created_at)
VALUES ($1,$2,$3,now())`, campaignID, donor, amount)
			if err != nil {
				return err
			}
			collected += amount
			_, err = db.Exec(ctx, `INSERT INTO actions (campaign_id, action, executor, created_at)
VALUES ($1,'donate',$2,now())`, campaignID, donor)
			if err != nil {
				return err
			}
		}
		if collected > 0 {
			_, err = db.Exec(ctx, `UPDATE campaigns SET amount_collected = $1 WHERE id = $2`, collected, campaignID)
			if err != nil {
				return err
			}
		}
		_, err = db.Exec(ctx, `INSERT INTO actions (campaign_id, action, executor, created_at)
VALUES ($1,'create',$2,now())`, campaignID, owner)
		if err != nil {
			return err
		}
	}
	return nil
}
