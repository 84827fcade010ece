package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundvault/internal/core/domain"
)

// ActionLog persists the audit trail in the actions table.
type ActionLog struct {
	pool *pgxpool.Pool
}

// NewActionLog returns a new log instance.
func NewActionLog(pool *pgxpool.Pool) *ActionLog {
	return &ActionLog{pool: pool}
}

func (l *ActionLog) Append(ctx context.Context, a domain.Action) error {
	_, err := l.pool.Exec(ctx, `INSERT INTO actions (campaign_id, action, executor, created_at)
VALUES ($1,$2,$3,$4)`, a.CampaignID, string(a.Type), a.Executor, a.CreatedAt)
	return err
}

func (l *ActionLog) List(ctx context.Context, campaignID *uint64, limit int) ([]domain.Action, error) {
	args := []interface{}{}
	where := ""
	if campaignID != nil {
		where = "WHERE campaign_id = $1"
		args = append(args, *campaignID)
	}
	q := fmt.Sprintf(`SELECT id, campaign_id, action, executor, created_at FROM actions %s ORDER BY id DESC`, where)
	if limit > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, limit)
	}
	rows, err := l.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Action, error) {
		var a domain.Action
		var t string
		err := row.Scan(&a.ID, &a.CampaignID, &t, &a.Executor, &a.CreatedAt)
		a.Type = domain.ActionType(t)
		return a, err
	})
}
