package memory

import (
	"context"
	"sync"

	"fundvault/internal/core/domain"
)

// ActionLog is an in-process append-only audit log.
type ActionLog struct {
	mu      sync.RWMutex
	actions []domain.Action
	nextID  int64
}

// NewActionLog returns an empty log.
func NewActionLog() *ActionLog {
	return &ActionLog{}
}

func (l *ActionLog) Append(_ context.Context, a domain.Action) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	a.ID = l.nextID
	l.actions = append(l.actions, a)
	return nil
}

func (l *ActionLog) List(_ context.Context, campaignID *uint64, limit int) ([]domain.Action, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Action, 0, len(l.actions))
	for i := len(l.actions) - 1; i >= 0; i-- {
		a := l.actions[i]
		if campaignID != nil && a.CampaignID != *campaignID {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
