package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fundvault/internal/core/domain"
	"fundvault/internal/core/port"
)

// CampaignLedger implements the fund-custody state machine. It
// orchestrates the campaign store, the action log and the transfer
// gateway to implement the port.CampaignLedger interface.
//
// Every mutating operation runs as a single critical section: one
// read-modify-write on a campaign is never interleaved with another.
// Ordering among concurrent callers is imposed by whoever sequences
// requests at the boundary; the mutex only guarantees atomicity of the
// individual operation.
type CampaignLedger struct {
	repo    port.CampaignRepository
	actions port.ActionLog
	gateway port.TransferGateway

	mu         sync.RWMutex
	emergency  bool
	taxPercent int64

	platformOwner   string
	platformAccount string

	// now is replaceable in tests.
	now func() time.Time
}

// Options carries the platform-level settings the ledger starts with.
type Options struct {
	// PlatformOwner is the identity allowed to run platform-only
	// operations and to act on any campaign.
	PlatformOwner string
	// PlatformAccount receives the fee cut on payout.
	PlatformAccount string
	// TaxPercent is the initial fee percentage (0-100).
	TaxPercent int64
}

// NewCampaignLedger creates a ledger over the given store, action log
// and transfer gateway. The emergency flag starts off.
func NewCampaignLedger(repo port.CampaignRepository, actions port.ActionLog, gateway port.TransferGateway, opts Options) *CampaignLedger {
	return &CampaignLedger{
		repo:            repo,
		actions:         actions,
		gateway:         gateway,
		taxPercent:      opts.TaxPercent,
		platformOwner:   opts.PlatformOwner,
		platformAccount: opts.PlatformAccount,
		now:             time.Now,
	}
}

// authorize allows the campaign owner and the platform owner, nobody
// else. Pure function of the three identities.
func authorize(caller, owner, platformOwner string) error {
	if caller == owner || caller == platformOwner {
		return nil
	}
	return fmt.Errorf("%w: %q is neither campaign owner nor platform owner", domain.ErrUnauthorized, caller)
}

// platformOnly allows only the platform owner.
func (s *CampaignLedger) platformOnly(caller string) error {
	if caller == s.platformOwner {
		return nil
	}
	return fmt.Errorf("%w: %q is not the platform owner", domain.ErrUnauthorized, caller)
}

// requireNormalMode is the single shared predicate gating normal
// operations while the emergency flag is set. Must be called with the
// mutex held.
func (s *CampaignLedger) requireNormalMode() error {
	if s.emergency {
		return fmt.Errorf("%w: platform is in emergency mode", domain.ErrEmergencyMode)
	}
	return nil
}

// validate checks the caller-supplied campaign fields shared by create
// and update.
func validate(req port.CampaignReq, now time.Time) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Image) == "" {
		return fmt.Errorf("%w: image must not be empty", domain.ErrValidation)
	}
	if req.Target <= 0 {
		return fmt.Errorf("%w: target must be positive", domain.ErrValidation)
	}
	if !req.Deadline.After(now) {
		return fmt.Errorf("%w: deadline must be in the future", domain.ErrValidation)
	}
	return nil
}

// get loads a campaign or reports it absent. Must be called with the
// mutex held.
func (s *CampaignLedger) get(ctx context.Context, id uint64) (*domain.Campaign, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: campaign %d", domain.ErrNotFound, id)
	}
	return c, nil
}

// record appends an audit entry for a successful mutating operation.
func (s *CampaignLedger) record(ctx context.Context, campaignID uint64, t domain.ActionType, executor string) error {
	a := domain.Action{
		CampaignID: campaignID,
		Type:       t,
		Executor:   executor,
		CreatedAt:  s.now(),
	}
	if err := s.actions.Append(ctx, a); err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// Actions returns audit records, newest first.
func (s *CampaignLedger) Actions(ctx context.Context, campaignID *uint64, limit int) ([]domain.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actions.List(ctx, campaignID, limit)
}
