package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundvault/internal/adapter/memory"
	"fundvault/internal/core/domain"
	"fundvault/internal/core/port"
)

var base = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// stubGateway records transfers and can be told to fail the Nth call.
type stubGateway struct {
	transfers []port.Transfer
	failCall  int // 1-based call index to fail, 0 = never
	calls     int
}

func (g *stubGateway) Transfer(_ context.Context, t port.Transfer) error {
	g.calls++
	if g.failCall != 0 && g.calls == g.failCall {
		return errors.New("gateway offline")
	}
	g.transfers = append(g.transfers, t)
	return nil
}

func newLedger(t *testing.T) (*CampaignLedger, *stubGateway) {
	t.Helper()
	gw := &stubGateway{}
	s := NewCampaignLedger(memory.NewCampaignRepository(), memory.NewActionLog(), gw, Options{
		PlatformOwner:   "platform-admin",
		PlatformAccount: "platform-treasury",
		TaxPercent:      5,
	})
	s.now = func() time.Time { return base }
	return s, gw
}

func validReq() port.CampaignReq {
	return port.CampaignReq{
		Title:       "Clean water",
		Description: "Wells for the village",
		Image:       "https://img.example/well.png",
		Target:      100,
		Deadline:    base.Add(24 * time.Hour),
	}
}

func TestCreateAndList(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	campaigns, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	c := campaigns[0]
	assert.Equal(t, "alice", c.Owner)
	assert.EqualValues(t, 0, c.AmountCollected)
	assert.False(t, c.PaidOut)
	assert.Empty(t, c.Donations)
}

func TestCreateValidation(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	cases := map[string]func(*port.CampaignReq){
		"empty title":       func(r *port.CampaignReq) { r.Title = "" },
		"blank description": func(r *port.CampaignReq) { r.Description = "   " },
		"empty image":       func(r *port.CampaignReq) { r.Image = "" },
		"zero target":       func(r *port.CampaignReq) { r.Target = 0 },
		"negative target":   func(r *port.CampaignReq) { r.Target = -5 },
		"past deadline":     func(r *port.CampaignReq) { r.Deadline = base.Add(-time.Hour) },
		"deadline is now":   func(r *port.CampaignReq) { r.Deadline = base },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validReq()
			mutate(&req)
			_, err := s.CreateCampaign(ctx, "alice", req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	campaigns, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, campaigns, "rejected creates must leave no campaigns behind")
}

func TestDonationCap(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)

	require.NoError(t, s.Donate(ctx, "donor-a", id, 60))
	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 60, c.AmountCollected)

	// the overflowing donation is rejected in full, not trimmed
	err = s.Donate(ctx, "donor-b", id, 50)
	require.ErrorIs(t, err, domain.ErrTargetExceeded)
	c, err = s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 60, c.AmountCollected)
	assert.Len(t, c.Donations, 1)

	require.NoError(t, s.Donate(ctx, "donor-b", id, 40))
	c, err = s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 100, c.AmountCollected)
}

func TestDonationCapHugeAmount(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 60))

	// an amount large enough to wrap the sum must still be rejected,
	// never drive the collected balance negative
	err = s.Donate(ctx, "donor-b", id, math.MaxInt64)
	require.ErrorIs(t, err, domain.ErrTargetExceeded)

	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 60, c.AmountCollected)
	assert.Len(t, c.Donations, 1)
}

func TestDonateRejections(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)

	err = s.Donate(ctx, "donor-a", id, 0)
	require.ErrorIs(t, err, domain.ErrLowAmount)

	err = s.Donate(ctx, "donor-a", 42, 10)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// deadline passed
	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	err = s.Donate(ctx, "donor-a", id, 10)
	require.ErrorIs(t, err, domain.ErrDeadline)
	s.now = func() time.Time { return base }

	// paid out campaigns accept nothing
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))
	require.NoError(t, s.Payout(ctx, "alice", id))
	err = s.Donate(ctx, "donor-b", id, 1)
	require.ErrorIs(t, err, domain.ErrState)
}

func TestPayoutScenario(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 60))
	require.NoError(t, s.Donate(ctx, "donor-b", id, 40))

	require.NoError(t, s.Payout(ctx, "alice", id))

	require.Len(t, gw.transfers, 2)
	assert.Equal(t, "alice", gw.transfers[0].Account)
	assert.EqualValues(t, 95, gw.transfers[0].Amount)
	assert.Equal(t, "platform-treasury", gw.transfers[1].Account)
	assert.EqualValues(t, 5, gw.transfers[1].Amount)
	assert.NotEmpty(t, gw.transfers[0].Reference)
	assert.NotEqual(t, gw.transfers[0].Reference, gw.transfers[1].Reference)

	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.True(t, c.PaidOut)

	err = s.Payout(ctx, "alice", id)
	require.ErrorIs(t, err, domain.ErrState)
	require.Len(t, gw.transfers, 2, "second payout must move no funds")
}

func TestPayoutTaxFloor(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	req := validReq()
	req.Target = 33
	id, err := s.CreateCampaign(ctx, "alice", req)
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 33))

	// 33 * 5 / 100 floors to 1
	require.NoError(t, s.Payout(ctx, "alice", id))
	require.Len(t, gw.transfers, 2)
	assert.EqualValues(t, 32, gw.transfers[0].Amount)
	assert.EqualValues(t, 1, gw.transfers[1].Amount)
}

func TestPayoutGuards(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 50))

	err = s.Payout(ctx, "alice", id)
	require.ErrorIs(t, err, domain.ErrState, "goal not reached")

	require.NoError(t, s.Donate(ctx, "donor-a", id, 50))
	err = s.Payout(ctx, "mallory", id)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, gw.transfers)

	// the platform owner may trigger payout on any campaign
	require.NoError(t, s.Payout(ctx, "platform-admin", id))
	assert.Len(t, gw.transfers, 2)
}

func TestPayoutTransferFailure(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))

	gw.failCall = 1
	err = s.Payout(ctx, "alice", id)
	require.ErrorIs(t, err, domain.ErrTransfer)

	// the flag is committed before the transfer, so the campaign is
	// marked paid even though no funds moved
	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.True(t, c.PaidOut)
	assert.Empty(t, gw.transfers)

	// no payout action is recorded for the failed attempt
	actions, err := s.Actions(ctx, &id, 0)
	require.NoError(t, err)
	for _, a := range actions {
		assert.NotEqual(t, domain.ActionPayout, a.Type)
	}
}

func TestUpdateCampaign(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)

	req := validReq()
	req.Title = "Cleaner water"
	req.Target = 200
	require.NoError(t, s.UpdateCampaign(ctx, "alice", id, req))

	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cleaner water", c.Title)
	assert.EqualValues(t, 200, c.Target)
	assert.False(t, c.PaidOut)

	err = s.UpdateCampaign(ctx, "mallory", id, req)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	req.Target = 0
	err = s.UpdateCampaign(ctx, "alice", id, req)
	require.ErrorIs(t, err, domain.ErrValidation)

	// terms freeze once any funds are held
	require.NoError(t, s.Donate(ctx, "donor-a", id, 10))
	err = s.UpdateCampaign(ctx, "alice", id, validReq())
	require.ErrorIs(t, err, domain.ErrState)
}

func TestDeleteRefundsDonors(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 10))
	require.NoError(t, s.Donate(ctx, "donor-b", id, 20))

	require.NoError(t, s.DeleteCampaign(ctx, "alice", id))

	require.Len(t, gw.transfers, 2)
	assert.Equal(t, "donor-a", gw.transfers[0].Account)
	assert.EqualValues(t, 10, gw.transfers[0].Amount)
	assert.Equal(t, "donor-b", gw.transfers[1].Account)
	assert.EqualValues(t, 20, gw.transfers[1].Amount)

	campaigns, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, campaigns)

	_, err = s.GetCampaign(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAfterPayoutMovesNoFunds(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))
	require.NoError(t, s.Payout(ctx, "alice", id))
	require.Len(t, gw.transfers, 2)

	// the balance already went out with the payout; deleting the
	// campaign must not pay the donors a second time
	require.NoError(t, s.DeleteCampaign(ctx, "alice", id))
	require.Len(t, gw.transfers, 2)

	_, err = s.GetCampaign(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	first, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	second, err := s.CreateCampaign(ctx, "bob", validReq())
	require.NoError(t, err)

	require.NoError(t, s.DeleteCampaign(ctx, "alice", first))

	third, err := s.CreateCampaign(ctx, "carol", validReq())
	require.NoError(t, err)
	assert.Greater(t, third, second, "a new campaign must never take a freed id")

	// the second campaign is untouched by its neighbour's deletion
	c, err := s.GetCampaign(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Owner)
}

func TestRefundIdempotent(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 30))

	_, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)

	require.NoError(t, s.EmergencyRefundRange(ctx, "platform-admin", id, id))
	require.Len(t, gw.transfers, 1)

	// a second pass finds only zeroed entries and moves nothing
	require.NoError(t, s.EmergencyRefundRange(ctx, "platform-admin", id, id))
	require.Len(t, gw.transfers, 1)

	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, c.AmountCollected)
	require.Len(t, c.Donations, 1)
	assert.EqualValues(t, 0, c.Donations[0].Amount, "refunded entries stay listed with zero amount")
}

func TestEmergencyRefundRangeSkipsPaidOut(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	paid, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", paid, 100))
	require.NoError(t, s.Payout(ctx, "alice", paid))

	open, err := s.CreateCampaign(ctx, "bob", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-b", open, 25))
	require.Len(t, gw.transfers, 2)

	_, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)

	// the sweep refunds only funds still in custody
	require.NoError(t, s.EmergencyRefundRange(ctx, "platform-admin", paid, open))
	require.Len(t, gw.transfers, 3)
	assert.Equal(t, "donor-b", gw.transfers[2].Account)
	assert.EqualValues(t, 25, gw.transfers[2].Amount)
}

func TestEmergencyModeGating(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))

	// mass refund is only for emergencies
	err = s.EmergencyRefundRange(ctx, "platform-admin", id, id)
	require.ErrorIs(t, err, domain.ErrEmergencyMode)

	state, err := s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)
	require.True(t, state)

	_, err = s.CreateCampaign(ctx, "bob", validReq())
	assert.ErrorIs(t, err, domain.ErrEmergencyMode)
	assert.ErrorIs(t, s.UpdateCampaign(ctx, "alice", id, validReq()), domain.ErrEmergencyMode)
	assert.ErrorIs(t, s.Donate(ctx, "donor-b", id, 1), domain.ErrEmergencyMode)
	assert.ErrorIs(t, s.Payout(ctx, "alice", id), domain.ErrEmergencyMode)
	assert.ErrorIs(t, s.DeleteCampaign(ctx, "alice", id), domain.ErrEmergencyMode)

	// reads stay available
	_, err = s.GetCampaign(ctx, id)
	assert.NoError(t, err)
	_, err = s.Donations(ctx, id)
	assert.NoError(t, err)

	require.NoError(t, s.EmergencyRefundRange(ctx, "platform-admin", id, id))

	state, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)
	require.False(t, state)
	_, err = s.CreateCampaign(ctx, "bob", validReq())
	assert.NoError(t, err)
}

func TestEmergencyRefundRangeAbortsOnMissingID(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	first, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	second, err := s.CreateCampaign(ctx, "bob", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", second, 25))
	require.NoError(t, s.DeleteCampaign(ctx, "alice", first))

	_, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)

	err = s.EmergencyRefundRange(ctx, "platform-admin", first, second)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gw.transfers, "the range aborts before touching later campaigns")

	// an inverted range is rejected outright
	err = s.EmergencyRefundRange(ctx, "platform-admin", second, first)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmergencyPlatformOnly(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	_, err := s.ToggleEmergency(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)

	err = s.EmergencyRefundRange(ctx, "alice", 1, 1)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSetTax(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SetTax(ctx, "alice", 10), domain.ErrUnauthorized)
	require.ErrorIs(t, s.SetTax(ctx, "platform-admin", 101), domain.ErrValidation)
	require.ErrorIs(t, s.SetTax(ctx, "platform-admin", -1), domain.ErrValidation)

	require.NoError(t, s.SetTax(ctx, "platform-admin", 10))

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))
	require.NoError(t, s.Payout(ctx, "alice", id))

	require.Len(t, gw.transfers, 2)
	assert.EqualValues(t, 90, gw.transfers[0].Amount)
	assert.EqualValues(t, 10, gw.transfers[1].Amount)
}

func TestHaltDeadline(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)

	require.ErrorIs(t, s.HaltDeadline(ctx, "alice", id), domain.ErrUnauthorized)

	require.NoError(t, s.HaltDeadline(ctx, "platform-admin", id))

	// the campaign is frozen for donations but still listed
	err = s.Donate(ctx, "donor-a", id, 10)
	require.ErrorIs(t, err, domain.ErrDeadline)
	campaigns, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
}

func TestActionsAudit(t *testing.T) {
	s, _ := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 100))
	require.NoError(t, s.Payout(ctx, "alice", id))

	actions, err := s.Actions(ctx, &id, 0)
	require.NoError(t, err)
	require.Len(t, actions, 3)
	// newest first
	assert.Equal(t, domain.ActionPayout, actions[0].Type)
	assert.Equal(t, "alice", actions[0].Executor)
	assert.Equal(t, domain.ActionDonate, actions[1].Type)
	assert.Equal(t, "donor-a", actions[1].Executor)
	assert.Equal(t, domain.ActionCreate, actions[2].Type)

	// a rejected operation emits nothing
	require.Error(t, s.Donate(ctx, "donor-b", id, 1))
	actions, err = s.Actions(ctx, &id, 0)
	require.NoError(t, err)
	assert.Len(t, actions, 3)

	// limit caps the result
	actions, err = s.Actions(ctx, &id, 2)
	require.NoError(t, err)
	assert.Len(t, actions, 2)
}

func TestRefundTransferFailureIsResumable(t *testing.T) {
	s, gw := newLedger(t)
	ctx := context.Background()

	id, err := s.CreateCampaign(ctx, "alice", validReq())
	require.NoError(t, err)
	require.NoError(t, s.Donate(ctx, "donor-a", id, 10))
	require.NoError(t, s.Donate(ctx, "donor-b", id, 20))

	_, err = s.ToggleEmergency(ctx, "platform-admin")
	require.NoError(t, err)

	// second transfer fails mid-refund
	gw.failCall = 2
	err = s.EmergencyRefundRange(ctx, "platform-admin", id, id)
	require.ErrorIs(t, err, domain.ErrTransfer)
	require.Len(t, gw.transfers, 1)

	// re-running skips the donor already refunded
	require.NoError(t, s.EmergencyRefundRange(ctx, "platform-admin", id, id))
	require.Len(t, gw.transfers, 2)
	assert.Equal(t, "donor-b", gw.transfers[1].Account)

	c, err := s.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, c.AmountCollected)
}
