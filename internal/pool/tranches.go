package pool

import (
	sdkmath "cosmossdk.io/math"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// ClaimOutgoingTranches disburses the matured outgoing tranches at the given
// indexes to the project owner. Each entry is all-or-nothing; any entry that is
// already claimed or not yet released fails the whole batch.
func (p *Pool) ClaimOutgoingTranches(caller string, indexes []int) (sdkmath.Int, error) {
	total, err := func() (sdkmath.Int, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.claimOutgoingLocked(caller, indexes)
	}()
	p.emitReceipt(types.OperationClaimOutgoing, caller, sdkmath.ZeroInt(), total, sdkmath.ZeroInt(), err)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return total, nil
}

func (p *Pool) claimOutgoingLocked(caller string, indexes []int) (sdkmath.Int, error) {
	now := p.now()

	if p.registry.IsPaused() {
		return sdkmath.ZeroInt(), ErrPaused
	}
	if caller != p.cfg.Owner {
		return sdkmath.ZeroInt(), ErrNotOwner
	}
	if !p.state.Bonus.IsTargetReached {
		return sdkmath.ZeroInt(), ErrTargetNotReached
	}

	cp := p.takeCheckpoint()

	total := sdkmath.ZeroInt()
	for _, i := range indexes {
		if i < 0 || i >= len(p.outgoing) {
			p.restore(cp)
			return sdkmath.ZeroInt(), ErrInvalidIndex
		}
		tranche := &p.outgoing[i]
		if tranche.Claimed() {
			p.restore(cp)
			return sdkmath.ZeroInt(), ErrAlreadyClaimed
		}
		if now < p.effectiveReleaseTime(tranche.ReleaseTimestamp) {
			p.restore(cp)
			return sdkmath.ZeroInt(), ErrNotYetAvailable
		}
		total = total.Add(tranche.Amount)
		tranche.ClaimedAmount = tranche.Amount
	}
	if total.IsZero() {
		p.restore(cp)
		return sdkmath.ZeroInt(), ErrZeroBatch
	}
	if p.state.OutgoingClaimableBalance.LT(total) {
		// Unreachable while the tranche-sum invariant holds.
		p.restore(cp)
		return sdkmath.ZeroInt(), ErrInsufficientBalance
	}
	p.state.OutgoingClaimableBalance = p.state.OutgoingClaimableBalance.Sub(total)

	jr := &journal{}
	if err := p.payOut(jr, p.cfg.Owner, total); err != nil {
		p.restore(cp)
		return sdkmath.ZeroInt(), err
	}

	p.logger.Info().
		Ints("indexes", indexes).
		Str("amount", total.String()).
		Msg("Claimed outgoing tranches")

	return total, nil
}

// ReturnIncomingTranche applies a repayment to the incoming schedule, filling
// entries in order starting at the completion cursor. The applied amount is
// split globally into debt (up to ExpectedHoldAmount of cumulative returns)
// and bonus (everything beyond); debt refills the real reserve, mirroring the
// mint-time shift, while bonus accrues to the reward pool.
func (p *Pool) ReturnIncomingTranche(payer string, amount sdkmath.Int) (sdkmath.Int, error) {
	applied, err := func() (sdkmath.Int, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.returnIncomingLocked(payer, amount)
	}()
	p.emitReceipt(types.OperationReturnIncoming, payer, sdkmath.ZeroInt(), applied, sdkmath.ZeroInt(), err)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return applied, nil
}

func (p *Pool) returnIncomingLocked(payer string, amount sdkmath.Int) (sdkmath.Int, error) {
	now := p.now()

	if p.registry.IsPaused() {
		return sdkmath.ZeroInt(), ErrPaused
	}
	if !p.state.Bonus.IsTargetReached {
		return sdkmath.ZeroInt(), ErrTargetNotReached
	}
	if amount.IsNil() || !amount.IsPositive() {
		return sdkmath.ZeroInt(), ErrZeroAmount
	}

	cp := p.takeCheckpoint()

	applied := sdkmath.ZeroInt()
	remaining := amount
	for i := p.state.LastCompletedIncomingTranche; i < len(p.incoming) && remaining.IsPositive(); i++ {
		need := p.incoming[i].Remaining()
		if !need.IsPositive() {
			continue
		}
		portion := sdkmath.MinInt(need, remaining)
		p.incoming[i].ReturnedAmount = p.incoming[i].ReturnedAmount.Add(portion)
		applied = applied.Add(portion)
		remaining = remaining.Sub(portion)
	}
	if applied.IsZero() {
		p.restore(cp)
		return sdkmath.ZeroInt(), ErrNoAmountApplied
	}

	// The cursor advances only while the entry it points at is fully returned;
	// a later entry completing first leaves it in place until it catches up.
	for p.state.LastCompletedIncomingTranche < len(p.incoming) &&
		p.incoming[p.state.LastCompletedIncomingTranche].Completed() {
		p.state.LastCompletedIncomingTranche++
	}

	// Debt is filled first, globally, before anything counts as bonus - even
	// across multiple tranches within this one call.
	debtCap := p.cfg.ExpectedHoldAmount.Sub(p.state.TotalReturnedAmount)
	if debtCap.IsNegative() {
		debtCap = sdkmath.ZeroInt()
	}
	debt := sdkmath.MinInt(applied, debtCap)
	bonus := applied.Sub(debt)

	jr := &journal{}
	if err := p.pullFunds(jr, payer, applied); err != nil {
		p.restore(cp)
		return sdkmath.ZeroInt(), err
	}

	p.state.TotalReturnedAmount = p.state.TotalReturnedAmount.Add(applied)
	p.state.Reserves.RealHoldReserve = p.state.Reserves.RealHoldReserve.Add(debt)
	p.state.Reserves.VirtualHoldReserve = p.state.Reserves.VirtualHoldReserve.Sub(debt)
	p.state.Bonus.AwaitingBonusAmount = p.state.Bonus.AwaitingBonusAmount.Add(bonus)

	fullAmount := p.cfg.ExpectedHoldAmount.Add(p.cfg.ExpectedBonusAmount)
	if !p.state.Bonus.IsFullyReturned && p.state.TotalReturnedAmount.Equal(fullAmount) {
		p.state.Bonus.IsFullyReturned = true
		p.state.Bonus.FullReturnTimestamp = now
		p.logger.Info().Int64("fullReturnTimestamp", now).Msg("Pool fully returned")
	}

	p.logger.Info().
		Str("payer", payer).
		Str("applied", applied.String()).
		Str("debt", debt.String()).
		Str("bonus", bonus.String()).
		Int("cursor", p.state.LastCompletedIncomingTranche).
		Msg("Returned incoming tranche amount")

	return applied, nil
}
