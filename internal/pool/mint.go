package pool

import (
	sdkmath "cosmossdk.io/math"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/curve"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// Mint sells claim-token units to the participant along the curve. The caller
// bounds the price with maxHoldAmount and the quote age with validUntil;
// allowPartial permits a partial fill when the fixed supply cannot cover the
// requested amount.
func (p *Pool) Mint(participant string, rwaAmount, maxHoldAmount sdkmath.Int, validUntil int64, allowPartial bool) (types.MintQuote, error) {
	quote, err := func() (types.MintQuote, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.mintLocked(participant, rwaAmount, maxHoldAmount, validUntil, allowPartial)
	}()

	// The receipt hook runs outside the guard so it may take fresh snapshots.
	p.emitReceipt(types.OperationMint, participant, quote.ActualRwaAmount, quote.HoldAmountWithFee, sdkmath.ZeroInt(), err)
	if err != nil {
		return types.MintQuote{}, err
	}
	return quote, nil
}

func (p *Pool) mintLocked(participant string, rwaAmount, maxHoldAmount sdkmath.Int, validUntil int64, allowPartial bool) (types.MintQuote, error) {
	now := p.now()

	if p.registry.IsPaused() {
		return types.MintQuote{}, ErrPaused
	}
	if p.state.Bonus.IsFullyReturned {
		return types.MintQuote{}, ErrFullyReturned
	}
	if now >= p.cfg.CompletionPeriodExpired {
		return types.MintQuote{}, ErrCompletionExpired
	}
	if now < p.cfg.EntryPeriodStart {
		return types.MintQuote{}, ErrEntryNotStarted
	}
	if !p.state.Bonus.IsTargetReached && now >= p.cfg.EntryPeriodExpired {
		return types.MintQuote{}, ErrEntryExpired
	}
	if now > validUntil {
		return types.MintQuote{}, ErrDeadlineExpired
	}

	quote, err := curve.QuoteMint(p.cfg, p.policy, p.state.Reserves, p.state.AwaitingRwaAmount, rwaAmount, allowPartial)
	if err != nil {
		return types.MintQuote{}, err
	}
	if quote.HoldAmountWithFee.GT(maxHoldAmount) {
		return types.MintQuote{}, ErrSlippageExceeded
	}

	cp := p.takeCheckpoint()
	jr := &journal{}

	if err := p.pullFunds(jr, participant, quote.HoldAmountWithFee); err != nil {
		return types.MintQuote{}, err
	}
	if err := p.payOut(jr, p.registry.Treasury(), quote.FeeAmount); err != nil {
		jr.unwind(p.logger)
		return types.MintQuote{}, err
	}

	p.state.AwaitingRwaAmount = p.state.AwaitingRwaAmount.Add(quote.ActualRwaAmount)
	p.state.Reserves.RealHoldReserve = p.state.Reserves.RealHoldReserve.Add(quote.HoldAmountWithFee.Sub(quote.FeeAmount))
	p.state.Reserves.VirtualRwaReserve = p.state.Reserves.VirtualRwaReserve.Sub(quote.ActualRwaAmount)

	if !p.state.Bonus.IsTargetReached && p.state.AwaitingRwaAmount.GTE(p.cfg.ExpectedRwaAmount) {
		if err := p.reachTarget(now); err != nil {
			p.restore(cp)
			jr.unwind(p.logger)
			return types.MintQuote{}, err
		}
	}

	if err := p.rwa.Mint(participant, p.cfg.RwaID, quote.ActualRwaAmount); err != nil {
		p.restore(cp)
		jr.unwind(p.logger)
		return types.MintQuote{}, err
	}

	p.logger.Info().
		Str("participant", participant).
		Str("rwaAmount", quote.ActualRwaAmount.String()).
		Str("holdAmount", quote.HoldAmountWithFee.String()).
		Str("fee", quote.FeeAmount.String()).
		Bool("targetReached", p.state.Bonus.IsTargetReached).
		Msg("Minted claim tokens")

	return quote, nil
}

// reachTarget performs the one-time transition when cumulative funding meets
// the expected amount: ExpectedHoldAmount moves from the real reserve into the
// outgoing-claimable balance and the virtual hold bucket. This is the one
// deliberate k-breaking reserve shift; k is not recomputed because the shift
// only reclassifies already-counted value.
func (p *Pool) reachTarget(now int64) error {
	if p.state.Reserves.RealHoldReserve.LT(p.cfg.ExpectedHoldAmount) {
		return ErrInsufficientReserveForTranches
	}

	p.state.Bonus.IsTargetReached = true
	p.state.Reserves.RealHoldReserve = p.state.Reserves.RealHoldReserve.Sub(p.cfg.ExpectedHoldAmount)
	p.state.Reserves.VirtualHoldReserve = p.state.Reserves.VirtualHoldReserve.Add(p.cfg.ExpectedHoldAmount)
	p.state.OutgoingClaimableBalance = p.state.OutgoingClaimableBalance.Add(p.cfg.ExpectedHoldAmount)

	if p.cfg.FloatingOutTranchesTimestamps && now < p.cfg.EntryPeriodExpired {
		timeSaved := p.cfg.EntryPeriodExpired - now
		if timeSaved > SecondsPerDay {
			p.state.FloatingTimestampOffset = timeSaved - SecondsPerDay
		}
	}

	p.logger.Info().
		Int64("floatingOffset", p.state.FloatingTimestampOffset).
		Str("outgoingClaimable", p.state.OutgoingClaimableBalance.String()).
		Msg("Funding target reached")

	return nil
}
