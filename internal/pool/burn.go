package pool

import (
	sdkmath "cosmossdk.io/math"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/curve"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// Burn returns claim-token units to the pool for the curve payout plus, once
// bonuses are unlocked, the pro-rata bonus share. Burning stays available in
// the terminal phase so residual bonus settles until the supply reaches zero.
func (p *Pool) Burn(participant string, rwaAmount, minHoldAmount, minBonusAmount sdkmath.Int, validUntil int64) (types.BurnQuote, error) {
	quote, err := func() (types.BurnQuote, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.burnLocked(participant, rwaAmount, minHoldAmount, minBonusAmount, validUntil)
	}()
	p.emitReceipt(types.OperationBurn, participant, rwaAmount, quote.HoldAmount, quote.BonusAmount, err)
	if err != nil {
		return types.BurnQuote{}, err
	}
	return quote, nil
}

func (p *Pool) burnLocked(participant string, rwaAmount, minHoldAmount, minBonusAmount sdkmath.Int, validUntil int64) (types.BurnQuote, error) {
	now := p.now()

	if p.registry.IsPaused() {
		return types.BurnQuote{}, ErrPaused
	}
	if now > validUntil {
		return types.BurnQuote{}, ErrDeadlineExpired
	}
	if !p.cfg.AllowEntryBurn && !p.state.Bonus.IsTargetReached && now < p.cfg.EntryPeriodExpired {
		return types.BurnQuote{}, ErrEntryBurnLocked
	}

	quote, err := curve.QuoteBurn(p.cfg, p.state.Reserves, p.state.Bonus, p.state.AwaitingRwaAmount, rwaAmount, p.bonusesUnlocked(now))
	if err != nil {
		return types.BurnQuote{}, err
	}
	if quote.HoldAmount.LT(minHoldAmount) || quote.BonusAmount.LT(minBonusAmount) {
		return types.BurnQuote{}, ErrSlippageExceeded
	}

	holdWithFee := quote.HoldAmount.Add(quote.HoldFeeAmount)
	bonusWithFee := quote.BonusAmount.Add(quote.BonusFeeAmount)
	if p.state.Reserves.RealHoldReserve.LT(holdWithFee) {
		return types.BurnQuote{}, curve.ErrInsufficientReserve
	}
	if p.state.AwaitingRwaAmount.LT(rwaAmount) {
		return types.BurnQuote{}, curve.ErrInsufficientReserve
	}

	cp := p.takeCheckpoint()
	jr := &journal{}

	p.state.Reserves.RealHoldReserve = p.state.Reserves.RealHoldReserve.Sub(holdWithFee)
	p.state.Reserves.VirtualRwaReserve = p.state.Reserves.VirtualRwaReserve.Add(rwaAmount)
	p.state.AwaitingRwaAmount = p.state.AwaitingRwaAmount.Sub(rwaAmount)

	bonusPaid := quote.EligibleRwaAmount.IsPositive() && bonusWithFee.IsPositive()
	if bonusPaid {
		p.state.Bonus.AwaitingBonusAmount = p.state.Bonus.AwaitingBonusAmount.Sub(bonusWithFee)
		p.state.Bonus.RewardedRwaAmount = p.state.Bonus.RewardedRwaAmount.Add(quote.EligibleRwaAmount)
	}

	if err := p.rwa.Burn(participant, p.cfg.RwaID, rwaAmount); err != nil {
		p.restore(cp)
		return types.BurnQuote{}, err
	}
	jr.record(func() error { return p.rwa.Mint(participant, p.cfg.RwaID, rwaAmount) })

	if err := p.payOut(jr, participant, quote.HoldAmount.Add(quote.BonusAmount)); err != nil {
		p.restore(cp)
		jr.unwind(p.logger)
		return types.BurnQuote{}, err
	}
	if err := p.payOut(jr, p.registry.Treasury(), quote.HoldFeeAmount.Add(quote.BonusFeeAmount)); err != nil {
		p.restore(cp)
		jr.unwind(p.logger)
		return types.BurnQuote{}, err
	}

	p.logger.Info().
		Str("participant", participant).
		Str("rwaAmount", rwaAmount.String()).
		Str("holdOut", quote.HoldAmount.String()).
		Str("bonusOut", quote.BonusAmount.String()).
		Bool("bonusPaid", bonusPaid).
		Msg("Burned claim tokens")

	return quote, nil
}

// BonusesUnlocked reports whether burns currently include the bonus leg.
func (p *Pool) BonusesUnlocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bonusesUnlocked(p.now())
}
