/*

This file contains the reserve curve: the pure constant-product pricing
functions over (virtualHold, virtualRwa, realHold, k). It owns no state; the
pool engine feeds it the current reserve snapshot and applies the results.

Numeric policy: every division truncates toward zero. Callers must tolerate
rounding discrepancies of at most one unit on round trips.

*/

package curve

import (
	"errors"

	sdkmath "cosmossdk.io/math"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/utils"
)

var (
	// ErrZeroAmount rejects quotes for a non-positive claim amount.
	ErrZeroAmount = errors.New("rwa amount must be positive")
	// ErrExceedsFixedSupply signals that a fixed-supply pool cannot fill the
	// requested amount and the caller disallowed a partial fill.
	ErrExceedsFixedSupply = errors.New("rwa amount exceeds fixed supply")
	// ErrInsufficientReserve signals that the trade would invert the curve.
	ErrInsufficientReserve = errors.New("insufficient virtual rwa reserve")
)

// SupplyPolicy is the closed set of mint-supply strategies, selected once at
// pool construction and never swapped afterwards.
type SupplyPolicy interface {
	// ClampMint resolves the claim amount actually sold for a requested amount
	// given the supply already outstanding.
	ClampMint(cfg types.PoolConfig, awaitingRwa, rwaWanted sdkmath.Int, allowPartial bool) (sdkmath.Int, error)
}

// FixedSupplyPolicy caps total sold claims at ExpectedRwaAmount, optionally
// filling partially up to the unsold remainder.
type FixedSupplyPolicy struct{}

func (FixedSupplyPolicy) ClampMint(cfg types.PoolConfig, awaitingRwa, rwaWanted sdkmath.Int, allowPartial bool) (sdkmath.Int, error) {
	remaining := cfg.ExpectedRwaAmount.Sub(awaitingRwa)
	if remaining.GTE(rwaWanted) {
		return rwaWanted, nil
	}
	if !allowPartial || !remaining.IsPositive() {
		return sdkmath.ZeroInt(), ErrExceedsFixedSupply
	}
	return remaining, nil
}

// OpenSupplyPolicy never clamps; the curve alone limits what can be sold.
type OpenSupplyPolicy struct{}

func (OpenSupplyPolicy) ClampMint(_ types.PoolConfig, _, rwaWanted sdkmath.Int, _ bool) (sdkmath.Int, error) {
	return rwaWanted, nil
}

// PolicyFor selects the supply policy for a validated config.
func PolicyFor(cfg types.PoolConfig) SupplyPolicy {
	if cfg.FixedSell {
		return FixedSupplyPolicy{}
	}
	return OpenSupplyPolicy{}
}

// InitialReserves derives the virtual reserves and the curve constant from the
// expected amounts and the liquidity coefficient c:
//
//	virtualHold = expectedHold x c
//	virtualRwa  = expectedRwa x (c + 1)
//	k           = virtualHold x virtualRwa
func InitialReserves(expectedHold, expectedRwa, coefficient sdkmath.Int) types.ReserveState {
	virtualHold := expectedHold.Mul(coefficient)
	virtualRwa := expectedRwa.Mul(coefficient.AddRaw(1))
	return types.ReserveState{
		RealHoldReserve:    sdkmath.ZeroInt(),
		VirtualHoldReserve: virtualHold,
		VirtualRwaReserve:  virtualRwa,
		K:                  virtualHold.Mul(virtualRwa),
	}
}

// QuoteMint prices the acquisition of rwaWanted claim units against the current
// reserves. The returned quote carries the actually sold amount after the
// supply policy ran, the entry fee, and the total hold input including it.
func QuoteMint(cfg types.PoolConfig, policy SupplyPolicy, reserves types.ReserveState, awaitingRwa, rwaWanted sdkmath.Int, allowPartial bool) (types.MintQuote, error) {
	if rwaWanted.IsNil() || !rwaWanted.IsPositive() {
		return types.MintQuote{}, ErrZeroAmount
	}

	actualRwa, err := policy.ClampMint(cfg, awaitingRwa, rwaWanted, allowPartial)
	if err != nil {
		return types.MintQuote{}, err
	}
	if actualRwa.GTE(reserves.VirtualRwaReserve) {
		return types.MintQuote{}, ErrInsufficientReserve
	}

	// holdBase = k/(virtualRwa - actualRwa) - (virtualHold + realHold)
	newTotalHold, err := utils.FloorQuo(reserves.K, reserves.VirtualRwaReserve.Sub(actualRwa))
	if err != nil {
		return types.MintQuote{}, err
	}
	holdBase := newTotalHold.Sub(reserves.VirtualHoldReserve.Add(reserves.RealHoldReserve))
	if holdBase.IsNegative() {
		holdBase = sdkmath.ZeroInt()
	}

	fee, err := utils.ApplyPercent(holdBase, cfg.EntryFeePercent)
	if err != nil {
		return types.MintQuote{}, err
	}

	return types.MintQuote{
		HoldAmountWithFee: holdBase.Add(fee),
		FeeAmount:         fee,
		ActualRwaAmount:   actualRwa,
	}, nil
}

// QuoteBurn prices the return of rwaAmount claim units: the principal leg from
// the curve and, when bonusesUnlocked, the pro-rata bonus leg over the supply
// still eligible for reward.
func QuoteBurn(cfg types.PoolConfig, reserves types.ReserveState, bonus types.BonusState, awaitingRwa, rwaAmount sdkmath.Int, bonusesUnlocked bool) (types.BurnQuote, error) {
	if rwaAmount.IsNil() || !rwaAmount.IsPositive() {
		return types.BurnQuote{}, ErrZeroAmount
	}
	if rwaAmount.GTE(reserves.VirtualRwaReserve) {
		return types.BurnQuote{}, ErrInsufficientReserve
	}

	// holdTotal = (virtualHold + realHold) - k/(virtualRwa + rwaAmount)
	newTotalHold, err := utils.FloorQuo(reserves.K, reserves.VirtualRwaReserve.Add(rwaAmount))
	if err != nil {
		return types.BurnQuote{}, err
	}
	holdTotal := reserves.VirtualHoldReserve.Add(reserves.RealHoldReserve).Sub(newTotalHold)
	if holdTotal.IsNegative() {
		holdTotal = sdkmath.ZeroInt()
	}
	holdFee, err := utils.ApplyPercent(holdTotal, cfg.ExitFeePercent)
	if err != nil {
		return types.BurnQuote{}, err
	}

	quote := types.BurnQuote{
		HoldAmount:        holdTotal.Sub(holdFee),
		HoldFeeAmount:     holdFee,
		BonusAmount:       sdkmath.ZeroInt(),
		BonusFeeAmount:    sdkmath.ZeroInt(),
		EligibleRwaAmount: sdkmath.ZeroInt(),
	}

	if !bonusesUnlocked || !bonus.AwaitingBonusAmount.IsPositive() || !awaitingRwa.IsPositive() {
		return quote, nil
	}
	remainingEligible := awaitingRwa.Sub(bonus.RewardedRwaAmount)
	if !remainingEligible.IsPositive() {
		return quote, nil
	}

	eligible := sdkmath.MinInt(rwaAmount, remainingEligible)
	bonusTotal, err := utils.MulFloorQuo(bonus.AwaitingBonusAmount, eligible, remainingEligible)
	if err != nil {
		return types.BurnQuote{}, err
	}
	bonusFee, err := utils.ApplyPercent(bonusTotal, cfg.ExitFeePercent)
	if err != nil {
		return types.BurnQuote{}, err
	}

	quote.BonusAmount = bonusTotal.Sub(bonusFee)
	quote.BonusFeeAmount = bonusFee
	quote.EligibleRwaAmount = eligible
	return quote, nil
}
