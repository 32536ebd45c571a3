package pool

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

func TestBurn_Paused(t *testing.T) {
	f := newFixture(t, nil)
	f.registry.SetPaused(true)

	_, err := f.pool.Burn(participant, sdkmath.NewInt(10), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.ErrorIs(t, err, ErrPaused)
}

func TestBurn_DeadlineExpired(t *testing.T) {
	f := newFixture(t, nil)
	f.now = testEntryStart + 100

	_, err := f.pool.Burn(participant, sdkmath.NewInt(10), sdkmath.ZeroInt(), sdkmath.ZeroInt(), f.now-1)
	require.ErrorIs(t, err, ErrDeadlineExpired)
}

func TestBurn_LockedDuringEntry(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.AllowEntryBurn = false
	})

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	_, err = f.pool.Burn(participant, sdkmath.NewInt(100), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.ErrorIs(t, err, ErrEntryBurnLocked)
}

func TestBurn_EntryExitRoundTrip(t *testing.T) {
	f := newFixture(t, nil)

	mint, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	burn, err := f.pool.Burn(participant, sdkmath.NewInt(100), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)
	require.Equal(t, mint.HoldAmountWithFee, burn.HoldAmount)
	require.True(t, burn.BonusAmount.IsZero())

	require.Equal(t, sdkmath.NewInt(1_000_000), f.hold.BalanceOf(participant))
	require.True(t, f.rwa.BalanceOf(participant, 1).IsZero())

	snap := f.pool.Snapshot()
	require.True(t, snap.State.AwaitingRwaAmount.IsZero())
	require.True(t, snap.State.Reserves.RealHoldReserve.IsZero())
	require.Equal(t, sdkmath.NewInt(6_000), snap.State.Reserves.VirtualRwaReserve)
}

func TestBurn_SlippageBound(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	// The payout for 100 units is 847; demanding one more must refuse.
	_, err = f.pool.Burn(participant, sdkmath.NewInt(100), sdkmath.NewInt(848), sdkmath.ZeroInt(), farFuture)
	require.ErrorIs(t, err, ErrSlippageExceeded)

	_, err = f.pool.Burn(participant, sdkmath.NewInt(100), sdkmath.NewInt(847), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)
}

func TestBurn_BonusSlippageBound(t *testing.T) {
	f := newFixture(t, nil)
	f.mintAll(t)
	f.returnAll(t)
	f.now += SecondsPerDay

	quote, err := f.pool.QuoteBurn(sdkmath.NewInt(250))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(250), quote.BonusAmount)

	_, err = f.pool.Burn(participant, sdkmath.NewInt(250), sdkmath.ZeroInt(), quote.BonusAmount.AddRaw(1), farFuture)
	require.ErrorIs(t, err, ErrSlippageExceeded)
}

func TestBurn_ExitFeesGoToTreasury(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.ExitFeePercent = sdkmath.LegacyMustNewDecFromStr("0.01")
	})

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	burn, err := f.pool.Burn(participant, sdkmath.NewInt(100), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(8), burn.HoldFeeAmount)
	require.Equal(t, sdkmath.NewInt(839), burn.HoldAmount)
	require.Equal(t, sdkmath.NewInt(8), f.hold.BalanceOf(treasury))
}

func TestBurn_BonusUnlockAfterFullReturn(t *testing.T) {
	f := newFixture(t, nil)
	f.mintAll(t)
	f.returnAll(t)

	// Locked for a full day after the full return.
	require.False(t, f.pool.BonusesUnlocked())
	quote, err := f.pool.QuoteBurn(sdkmath.NewInt(250))
	require.NoError(t, err)
	require.True(t, quote.BonusAmount.IsZero())

	f.now += SecondsPerDay
	require.True(t, f.pool.BonusesUnlocked())

	burn, err := f.pool.Burn(participant, sdkmath.NewInt(250), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(250), burn.BonusAmount)
	require.Equal(t, sdkmath.NewInt(250), burn.EligibleRwaAmount)

	snap := f.pool.Snapshot()
	require.Equal(t, sdkmath.NewInt(750), snap.State.Bonus.AwaitingBonusAmount)
	require.Equal(t, sdkmath.NewInt(250), snap.State.Bonus.RewardedRwaAmount)
}

func TestBurn_AwaitCompletionHoldsBonus(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.AwaitCompletionExpired = true
	})
	f.mintAll(t)
	f.returnAll(t)

	// Even a fully returned pool keeps bonuses locked until the completion
	// period expires when configured to wait for it.
	f.now += 10 * SecondsPerDay
	require.False(t, f.pool.BonusesUnlocked())

	f.now = testCompletionExpired
	require.True(t, f.pool.BonusesUnlocked())
}

func TestBurn_FullSettlementDrainsPool(t *testing.T) {
	f := newFixture(t, nil)
	f.mintAll(t)
	f.returnAll(t)
	f.now += SecondsPerDay

	first, err := f.pool.Burn(participant, sdkmath.NewInt(250), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)
	second, err := f.pool.Burn(participant, sdkmath.NewInt(750), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.NoError(t, err)

	// Principal and bonus both settle in full across the two burns.
	holdTotal := first.HoldAmount.Add(second.HoldAmount)
	bonusTotal := first.BonusAmount.Add(second.BonusAmount)
	require.Equal(t, sdkmath.NewInt(10_000), holdTotal)
	require.Equal(t, sdkmath.NewInt(1_000), bonusTotal)

	snap := f.pool.Snapshot()
	require.True(t, snap.State.AwaitingRwaAmount.IsZero())
	require.True(t, snap.State.Reserves.RealHoldReserve.IsZero())
	require.True(t, snap.State.Bonus.AwaitingBonusAmount.IsZero())
	require.True(t, f.rwa.TotalSupply(1).IsZero())
}

func TestBurn_RollbackWithoutClaims(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	before := f.pool.Snapshot()
	_, err = f.pool.Burn("stranger", sdkmath.NewInt(100), sdkmath.ZeroInt(), sdkmath.ZeroInt(), farFuture)
	require.Error(t, err)

	after := f.pool.Snapshot()
	require.Equal(t, before.State, after.State)
}
