package pool

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/curve"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

func TestMint_PhaseGating(t *testing.T) {
	f := newFixture(t, nil)
	amount := sdkmath.NewInt(100)
	maxHold := sdkmath.NewInt(10_000)

	f.now = testEntryStart - 1
	_, err := f.pool.Mint(participant, amount, maxHold, farFuture, false)
	require.ErrorIs(t, err, ErrEntryNotStarted)

	f.now = testEntryExpired
	_, err = f.pool.Mint(participant, amount, maxHold, farFuture, false)
	require.ErrorIs(t, err, ErrEntryExpired)

	f.now = testCompletionExpired
	_, err = f.pool.Mint(participant, amount, maxHold, farFuture, false)
	require.ErrorIs(t, err, ErrCompletionExpired)
}

func TestMint_Paused(t *testing.T) {
	f := newFixture(t, nil)
	f.registry.SetPaused(true)

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.ErrorIs(t, err, ErrPaused)
}

func TestMint_DeadlineExpired(t *testing.T) {
	f := newFixture(t, nil)
	f.now = testEntryStart + 100

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), f.now-1, false)
	require.ErrorIs(t, err, ErrDeadlineExpired)
}

func TestMint_SlippageBound(t *testing.T) {
	f := newFixture(t, nil)

	// The quote for 100 units is 847; a max one unit below it must refuse.
	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(846), farFuture, false)
	require.ErrorIs(t, err, ErrSlippageExceeded)

	quote, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(847), farFuture, false)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(847), quote.HoldAmountWithFee)
}

func TestMint_QuoteMatchesExecution(t *testing.T) {
	f := newFixture(t, nil)

	quoted, err := f.pool.QuoteMint(sdkmath.NewInt(250), false)
	require.NoError(t, err)

	executed, err := f.pool.Mint(participant, sdkmath.NewInt(250), sdkmath.NewInt(100_000), farFuture, false)
	require.NoError(t, err)
	require.Equal(t, quoted, executed)
}

func TestMint_MovesFundsAndIssuesClaims(t *testing.T) {
	f := newFixture(t, nil)

	quote, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)

	require.Equal(t, sdkmath.NewInt(1_000_000).Sub(quote.HoldAmountWithFee), f.hold.BalanceOf(participant))
	require.Equal(t, quote.HoldAmountWithFee, f.hold.BalanceOf(f.pool.address()))
	require.Equal(t, sdkmath.NewInt(100), f.rwa.BalanceOf(participant, 1))

	snap := f.pool.Snapshot()
	require.Equal(t, sdkmath.NewInt(100), snap.State.AwaitingRwaAmount)
	require.Equal(t, quote.HoldAmountWithFee, snap.State.Reserves.RealHoldReserve)
	require.Equal(t, sdkmath.NewInt(5_900), snap.State.Reserves.VirtualRwaReserve)
}

func TestMint_EntryFeeGoesToTreasury(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.EntryFeePercent = sdkmath.LegacyMustNewDecFromStr("0.01")
	})

	quote, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(8), quote.FeeAmount)
	require.Equal(t, sdkmath.NewInt(8), f.hold.BalanceOf(treasury))

	// The fee never enters the real reserve.
	snap := f.pool.Snapshot()
	require.Equal(t, sdkmath.NewInt(847), snap.State.Reserves.RealHoldReserve)
}

func TestMint_PartialFill(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.pool.Mint(participant, sdkmath.NewInt(950), sdkmath.NewInt(100_000), farFuture, false)
	require.NoError(t, err)

	_, err = f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(100_000), farFuture, false)
	require.ErrorIs(t, err, curve.ErrExceedsFixedSupply)

	quote, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(100_000), farFuture, true)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(50), quote.ActualRwaAmount)
	require.Equal(t, sdkmath.NewInt(1_000), f.rwa.BalanceOf(participant, 1))
}

func TestMint_TargetReachedShiftsReserves(t *testing.T) {
	f := newFixture(t, nil)
	f.mintAll(t)

	snap := f.pool.Snapshot()
	require.True(t, snap.State.Bonus.IsTargetReached)
	require.True(t, snap.State.Reserves.RealHoldReserve.IsZero())
	require.Equal(t, sdkmath.NewInt(60_000), snap.State.Reserves.VirtualHoldReserve)
	require.Equal(t, sdkmath.NewInt(10_000), snap.State.OutgoingClaimableBalance)

	// The shift reclassifies value; k stays at its constructed value.
	require.Equal(t, sdkmath.NewInt(300_000_000), snap.State.Reserves.K)
}

func TestMint_TargetAcrossMultipleCalls(t *testing.T) {
	f := newFixture(t, nil)

	for _, amount := range []int64{400, 400, 200} {
		_, err := f.pool.Mint(participant, sdkmath.NewInt(amount), sdkmath.NewInt(100_000), farFuture, false)
		require.NoError(t, err)
	}

	require.True(t, f.pool.IsTargetReached())
	snap := f.pool.Snapshot()
	require.Equal(t, sdkmath.NewInt(10_000), snap.State.OutgoingClaimableBalance)
}

func TestMint_AfterTargetEntryWindowStaysOpen(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.FixedSell = false
	})
	f.mintAll(t)

	// Once the target is reached the entry expiry no longer gates minting.
	f.now = testEntryExpired + SecondsPerDay
	_, err := f.pool.Mint(participant, sdkmath.NewInt(10), sdkmath.NewInt(100_000), farFuture, false)
	require.NoError(t, err)
}

func TestMint_FloatingOffsetEarnedAtTarget(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.FloatingOutTranchesTimestamps = true
	})

	f.now = testEntryExpired - 3*SecondsPerDay
	f.mintAll(t)

	snap := f.pool.Snapshot()
	require.Equal(t, 2*SecondsPerDay, snap.State.FloatingTimestampOffset)
}

func TestMint_FloatingOffsetFlooredAtOneDay(t *testing.T) {
	f := newFixture(t, func(cfg *types.PoolConfig) {
		cfg.FloatingOutTranchesTimestamps = true
	})

	// Reaching the target less than a day early earns no offset.
	f.now = testEntryExpired - SecondsPerDay/2
	f.mintAll(t)

	snap := f.pool.Snapshot()
	require.Zero(t, snap.State.FloatingTimestampOffset)
}

func TestMint_RollbackOnClaimMintFailure(t *testing.T) {
	f := newFixture(t, nil)

	// Zero allowance makes the funds pull fail before any state mutates.
	f.hold.Approve(participant, f.pool.address(), sdkmath.ZeroInt())

	before := f.pool.Snapshot()
	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.Error(t, err)

	after := f.pool.Snapshot()
	require.Equal(t, before.State, after.State)
	require.Equal(t, sdkmath.NewInt(1_000_000), f.hold.BalanceOf(participant))
	require.True(t, f.rwa.BalanceOf(participant, 1).IsZero())
}

func TestMint_BlockedAfterFullReturn(t *testing.T) {
	f := newFixture(t, nil)
	f.mintAll(t)
	f.returnAll(t)

	_, err := f.pool.Mint(participant, sdkmath.NewInt(10), sdkmath.NewInt(100_000), farFuture, false)
	require.ErrorIs(t, err, ErrFullyReturned)
}
