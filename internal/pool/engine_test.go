package pool

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/ledger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

const (
	testEntryStart        int64 = 1_000
	testEntryExpired      int64 = testEntryStart + 7*SecondsPerDay
	testCompletionExpired int64 = testEntryStart + 90*SecondsPerDay

	participant = "alice"
	owner       = "project-owner"
	treasury    = "treasury"
	farFuture   = testCompletionExpired + 365*SecondsPerDay
)

// fixture wires a pool over in-memory ledgers with a settable clock. The
// canonical shape: 10k expected hold, 1k claim units, coefficient 5, 10%
// reward, zero fees unless a test overrides them.
type fixture struct {
	pool     *Pool
	hold     *ledger.InMemoryHoldLedger
	rwa      *ledger.InMemoryRwaLedger
	registry *ledger.StaticRegistry
	now      int64
}

func newFixture(t *testing.T, mutate func(*types.PoolConfig)) *fixture {
	t.Helper()

	cfg := types.PoolConfig{
		PoolID:               "pool-test",
		HoldDenom:            "usd",
		RwaID:                1,
		Owner:                owner,
		ExpectedHoldAmount:   sdkmath.NewInt(10_000),
		ExpectedRwaAmount:    sdkmath.NewInt(1_000),
		ExpectedBonusAmount:  sdkmath.NewInt(1_000),
		PriceImpactPercent:   sdkmath.LegacyZeroDec(),
		LiquidityCoefficient: sdkmath.NewInt(5),
		EntryFeePercent:      sdkmath.LegacyZeroDec(),
		ExitFeePercent:       sdkmath.LegacyZeroDec(),
		RewardPercent:        sdkmath.LegacyMustNewDecFromStr("0.10"),

		EntryPeriodStart:        testEntryStart,
		EntryPeriodExpired:      testEntryExpired,
		CompletionPeriodExpired: testCompletionExpired,

		FixedSell:      true,
		AllowEntryBurn: true,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	hold := ledger.NewInMemoryHoldLedger()
	rwa := ledger.NewInMemoryRwaLedger()
	registry := ledger.NewStaticRegistry(treasury)

	pl, err := New(Params{
		Config: cfg,
		Outgoing: []types.OutgoingTranche{
			{Amount: sdkmath.NewInt(5_000), ReleaseTimestamp: testEntryExpired + SecondsPerDay},
			{Amount: sdkmath.NewInt(5_000), ReleaseTimestamp: testEntryExpired + 8*SecondsPerDay},
		},
		Incoming: []types.IncomingTranche{
			{Amount: sdkmath.NewInt(6_000), ExpiryTimestamp: testEntryExpired + 40*SecondsPerDay},
			{Amount: sdkmath.NewInt(5_000), ExpiryTimestamp: testEntryExpired + 75*SecondsPerDay},
		},
		Hold:     hold,
		Rwa:      rwa,
		Registry: registry,
	})
	require.NoError(t, err)

	f := &fixture{pool: pl, hold: hold, rwa: rwa, registry: registry, now: testEntryStart}
	pl.SetNowFunc(func() int64 { return f.now })

	// Participants pre-fund and pre-approve generously; individual tests
	// tighten these when the failure path is the subject.
	poolAddr := pl.address()
	for _, account := range []string{participant, owner} {
		hold.SetBalance(account, sdkmath.NewInt(1_000_000))
		hold.Approve(account, poolAddr, sdkmath.NewInt(1_000_000))
	}

	return f
}

// mintAll buys the entire fixed supply, driving the pool to its target.
func (f *fixture) mintAll(t *testing.T) {
	t.Helper()
	quote, err := f.pool.Mint(participant, sdkmath.NewInt(1_000), sdkmath.NewInt(100_000), farFuture, false)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1_000), quote.ActualRwaAmount)
	require.True(t, f.pool.IsTargetReached())
}

// returnAll repays principal plus bonus in full across both incoming tranches.
func (f *fixture) returnAll(t *testing.T) {
	t.Helper()
	applied, err := f.pool.ReturnIncomingTranche(owner, sdkmath.NewInt(11_000))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(11_000), applied)
	require.True(t, f.pool.IsFullyReturned())
}

func TestNew_RejectsIncompleteWiring(t *testing.T) {
	cfg := types.PoolConfig{PoolID: "p", Owner: owner,
		ExpectedHoldAmount:   sdkmath.NewInt(1),
		ExpectedRwaAmount:    sdkmath.NewInt(1),
		LiquidityCoefficient: sdkmath.NewInt(1),
	}
	outgoing := []types.OutgoingTranche{{Amount: sdkmath.NewInt(1)}}
	incoming := []types.IncomingTranche{{Amount: sdkmath.NewInt(1)}}
	hold := ledger.NewInMemoryHoldLedger()
	rwa := ledger.NewInMemoryRwaLedger()
	registry := ledger.NewStaticRegistry(treasury)

	_, err := New(Params{Config: cfg, Outgoing: outgoing, Incoming: incoming, Rwa: rwa, Registry: registry})
	require.Error(t, err)

	_, err = New(Params{Config: cfg, Outgoing: outgoing, Incoming: incoming, Hold: hold, Registry: registry})
	require.Error(t, err)

	_, err = New(Params{Config: cfg, Outgoing: nil, Incoming: incoming, Hold: hold, Rwa: rwa, Registry: registry})
	require.Error(t, err)
}

func TestReceiptHook_EmittedOutsideLock(t *testing.T) {
	f := newFixture(t, nil)

	var receipts []types.OperationReceipt
	f.pool.SetReceiptHook(func(r types.OperationReceipt) {
		// Taking a snapshot re-acquires the pool mutex; the hook must run
		// after the entry point released it.
		_ = f.pool.Snapshot()
		receipts = append(receipts, r)
	})

	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	require.Equal(t, types.OperationMint, receipts[0].Operation)
	require.True(t, receipts[0].Success)
	require.Equal(t, sdkmath.NewInt(100), receipts[0].RwaAmount)
}

func TestReceiptHook_FailureZeroesAmounts(t *testing.T) {
	f := newFixture(t, nil)

	var receipts []types.OperationReceipt
	f.pool.SetReceiptHook(func(r types.OperationReceipt) { receipts = append(receipts, r) })

	f.now = testEntryStart - 1
	_, err := f.pool.Mint(participant, sdkmath.NewInt(100), sdkmath.NewInt(10_000), farFuture, false)
	require.ErrorIs(t, err, ErrEntryNotStarted)

	require.Len(t, receipts, 1)
	require.False(t, receipts[0].Success)
	require.Equal(t, ErrEntryNotStarted.Error(), receipts[0].Message)
	require.True(t, receipts[0].RwaAmount.IsZero())
	require.True(t, receipts[0].HoldAmount.IsZero())
}
