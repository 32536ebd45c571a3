/*

This is the data model for a single settlement pool: the immutable configuration
supplied by the deployment gateway and the mutable accounting state the engine
maintains over the pool's lifecycle.

*/

package types

import (
	"cosmossdk.io/math"
)

type PoolID string

// PoolConfig is immutable after construction. The gateway validates every field
// against its range policy before a pool is instantiated; the pool itself never
// re-validates them.
type PoolConfig struct {
	PoolID    PoolID `json:"pool_id"`
	HoldDenom string `json:"hold_denom"` // unit-of-account reference
	RwaID     uint64 `json:"rwa_id"`     // claim-token id on the claim ledger
	Owner     string `json:"owner"`      // project owner identity

	ExpectedHoldAmount  math.Int `json:"expected_hold_amount"`
	ExpectedRwaAmount   math.Int `json:"expected_rwa_amount"`
	ExpectedBonusAmount math.Int `json:"expected_bonus_amount"` // ExpectedHoldAmount x RewardPercent

	PriceImpactPercent   math.LegacyDec `json:"price_impact_percent"`
	LiquidityCoefficient math.Int       `json:"liquidity_coefficient"`
	EntryFeePercent      math.LegacyDec `json:"entry_fee_percent"`
	ExitFeePercent       math.LegacyDec `json:"exit_fee_percent"`
	RewardPercent        math.LegacyDec `json:"reward_percent"`

	// Unix seconds. EntryPeriodStart < EntryPeriodExpired < CompletionPeriodExpired.
	EntryPeriodStart        int64 `json:"entry_period_start"`
	EntryPeriodExpired      int64 `json:"entry_period_expired"`
	CompletionPeriodExpired int64 `json:"completion_period_expired"`

	FixedSell                     bool `json:"fixed_sell"`
	AllowEntryBurn                bool `json:"allow_entry_burn"`
	AwaitCompletionExpired        bool `json:"await_completion_expired"`
	FloatingOutTranchesTimestamps bool `json:"floating_out_tranches_timestamps"`
}

// ReserveState holds the constant-product pricing reserves. K is fixed at
// construction and left untouched by the deliberate target-reached shift, which
// only reclassifies already-counted value between the real and virtual buckets.
type ReserveState struct {
	RealHoldReserve    math.Int `json:"real_hold_reserve"`
	VirtualHoldReserve math.Int `json:"virtual_hold_reserve"`
	VirtualRwaReserve  math.Int `json:"virtual_rwa_reserve"`
	K                  math.Int `json:"k"`
}

// BonusState tracks reward accrual from over-repayment and the eligibility
// window for distributing it to remaining claim-token holders.
type BonusState struct {
	AwaitingBonusAmount math.Int `json:"awaiting_bonus_amount"` // repaid beyond principal, not yet claimed
	RewardedRwaAmount   math.Int `json:"rewarded_rwa_amount"`   // claim units already counted against eligibility
	IsTargetReached     bool     `json:"is_target_reached"`
	IsFullyReturned     bool     `json:"is_fully_returned"`
	FullReturnTimestamp int64    `json:"full_return_timestamp"`
}

// PoolState is the full mutable state of a pool. Copying the struct is a valid
// checkpoint: math.Int values are never mutated in place by the engine.
type PoolState struct {
	Reserves ReserveState `json:"reserves"`
	Bonus    BonusState   `json:"bonus"`

	AwaitingRwaAmount        math.Int `json:"awaiting_rwa_amount"` // claim-token supply outstanding
	TotalReturnedAmount      math.Int `json:"total_returned_amount"`
	OutgoingClaimableBalance math.Int `json:"outgoing_claimable_balance"`

	FloatingTimestampOffset      int64 `json:"floating_timestamp_offset"` // pulls outgoing releases earlier
	LastCompletedIncomingTranche int   `json:"last_completed_incoming_tranche"`
}

// NewPoolState returns the zero accounting state over the given initial reserves.
func NewPoolState(reserves ReserveState) PoolState {
	return PoolState{
		Reserves: reserves,
		Bonus: BonusState{
			AwaitingBonusAmount: math.ZeroInt(),
			RewardedRwaAmount:   math.ZeroInt(),
		},
		AwaitingRwaAmount:        math.ZeroInt(),
		TotalReturnedAmount:      math.ZeroInt(),
		OutgoingClaimableBalance: math.ZeroInt(),
	}
}
