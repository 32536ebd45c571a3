package types

import (
	"cosmossdk.io/math"
)

// MintQuote is the price of acquiring ActualRwaAmount claim units. The fee is
// already folded into HoldAmountWithFee.
type MintQuote struct {
	HoldAmountWithFee math.Int `json:"hold_amount_with_fee"`
	FeeAmount         math.Int `json:"fee_amount"`
	ActualRwaAmount   math.Int `json:"actual_rwa_amount"`
}

// BurnQuote is the payout for returning claim units: principal leg and, when
// bonuses are unlocked, the pro-rata bonus leg. Fee fields are the treasury cut
// already subtracted from the corresponding output.
type BurnQuote struct {
	HoldAmount        math.Int `json:"hold_amount"`
	HoldFeeAmount     math.Int `json:"hold_fee_amount"`
	BonusAmount       math.Int `json:"bonus_amount"`
	BonusFeeAmount    math.Int `json:"bonus_fee_amount"`
	EligibleRwaAmount math.Int `json:"eligible_rwa_amount"`
}
