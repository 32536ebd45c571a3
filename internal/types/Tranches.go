/*

Tranche entries for the two scheduled value-movement ledgers: outgoing
disbursements to the project owner and incoming repayments from it.

*/

package types

import (
	"cosmossdk.io/math"
)

// OutgoingTranche is a scheduled disbursement. Claims are all-or-nothing per
// entry: ClaimedAmount is either zero or Amount, never in between.
// The gateway guarantees sum(Amount) == ExpectedHoldAmount.
type OutgoingTranche struct {
	Amount           math.Int `json:"amount"`
	ReleaseTimestamp int64    `json:"release_timestamp"` // unix seconds, effective release may be earlier in floating mode
	ClaimedAmount    math.Int `json:"claimed_amount"`
}

// Claimed reports whether the entry has already been disbursed.
func (t OutgoingTranche) Claimed() bool {
	return !t.ClaimedAmount.IsZero()
}

// IncomingTranche is a scheduled repayment, partially fillable.
// The gateway guarantees sum(Amount) == ExpectedHoldAmount + ExpectedBonusAmount.
type IncomingTranche struct {
	Amount          math.Int `json:"amount"`
	ExpiryTimestamp int64    `json:"expiry_timestamp"`
	ReturnedAmount  math.Int `json:"returned_amount"`
}

// Remaining returns the amount still due on the entry.
func (t IncomingTranche) Remaining() math.Int {
	return t.Amount.Sub(t.ReturnedAmount)
}

// Completed reports whether the entry has been fully returned.
func (t IncomingTranche) Completed() bool {
	return t.ReturnedAmount.Equal(t.Amount)
}
