/*

Operation receipts and pool snapshots: the audit trail the service persists
after every mutating pool operation and the read-surface view served over HTTP.

*/

package types

import (
	"cosmossdk.io/math"
)

type OperationType string

const (
	OperationMint           OperationType = "mint"
	OperationBurn           OperationType = "burn"
	OperationClaimOutgoing  OperationType = "claim_outgoing"
	OperationReturnIncoming OperationType = "return_incoming"
)

// OperationReceipt records one mutating entry-point call, successful or not.
// Failed calls carry the failure message and zero amounts; by the atomicity
// contract they left no state behind.
type OperationReceipt struct {
	ReceiptID   string        `json:"receipt_id"`
	PoolID      PoolID        `json:"pool_id"`
	Operation   OperationType `json:"operation"`
	Caller      string        `json:"caller"`
	RwaAmount   math.Int      `json:"rwa_amount"`
	HoldAmount  math.Int      `json:"hold_amount"`
	BonusAmount math.Int      `json:"bonus_amount"`
	Success     bool          `json:"success"`
	Message     string        `json:"message,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}

// PoolSnapshot is a point-in-time view of a pool: configuration, accounting
// state and both tranche ledgers. It backs the HTTP read surface and the
// persisted snapshot history.
type PoolSnapshot struct {
	Config   PoolConfig        `json:"config"`
	State    PoolState         `json:"state"`
	Outgoing []OutgoingTranche `json:"outgoing_tranches"`
	Incoming []IncomingTranche `json:"incoming_tranches"`
	Paused   bool              `json:"paused"`
	TakenAt  int64             `json:"taken_at"`
}
