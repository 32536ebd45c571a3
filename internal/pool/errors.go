package pool

import "errors"

// Precondition violations. Fully recoverable: the caller can retry with
// corrected parameters, nothing persisted.
var (
	ErrPaused            = errors.New("pool is paused")
	ErrFullyReturned     = errors.New("pool is fully returned")
	ErrEntryNotStarted   = errors.New("entry period has not started")
	ErrEntryExpired      = errors.New("entry period has expired")
	ErrCompletionExpired = errors.New("completion period has expired")
	ErrEntryBurnLocked   = errors.New("burn is locked until entry period expires")
	ErrDeadlineExpired   = errors.New("quote deadline has passed")
	ErrSlippageExceeded  = errors.New("slippage bound exceeded")
	ErrTargetNotReached  = errors.New("funding target not reached")
	ErrNotOwner          = errors.New("caller is not the pool owner")
	ErrAlreadyClaimed    = errors.New("outgoing tranche already claimed")
	ErrNotYetAvailable   = errors.New("outgoing tranche not yet available")
	ErrZeroBatch         = errors.New("nothing claimable in batch")
	ErrNoAmountApplied   = errors.New("no amount applied to incoming tranches")
	ErrInvalidIndex      = errors.New("tranche index out of range")
	ErrZeroAmount        = errors.New("amount must be positive")
)

// Invariant violations. Defensive checks that signal configuration or
// prior-state inconsistency; the call aborts and the pool keeps its prior
// consistent state.
var (
	ErrInsufficientReserveForTranches = errors.New("real reserve below expected hold amount at target")
	ErrInsufficientBalance            = errors.New("outgoing claimable balance underflow")
)
