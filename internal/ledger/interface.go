package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// HoldLedger defines the capability interface for the unit-of-account ledger
// shared across all pools and participants. The pool engine treats it as a
// synchronous collaborator whose transfers either fully succeed or fail
// atomically; a failed transfer aborts the whole pool operation.
type HoldLedger interface {
	// Transfer moves amount from one account to another. The caller must be
	// entitled to spend from the source account.
	Transfer(from, to string, amount sdkmath.Int) error

	// TransferFrom moves amount from `from` to `to` on behalf of spender,
	// consuming `from`'s allowance granted to spender.
	TransferFrom(spender, from, to string, amount sdkmath.Int) error

	// BalanceOf reports the current balance of an account.
	BalanceOf(account string) sdkmath.Int
}

// RwaLedger defines the capability interface for the project-specific fungible
// claim token. Mint/burn authority for a given claim id is granted to the pool
// by the deployment gateway.
type RwaLedger interface {
	Mint(holder string, id uint64, amount sdkmath.Int) error
	Burn(holder string, id uint64, amount sdkmath.Int) error
	BalanceOf(holder string, id uint64) sdkmath.Int
}

// Registry is the constructor-injected read-only capability bundle: treasury
// routing and the governance pause flag. Pools hold it by reference and never
// cache its answers.
type Registry interface {
	// Treasury returns the account receiving entry and exit fees.
	Treasury() string

	// IsPaused reports whether governance has paused pool operations.
	IsPaused() bool
}
