/*

In-memory implementations of the ledger capabilities. They back the demo mode
and the engine tests. Same interface as a production integration, no external
system behind it.

*/

package ledger

import (
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAmount         = errors.New("amount must be positive")
)

// InMemoryHoldLedger is an account/allowance map guarded by a mutex.
type InMemoryHoldLedger struct {
	mu         sync.Mutex
	balances   map[string]sdkmath.Int
	allowances map[string]map[string]sdkmath.Int // owner -> spender -> allowance
}

func NewInMemoryHoldLedger() *InMemoryHoldLedger {
	return &InMemoryHoldLedger{
		balances:   make(map[string]sdkmath.Int),
		allowances: make(map[string]map[string]sdkmath.Int),
	}
}

// SetBalance seeds an account balance, replacing any previous value.
func (l *InMemoryHoldLedger) SetBalance(account string, amount sdkmath.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = amount
}

// Approve grants spender the right to move up to amount out of owner's account.
func (l *InMemoryHoldLedger) Approve(owner, spender string, amount sdkmath.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[string]sdkmath.Int)
	}
	l.allowances[owner][spender] = amount
}

func (l *InMemoryHoldLedger) BalanceOf(account string) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(account)
}

func (l *InMemoryHoldLedger) balanceOf(account string) sdkmath.Int {
	if b, ok := l.balances[account]; ok {
		return b
	}
	return sdkmath.ZeroInt()
}

func (l *InMemoryHoldLedger) Transfer(from, to string, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

func (l *InMemoryHoldLedger) TransferFrom(spender, from, to string, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}
	allowance := sdkmath.ZeroInt()
	if byOwner, ok := l.allowances[from]; ok {
		if a, ok := byOwner[spender]; ok {
			allowance = a
		}
	}
	if allowance.LT(amount) {
		return fmt.Errorf("%w: spender %s has %s of %s's funds, needs %s",
			ErrInsufficientAllowance, spender, allowance, from, amount)
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.allowances[from][spender] = allowance.Sub(amount)
	return nil
}

func (l *InMemoryHoldLedger) move(from, to string, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}
	balance := l.balanceOf(from)
	if balance.LT(amount) {
		return fmt.Errorf("%w: account %s has %s, needs %s", ErrInsufficientFunds, from, balance, amount)
	}
	l.balances[from] = balance.Sub(amount)
	l.balances[to] = l.balanceOf(to).Add(amount)
	return nil
}

// InMemoryRwaLedger tracks claim-token balances per (holder, id).
type InMemoryRwaLedger struct {
	mu       sync.Mutex
	balances map[uint64]map[string]sdkmath.Int
	supply   map[uint64]sdkmath.Int
}

func NewInMemoryRwaLedger() *InMemoryRwaLedger {
	return &InMemoryRwaLedger{
		balances: make(map[uint64]map[string]sdkmath.Int),
		supply:   make(map[uint64]sdkmath.Int),
	}
}

func (l *InMemoryRwaLedger) Mint(holder string, id uint64, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if l.balances[id] == nil {
		l.balances[id] = make(map[string]sdkmath.Int)
	}
	l.balances[id][holder] = l.balanceOf(holder, id).Add(amount)
	l.supply[id] = l.supplyOf(id).Add(amount)
	return nil
}

func (l *InMemoryRwaLedger) Burn(holder string, id uint64, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}
	balance := l.balanceOf(holder, id)
	if balance.LT(amount) {
		return fmt.Errorf("%w: holder %s has %s of claim %d, needs %s",
			ErrInsufficientFunds, holder, balance, id, amount)
	}
	l.balances[id][holder] = balance.Sub(amount)
	l.supply[id] = l.supplyOf(id).Sub(amount)
	return nil
}

func (l *InMemoryRwaLedger) BalanceOf(holder string, id uint64) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(holder, id)
}

// TotalSupply reports the outstanding supply of a claim id.
func (l *InMemoryRwaLedger) TotalSupply(id uint64) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supplyOf(id)
}

func (l *InMemoryRwaLedger) balanceOf(holder string, id uint64) sdkmath.Int {
	if byHolder, ok := l.balances[id]; ok {
		if b, ok := byHolder[holder]; ok {
			return b
		}
	}
	return sdkmath.ZeroInt()
}

func (l *InMemoryRwaLedger) supplyOf(id uint64) sdkmath.Int {
	if s, ok := l.supply[id]; ok {
		return s
	}
	return sdkmath.ZeroInt()
}

// StaticRegistry is a fixed treasury address plus a toggleable pause flag.
type StaticRegistry struct {
	mu           sync.Mutex
	treasuryAddr string
	paused       bool
}

func NewStaticRegistry(treasury string) *StaticRegistry {
	return &StaticRegistry{treasuryAddr: treasury}
}

func (r *StaticRegistry) Treasury() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.treasuryAddr
}

func (r *StaticRegistry) IsPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// SetPaused flips the governance pause flag.
func (r *StaticRegistry) SetPaused(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = paused
}
