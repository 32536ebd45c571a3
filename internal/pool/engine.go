/*

This is the pool engine: one instance per deployed pool, orchestrating the
reserve curve, the two tranche ledgers and the bonus accounting against the
external unit-of-account and claim-token ledgers.

Every mutating entry point runs under the pool mutex (the non-reentrancy
guard), checkpoints the accounting state on entry and journals every external
transfer. On any failure the checkpoint is restored and the journal's
compensating transfers run in reverse, so each call is all-or-nothing.

*/

package pool

import (
	"fmt"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/curve"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/ledger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/logger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// SecondsPerDay is the floor on the floating-timestamp early reserve and the
// post-full-return bonus unlock delay.
const SecondsPerDay int64 = 24 * 60 * 60

// ReceiptHook receives a receipt after every mutating entry-point call.
type ReceiptHook func(types.OperationReceipt)

// Pool is a single settlement pool instance. The gateway constructs it with a
// fully validated config; the pool performs no range validation of its own.
type Pool struct {
	cfg      types.PoolConfig
	state    types.PoolState
	outgoing []types.OutgoingTranche
	incoming []types.IncomingTranche

	hold     ledger.HoldLedger
	rwa      ledger.RwaLedger
	registry ledger.Registry
	policy   curve.SupplyPolicy

	mu        sync.Mutex
	nowFn     func() int64
	logger    zerolog.Logger
	onReceipt ReceiptHook
}

// Params carries the validated construction inputs supplied by the gateway.
type Params struct {
	Config   types.PoolConfig
	Outgoing []types.OutgoingTranche
	Incoming []types.IncomingTranche

	Hold     ledger.HoldLedger
	Rwa      ledger.RwaLedger
	Registry ledger.Registry
}

// New creates a pool over the given capabilities. It only checks that the
// wiring is complete; parameter-range validation is the gateway's job.
func New(p Params) (*Pool, error) {
	if err := validateParams(p); err != nil {
		return nil, fmt.Errorf("pool construction failed: %w", err)
	}

	outgoing := make([]types.OutgoingTranche, len(p.Outgoing))
	copy(outgoing, p.Outgoing)
	incoming := make([]types.IncomingTranche, len(p.Incoming))
	copy(incoming, p.Incoming)
	for i := range outgoing {
		if outgoing[i].ClaimedAmount.IsNil() {
			outgoing[i].ClaimedAmount = sdkmath.ZeroInt()
		}
	}
	for i := range incoming {
		if incoming[i].ReturnedAmount.IsNil() {
			incoming[i].ReturnedAmount = sdkmath.ZeroInt()
		}
	}

	reserves := curve.InitialReserves(
		p.Config.ExpectedHoldAmount,
		p.Config.ExpectedRwaAmount,
		p.Config.LiquidityCoefficient,
	)

	pool := &Pool{
		cfg:      p.Config,
		state:    types.NewPoolState(reserves),
		outgoing: outgoing,
		incoming: incoming,
		hold:     p.Hold,
		rwa:      p.Rwa,
		registry: p.Registry,
		policy:   curve.PolicyFor(p.Config),
		nowFn:    func() int64 { return time.Now().Unix() },
		logger:   logger.GetForComponent("pool").With().Str("poolId", string(p.Config.PoolID)).Logger(),
	}

	pool.logger.Info().
		Str("owner", p.Config.Owner).
		Str("expectedHold", p.Config.ExpectedHoldAmount.String()).
		Str("expectedRwa", p.Config.ExpectedRwaAmount.String()).
		Str("virtualHold", reserves.VirtualHoldReserve.String()).
		Str("virtualRwa", reserves.VirtualRwaReserve.String()).
		Msg("Pool constructed")

	return pool, nil
}

func validateParams(p Params) error {
	if p.Hold == nil {
		return fmt.Errorf("hold ledger cannot be nil")
	}
	if p.Rwa == nil {
		return fmt.Errorf("rwa ledger cannot be nil")
	}
	if p.Registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	if p.Config.PoolID == "" {
		return fmt.Errorf("pool id cannot be empty")
	}
	if p.Config.Owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if len(p.Outgoing) == 0 {
		return fmt.Errorf("outgoing tranches cannot be empty")
	}
	if len(p.Incoming) == 0 {
		return fmt.Errorf("incoming tranches cannot be empty")
	}
	return nil
}

// SetNowFunc overrides the time source. Primarily intended for tests to
// provide deterministic timestamps. Passing nil restores the wall clock.
func (p *Pool) SetNowFunc(now func() int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if now == nil {
		p.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	p.nowFn = now
}

// SetReceiptHook installs the hook invoked after every mutating call.
func (p *Pool) SetReceiptHook(hook ReceiptHook) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReceipt = hook
}

// ID returns the pool identifier.
func (p *Pool) ID() types.PoolID { return p.cfg.PoolID }

// Config returns the immutable pool configuration.
func (p *Pool) Config() types.PoolConfig { return p.cfg }

func (p *Pool) now() int64 { return p.nowFn() }

// address is the pool's account on the unit-of-account ledger: it holds the
// real reserve and the outgoing-claimable balance.
func (p *Pool) address() string {
	return "pool/" + string(p.cfg.PoolID)
}

// checkpoint captures the mutable accounting state. PoolState copies by value;
// the tranche slices are cloned because their entries mutate in place.
type checkpoint struct {
	state    types.PoolState
	outgoing []types.OutgoingTranche
	incoming []types.IncomingTranche
}

func (p *Pool) takeCheckpoint() checkpoint {
	outgoing := make([]types.OutgoingTranche, len(p.outgoing))
	copy(outgoing, p.outgoing)
	incoming := make([]types.IncomingTranche, len(p.incoming))
	copy(incoming, p.incoming)
	return checkpoint{state: p.state, outgoing: outgoing, incoming: incoming}
}

func (p *Pool) restore(cp checkpoint) {
	p.state = cp.state
	p.outgoing = cp.outgoing
	p.incoming = cp.incoming
}

// journal records compensating actions for already-issued external transfers
// so a failing call can unwind them in reverse order.
type journal struct {
	undo []func() error
}

func (j *journal) record(undo func() error) {
	j.undo = append(j.undo, undo)
}

func (j *journal) unwind(log zerolog.Logger) {
	for i := len(j.undo) - 1; i >= 0; i-- {
		if err := j.undo[i](); err != nil {
			// The external ledger accepted the forward transfer moments ago;
			// a failing compensation means it broke its atomicity contract.
			log.Error().Err(err).Int("step", i).Msg("Failed to unwind external transfer")
		}
	}
}

// pullFunds moves amount from a participant into the pool account and records
// the compensating refund.
func (p *Pool) pullFunds(j *journal, from string, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	if err := p.hold.TransferFrom(p.address(), from, p.address(), amount); err != nil {
		return fmt.Errorf("failed to pull funds from %s: %w", from, err)
	}
	j.record(func() error { return p.hold.Transfer(p.address(), from, amount) })
	return nil
}

// payOut moves amount from the pool account to a recipient and records the
// compensating claw-back.
func (p *Pool) payOut(j *journal, to string, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	if err := p.hold.Transfer(p.address(), to, amount); err != nil {
		return fmt.Errorf("failed to pay out to %s: %w", to, err)
	}
	j.record(func() error { return p.hold.Transfer(to, p.address(), amount) })
	return nil
}

func (p *Pool) emitReceipt(op types.OperationType, caller string, rwaAmount, holdAmount, bonusAmount sdkmath.Int, callErr error) {
	if p.onReceipt == nil {
		return
	}
	receipt := types.OperationReceipt{
		ReceiptID:   uuid.NewString(),
		PoolID:      p.cfg.PoolID,
		Operation:   op,
		Caller:      caller,
		RwaAmount:   rwaAmount,
		HoldAmount:  holdAmount,
		BonusAmount: bonusAmount,
		Success:     callErr == nil,
		Timestamp:   p.now(),
	}
	if callErr != nil {
		receipt.Message = callErr.Error()
		receipt.RwaAmount = sdkmath.ZeroInt()
		receipt.HoldAmount = sdkmath.ZeroInt()
		receipt.BonusAmount = sdkmath.ZeroInt()
	}
	p.onReceipt(receipt)
}

// bonusesUnlocked evaluates the bonus-unlock condition at the given time:
// the completion period has expired, or the pool does not wait for it, is
// fully returned, and a full day has passed since the full return.
func (p *Pool) bonusesUnlocked(now int64) bool {
	if now >= p.cfg.CompletionPeriodExpired {
		return true
	}
	return !p.cfg.AwaitCompletionExpired &&
		p.state.Bonus.IsFullyReturned &&
		now >= p.state.Bonus.FullReturnTimestamp+SecondsPerDay
}

// effectiveReleaseTime is the computed view over an outgoing tranche's stored
// release timestamp: floating mode subtracts the offset earned by reaching the
// target early, keeping the stored schedule auditable.
func (p *Pool) effectiveReleaseTime(stored int64) int64 {
	if p.cfg.FloatingOutTranchesTimestamps && p.state.FloatingTimestampOffset > 0 {
		return stored - p.state.FloatingTimestampOffset
	}
	return stored
}
