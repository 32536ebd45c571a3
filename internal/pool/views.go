package pool

import (
	sdkmath "cosmossdk.io/math"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/curve"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// Snapshot returns a point-in-time copy of the pool: config, accounting state
// and both tranche ledgers. Read-only, safe to serialize.
func (p *Pool) Snapshot() types.PoolSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	outgoing := make([]types.OutgoingTranche, len(p.outgoing))
	copy(outgoing, p.outgoing)
	incoming := make([]types.IncomingTranche, len(p.incoming))
	copy(incoming, p.incoming)

	return types.PoolSnapshot{
		Config:   p.cfg,
		State:    p.state,
		Outgoing: outgoing,
		Incoming: incoming,
		Paused:   p.registry.IsPaused(),
		TakenAt:  p.now(),
	}
}

// OutgoingTranches returns a copy of the outgoing disbursement schedule.
func (p *Pool) OutgoingTranches() []types.OutgoingTranche {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.OutgoingTranche, len(p.outgoing))
	copy(out, p.outgoing)
	return out
}

// IncomingTranches returns a copy of the incoming repayment schedule.
func (p *Pool) IncomingTranches() []types.IncomingTranche {
	p.mu.Lock()
	defer p.mu.Unlock()
	in := make([]types.IncomingTranche, len(p.incoming))
	copy(in, p.incoming)
	return in
}

// QuoteMint prices a mint without side effects, for UI display and
// slippage-bound computation by callers.
func (p *Pool) QuoteMint(rwaAmount sdkmath.Int, allowPartial bool) (types.MintQuote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return curve.QuoteMint(p.cfg, p.policy, p.state.Reserves, p.state.AwaitingRwaAmount, rwaAmount, allowPartial)
}

// QuoteBurn prices a burn without side effects.
func (p *Pool) QuoteBurn(rwaAmount sdkmath.Int) (types.BurnQuote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return curve.QuoteBurn(p.cfg, p.state.Reserves, p.state.Bonus, p.state.AwaitingRwaAmount, rwaAmount, p.bonusesUnlocked(p.now()))
}

// IsTargetReached reports whether the funding target transition has happened.
func (p *Pool) IsTargetReached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Bonus.IsTargetReached
}

// IsFullyReturned reports whether principal plus bonus has been repaid in full.
func (p *Pool) IsFullyReturned() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Bonus.IsFullyReturned
}
