/*

This is the deployment gateway: the authority that turns validated deployment
parameters into live Pool instances. All parameter-range policy enforcement
lives here - fees, reward bounds, period ordering, tranche sums and spacing -
so the pool engine can trust its configuration unconditionally.

*/

package gateway

import (
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/config"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/ledger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/logger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/pool"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/utils"
)

var (
	ErrPoolNotFound = errors.New("pool not found")
)

// DeployParams is the raw deployment request validated by the gateway.
type DeployParams struct {
	Owner     string
	HoldDenom string
	RwaID     uint64

	ExpectedHoldAmount   sdkmath.Int
	ExpectedRwaAmount    sdkmath.Int
	LiquidityCoefficient sdkmath.Int
	PriceImpactPercent   sdkmath.LegacyDec
	EntryFeePercent      sdkmath.LegacyDec
	ExitFeePercent       sdkmath.LegacyDec
	RewardPercent        sdkmath.LegacyDec

	EntryPeriodStart        int64
	EntryPeriodExpired      int64
	CompletionPeriodExpired int64

	FixedSell                     bool
	AllowEntryBurn                bool
	AwaitCompletionExpired        bool
	FloatingOutTranchesTimestamps bool

	OutgoingTranches []types.OutgoingTranche
	IncomingTranches []types.IncomingTranche
}

// Gateway validates deployments against its range policy and keeps the
// registry of live pools.
type Gateway struct {
	policy   config.RangePolicy
	hold     ledger.HoldLedger
	rwa      ledger.RwaLedger
	registry ledger.Registry

	mu    sync.RWMutex
	pools map[types.PoolID]*pool.Pool

	logger zerolog.Logger
}

// New creates a gateway over the shared ledger capabilities.
func New(policy config.RangePolicy, hold ledger.HoldLedger, rwa ledger.RwaLedger, registry ledger.Registry) (*Gateway, error) {
	if hold == nil {
		return nil, fmt.Errorf("hold ledger cannot be nil")
	}
	if rwa == nil {
		return nil, fmt.Errorf("rwa ledger cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	return &Gateway{
		policy:   policy,
		hold:     hold,
		rwa:      rwa,
		registry: registry,
		pools:    make(map[types.PoolID]*pool.Pool),
		logger:   logger.GetForComponent("gateway"),
	}, nil
}

// Deploy validates the request, derives the full pool configuration and
// constructs and registers the pool.
func (g *Gateway) Deploy(p DeployParams) (*pool.Pool, error) {
	if err := g.validate(p); err != nil {
		return nil, fmt.Errorf("deployment rejected: %w", err)
	}

	expectedBonus, err := utils.ApplyPercent(p.ExpectedHoldAmount, p.RewardPercent)
	if err != nil {
		return nil, fmt.Errorf("deployment rejected: %w", err)
	}
	if err := g.validateTrancheSums(p, expectedBonus); err != nil {
		return nil, fmt.Errorf("deployment rejected: %w", err)
	}

	cfg := types.PoolConfig{
		PoolID:    types.PoolID(uuid.NewString()),
		HoldDenom: p.HoldDenom,
		RwaID:     p.RwaID,
		Owner:     p.Owner,

		ExpectedHoldAmount:  p.ExpectedHoldAmount,
		ExpectedRwaAmount:   p.ExpectedRwaAmount,
		ExpectedBonusAmount: expectedBonus,

		PriceImpactPercent:   p.PriceImpactPercent,
		LiquidityCoefficient: p.LiquidityCoefficient,
		EntryFeePercent:      p.EntryFeePercent,
		ExitFeePercent:       p.ExitFeePercent,
		RewardPercent:        p.RewardPercent,

		EntryPeriodStart:        p.EntryPeriodStart,
		EntryPeriodExpired:      p.EntryPeriodExpired,
		CompletionPeriodExpired: p.CompletionPeriodExpired,

		FixedSell:                     p.FixedSell,
		AllowEntryBurn:                p.AllowEntryBurn,
		AwaitCompletionExpired:        p.AwaitCompletionExpired,
		FloatingOutTranchesTimestamps: p.FloatingOutTranchesTimestamps,
	}

	pl, err := pool.New(pool.Params{
		Config:   cfg,
		Outgoing: p.OutgoingTranches,
		Incoming: p.IncomingTranches,
		Hold:     g.hold,
		Rwa:      g.rwa,
		Registry: g.registry,
	})
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.pools[cfg.PoolID] = pl
	g.mu.Unlock()

	g.logger.Info().
		Str("poolId", string(cfg.PoolID)).
		Str("owner", cfg.Owner).
		Str("expectedBonus", expectedBonus.String()).
		Msg("Pool deployed")

	return pl, nil
}

// Pool looks up a deployed pool by id.
func (g *Gateway) Pool(id types.PoolID) (*pool.Pool, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	pl, ok := g.pools[id]
	return pl, ok
}

// Pools returns all deployed pools.
func (g *Gateway) Pools() []*pool.Pool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*pool.Pool, 0, len(g.pools))
	for _, pl := range g.pools {
		out = append(out, pl)
	}
	return out
}

func (g *Gateway) validate(p DeployParams) error {
	if p.Owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if p.ExpectedHoldAmount.IsNil() || !p.ExpectedHoldAmount.IsPositive() {
		return fmt.Errorf("expected hold amount must be positive")
	}
	if p.ExpectedRwaAmount.IsNil() || !p.ExpectedRwaAmount.IsPositive() {
		return fmt.Errorf("expected rwa amount must be positive")
	}
	if p.LiquidityCoefficient.IsNil() ||
		p.LiquidityCoefficient.LT(g.policy.MinLiquidityCoefficient) ||
		p.LiquidityCoefficient.GT(g.policy.MaxLiquidityCoefficient) {
		return fmt.Errorf("liquidity coefficient outside [%s, %s]",
			g.policy.MinLiquidityCoefficient, g.policy.MaxLiquidityCoefficient)
	}
	if p.EntryFeePercent.IsNil() || p.EntryFeePercent.IsNegative() || p.EntryFeePercent.GT(g.policy.MaxEntryFeePercent) {
		return fmt.Errorf("entry fee percent outside [0, %s]", g.policy.MaxEntryFeePercent)
	}
	if p.ExitFeePercent.IsNil() || p.ExitFeePercent.IsNegative() || p.ExitFeePercent.GT(g.policy.MaxExitFeePercent) {
		return fmt.Errorf("exit fee percent outside [0, %s]", g.policy.MaxExitFeePercent)
	}
	if p.RewardPercent.IsNil() || p.RewardPercent.LT(g.policy.MinRewardPercent) || p.RewardPercent.GT(g.policy.MaxRewardPercent) {
		return fmt.Errorf("reward percent outside [%s, %s]", g.policy.MinRewardPercent, g.policy.MaxRewardPercent)
	}
	if p.EntryPeriodStart >= p.EntryPeriodExpired {
		return fmt.Errorf("entry period start must precede its expiry")
	}
	if p.EntryPeriodExpired-p.EntryPeriodStart < g.policy.MinEntryPeriodDuration {
		return fmt.Errorf("entry period shorter than %d seconds", g.policy.MinEntryPeriodDuration)
	}
	if p.EntryPeriodExpired >= p.CompletionPeriodExpired {
		return fmt.Errorf("entry period must expire before the completion period")
	}
	if len(p.OutgoingTranches) == 0 || len(p.OutgoingTranches) > g.policy.MaxOutgoingTranches {
		return fmt.Errorf("outgoing tranche count outside [1, %d]", g.policy.MaxOutgoingTranches)
	}
	if len(p.IncomingTranches) == 0 || len(p.IncomingTranches) > g.policy.MaxIncomingTranches {
		return fmt.Errorf("incoming tranche count outside [1, %d]", g.policy.MaxIncomingTranches)
	}
	return nil
}

func (g *Gateway) validateTrancheSums(p DeployParams, expectedBonus sdkmath.Int) error {
	outSum := sdkmath.ZeroInt()
	prev := int64(0)
	for i, t := range p.OutgoingTranches {
		if t.Amount.IsNil() || !t.Amount.IsPositive() {
			return fmt.Errorf("outgoing tranche %d amount must be positive", i)
		}
		if i > 0 && t.ReleaseTimestamp-prev < g.policy.MinTrancheSpacing {
			return fmt.Errorf("outgoing tranche %d closer than %d seconds to its predecessor", i, g.policy.MinTrancheSpacing)
		}
		prev = t.ReleaseTimestamp
		outSum = outSum.Add(t.Amount)
	}
	if !outSum.Equal(p.ExpectedHoldAmount) {
		return fmt.Errorf("outgoing tranches sum %s != expected hold amount %s", outSum, p.ExpectedHoldAmount)
	}

	inSum := sdkmath.ZeroInt()
	prev = 0
	for i, t := range p.IncomingTranches {
		if t.Amount.IsNil() || !t.Amount.IsPositive() {
			return fmt.Errorf("incoming tranche %d amount must be positive", i)
		}
		if i > 0 && t.ExpiryTimestamp-prev < g.policy.MinTrancheSpacing {
			return fmt.Errorf("incoming tranche %d closer than %d seconds to its predecessor", i, g.policy.MinTrancheSpacing)
		}
		prev = t.ExpiryTimestamp
		inSum = inSum.Add(t.Amount)
	}
	full := p.ExpectedHoldAmount.Add(expectedBonus)
	if !inSum.Equal(full) {
		return fmt.Errorf("incoming tranches sum %s != expected hold + bonus %s", inSum, full)
	}
	return nil
}
