/*

This file contains the deployment gateway's parameter-range policy. Every pool
deployment is checked against these bounds before a Pool is constructed; the
Pool itself never re-validates them.

*/

package config

import (
	sdkmath "cosmossdk.io/math"
)

// RangePolicy bounds the deployable pool parameter space.
type RangePolicy struct {
	// MaxEntryFeePercent / MaxExitFeePercent cap the treasury cut on each leg.
	MaxEntryFeePercent sdkmath.LegacyDec
	MaxExitFeePercent  sdkmath.LegacyDec

	// Reward bounds: the repayment premium promised to claim holders.
	MinRewardPercent sdkmath.LegacyDec
	MaxRewardPercent sdkmath.LegacyDec

	// Liquidity coefficient bounds control curve steepness. Low coefficients
	// make early entries drastically cheaper than late ones.
	MinLiquidityCoefficient sdkmath.Int
	MaxLiquidityCoefficient sdkmath.Int

	// MinTrancheSpacing is the minimum gap between consecutive scheduled
	// timestamps in either direction, in seconds.
	MinTrancheSpacing int64

	// MinEntryPeriodDuration keeps the funding window long enough for
	// participants to act on announced deployments.
	MinEntryPeriodDuration int64

	// MaxOutgoingTranches / MaxIncomingTranches bound schedule length.
	MaxOutgoingTranches int
	MaxIncomingTranches int
}

// DefaultRangePolicy is the baseline policy applied when no override is
// configured. Calibrated for production deployments holding real capital.
var DefaultRangePolicy = RangePolicy{
	MaxEntryFeePercent: sdkmath.LegacyMustNewDecFromStr("0.10"), // 10% hard cap on entry fees
	MaxExitFeePercent:  sdkmath.LegacyMustNewDecFromStr("0.10"),

	MinRewardPercent: sdkmath.LegacyMustNewDecFromStr("0"),
	MaxRewardPercent: sdkmath.LegacyMustNewDecFromStr("1.00"), // at most 100% premium over principal

	MinLiquidityCoefficient: sdkmath.NewInt(1),
	MaxLiquidityCoefficient: sdkmath.NewInt(100),

	MinTrancheSpacing:      60 * 60,      // one hour between scheduled movements
	MinEntryPeriodDuration: 24 * 60 * 60, // at least a day of funding window

	MaxOutgoingTranches: 100,
	MaxIncomingTranches: 100,
}

// DemoPoolDefaults describes the pool deployed by the demo bootstrap mode.
type DemoPoolDefaults struct {
	ExpectedHoldAmount   sdkmath.Int
	ExpectedRwaAmount    sdkmath.Int
	LiquidityCoefficient sdkmath.Int
	EntryFeePercent      sdkmath.LegacyDec
	ExitFeePercent       sdkmath.LegacyDec
	RewardPercent        sdkmath.LegacyDec
}

// DefaultDemoPool mirrors the canonical worked example: 10k expected hold,
// 1k claim units, coefficient 5.
var DefaultDemoPool = DemoPoolDefaults{
	ExpectedHoldAmount:   sdkmath.NewInt(10_000),
	ExpectedRwaAmount:    sdkmath.NewInt(1_000),
	LiquidityCoefficient: sdkmath.NewInt(5),
	EntryFeePercent:      sdkmath.LegacyMustNewDecFromStr("0.01"),
	ExitFeePercent:       sdkmath.LegacyMustNewDecFromStr("0.01"),
	RewardPercent:        sdkmath.LegacyMustNewDecFromStr("0.10"),
}
