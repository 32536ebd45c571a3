/*
This file contains the shared integer-math helpers for pool accounting: percent
application and floor division over SDK math types. Everything truncates toward
zero; rounding dust stays with the protocol.
*/

package utils

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// Error definitions for zero-tolerance error handling
var (
	ErrAmountNil      = errors.New("amount is nil")
	ErrAmountNegative = errors.New("amount is negative")
	ErrPercentNil     = errors.New("percent is nil")
	ErrDivisionByZero = errors.New("division by zero")
)

// ApplyPercent returns amount x percent truncated toward zero. Percent is a
// fraction (0.01 == 1%).
func ApplyPercent(amount sdkmath.Int, percent sdkmath.LegacyDec) (sdkmath.Int, error) {
	if amount.IsNil() {
		return sdkmath.ZeroInt(), ErrAmountNil
	}
	if amount.IsNegative() {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %s", ErrAmountNegative, amount)
	}
	if percent.IsNil() {
		return sdkmath.ZeroInt(), ErrPercentNil
	}
	if percent.IsNegative() {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: percent %s", ErrAmountNegative, percent)
	}
	return sdkmath.LegacyNewDecFromInt(amount).Mul(percent).TruncateInt(), nil
}

// FloorQuo returns numerator / denominator truncated toward zero.
func FloorQuo(numerator, denominator sdkmath.Int) (sdkmath.Int, error) {
	if numerator.IsNil() || denominator.IsNil() {
		return sdkmath.ZeroInt(), ErrAmountNil
	}
	if denominator.IsZero() {
		return sdkmath.ZeroInt(), ErrDivisionByZero
	}
	return numerator.Quo(denominator), nil
}

// MulFloorQuo returns a x b / denominator truncated toward zero, used for the
// pro-rata bonus allocation.
func MulFloorQuo(a, b, denominator sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNil() || b.IsNil() || denominator.IsNil() {
		return sdkmath.ZeroInt(), ErrAmountNil
	}
	if denominator.IsZero() {
		return sdkmath.ZeroInt(), ErrDivisionByZero
	}
	return a.Mul(b).Quo(denominator), nil
}
