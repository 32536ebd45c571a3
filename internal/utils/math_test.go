package utils

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestApplyPercent(t *testing.T) {
	pct := sdkmath.LegacyMustNewDecFromStr("0.01")

	got, err := ApplyPercent(sdkmath.NewInt(847), pct)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(8), got) // 8.47 truncates

	got, err = ApplyPercent(sdkmath.NewInt(99), pct)
	require.NoError(t, err)
	require.True(t, got.IsZero())

	got, err = ApplyPercent(sdkmath.ZeroInt(), pct)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestApplyPercent_Errors(t *testing.T) {
	pct := sdkmath.LegacyMustNewDecFromStr("0.01")

	_, err := ApplyPercent(sdkmath.Int{}, pct)
	require.ErrorIs(t, err, ErrAmountNil)

	_, err = ApplyPercent(sdkmath.NewInt(-1), pct)
	require.ErrorIs(t, err, ErrAmountNegative)

	_, err = ApplyPercent(sdkmath.NewInt(100), sdkmath.LegacyDec{})
	require.ErrorIs(t, err, ErrPercentNil)

	_, err = ApplyPercent(sdkmath.NewInt(100), sdkmath.LegacyMustNewDecFromStr("-0.01"))
	require.ErrorIs(t, err, ErrAmountNegative)
}

func TestFloorQuo(t *testing.T) {
	got, err := FloorQuo(sdkmath.NewInt(300_000_000), sdkmath.NewInt(5_900))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(50_847), got)

	_, err = FloorQuo(sdkmath.NewInt(1), sdkmath.ZeroInt())
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = FloorQuo(sdkmath.Int{}, sdkmath.NewInt(1))
	require.ErrorIs(t, err, ErrAmountNil)
}

func TestMulFloorQuo(t *testing.T) {
	got, err := MulFloorQuo(sdkmath.NewInt(1_000), sdkmath.NewInt(250), sdkmath.NewInt(1_000))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(250), got)

	// Multiply before dividing: 7 * 3 / 2 = 10, not 7/2*3 = 9.
	got, err = MulFloorQuo(sdkmath.NewInt(7), sdkmath.NewInt(3), sdkmath.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(10), got)

	_, err = MulFloorQuo(sdkmath.NewInt(1), sdkmath.NewInt(1), sdkmath.ZeroInt())
	require.ErrorIs(t, err, ErrDivisionByZero)
}
