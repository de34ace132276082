package num_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// halfRay is 0.5 in ray fixed point.
var halfRay = num.MustUintFromString("500000000000000000000000000", 10)

func TestRayMul(t *testing.T) {
	// 100 * 1.0 = 100, exact both ways
	assert.True(t, num.RayMulDown(num.NewUint(100), num.Ray()).EQUint64(100))
	assert.True(t, num.RayMulUp(num.NewUint(100), num.Ray()).EQUint64(100))

	// 3 * 0.5 = 1.5: floor 1, ceil 2
	assert.True(t, num.RayMulDown(num.NewUint(3), halfRay).EQUint64(1))
	assert.True(t, num.RayMulUp(num.NewUint(3), halfRay).EQUint64(2))
}

func TestRayDiv(t *testing.T) {
	// 100 / 1.0 = 100, exact both ways
	assert.True(t, num.RayDivDown(num.NewUint(100), num.Ray()).EQUint64(100))
	assert.True(t, num.RayDivUp(num.NewUint(100), num.Ray()).EQUint64(100))

	// 1 / 0.5 = 2
	assert.True(t, num.RayDivDown(num.NewUint(1), halfRay).EQUint64(2))

	// 100 / 3.0: floor 33, ceil 34
	three := num.UintZero().Mul(num.Ray(), num.NewUint(3))
	assert.True(t, num.RayDivDown(num.NewUint(100), three).EQUint64(33))
	assert.True(t, num.RayDivUp(num.NewUint(100), three).EQUint64(34))
}

func TestRayRoundTripNeverManufactures(t *testing.T) {
	// converting underlying to scaled (ceil) and back (floor) never yields
	// more than went in
	idx := num.MustUintFromString("1000000300000000000000000000", 10)
	for _, amt := range []uint64{1, 7, 99, 100_000, 123_456_789} {
		in := num.NewUint(amt)
		scaled := num.RayDivUp(in, idx)
		out := num.RayMulDown(scaled, idx)
		assert.Truef(t, out.GTE(in), "amount %d came back short", amt)
		// and the ceil only ever adds a single unit of slack
		floorScaled := num.RayDivDown(in, idx)
		diff := num.UintZero().Sub(scaled, floorScaled)
		assert.True(t, diff.LTE(num.NewUint(1)))
	}
}

func TestBpsMulDown(t *testing.T) {
	// 1000 bps of 200 is 20
	assert.True(t, num.BpsMulDown(num.NewUint(200), 1000).EQUint64(20))
	// flooring: 500 bps of 3 is 0.15 -> 0
	assert.True(t, num.BpsMulDown(num.NewUint(3), 500).IsZero())
	// full weight is identity
	assert.True(t, num.BpsMulDown(num.NewUint(123), 10_000).EQUint64(123))
}

func TestWeightedAvgBps(t *testing.T) {
	a, b := num.NewUint(100), num.NewUint(200)

	assert.True(t, num.WeightedAvgBps(a, b, 0).EQUint64(100))
	assert.True(t, num.WeightedAvgBps(a, b, 10_000).EQUint64(200))
	assert.True(t, num.WeightedAvgBps(a, b, 5000).EQUint64(150))
	assert.True(t, num.WeightedAvgBps(a, b, 2500).EQUint64(125))
	// weights above the denominator clamp to b
	assert.True(t, num.WeightedAvgBps(a, b, 20_000).EQUint64(200))
}

func TestDecimalFromRay(t *testing.T) {
	oneAndHalf := num.UintZero().Add(num.Ray(), halfRay)
	assert.Equal(t, "1.5", num.DecimalFromRay(oneAndHalf).String())
	assert.Equal(t, "1", num.DecimalFromRay(num.Ray()).String())
}
