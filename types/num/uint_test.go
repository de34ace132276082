package num_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

func TestUintArithmetic(t *testing.T) {
	x, y := num.NewUint(70), num.NewUint(12)

	assert.True(t, num.UintZero().Add(x, y).EQUint64(82))
	assert.True(t, num.UintZero().Sub(x, y).EQUint64(58))
	assert.True(t, num.UintZero().Mul(x, y).EQUint64(840))
	assert.True(t, num.UintZero().Div(x, y).EQUint64(5))
	assert.True(t, num.Sum(x, y, num.NewUint(8)).EQUint64(90))
}

func TestUintComparisons(t *testing.T) {
	x, y := num.NewUint(70), num.NewUint(12)

	assert.True(t, x.GT(y))
	assert.True(t, x.GTE(x.Clone()))
	assert.True(t, y.LT(x))
	assert.True(t, y.LTE(y.Clone()))
	assert.True(t, x.NEQ(y))
	assert.True(t, x.EQ(num.NewUint(70)))
	assert.True(t, num.Min(x, y).EQ(y))
	assert.True(t, num.Max(x, y).EQ(x))
}

func TestUintDelta(t *testing.T) {
	x, y := num.NewUint(70), num.NewUint(12)

	d, neg := num.UintZero().Delta(x, y)
	assert.False(t, neg)
	assert.True(t, d.EQUint64(58))

	d, neg = num.UintZero().Delta(y, x)
	assert.True(t, neg)
	assert.True(t, d.EQUint64(58))
}

func TestUintClone(t *testing.T) {
	x := num.NewUint(70)
	c := x.Clone()
	c.Add(c, num.NewUint(1))

	assert.True(t, x.EQUint64(70))
	assert.True(t, c.EQUint64(71))
}

func TestUintFromString(t *testing.T) {
	u, overflow := num.UintFromString("1000000000000000000000000000", 10)
	require.False(t, overflow)
	assert.True(t, u.EQ(num.Ray()))

	_, overflow = num.UintFromString("not-a-number", 10)
	assert.True(t, overflow)

	assert.Panics(t, func() {
		num.MustUintFromString("still-not-a-number", 10)
	})
}
