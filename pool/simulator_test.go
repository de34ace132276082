package pool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/pool"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

func getTestSimulator() *pool.Simulator {
	return pool.NewSimulator(logging.NewTestLogger(), pool.NewDefaultConfig())
}

func TestUnknownAsset(t *testing.T) {
	sim := getTestSimulator()
	ctx := context.Background()

	_, _, err := sim.Indexes(ctx, "GHOST")
	assert.ErrorIs(t, err, pool.ErrUnknownAsset)
	assert.ErrorIs(t, sim.Step("GHOST"), pool.ErrUnknownAsset)
	assert.ErrorIs(t, sim.Supply(ctx, "GHOST", num.NewUint(1)), pool.ErrUnknownAsset)
}

func TestStepAccrual(t *testing.T) {
	sim := getTestSimulator()
	ctx := context.Background()

	// 10% supply growth, 20% borrow growth per step
	sim.RegisterAsset("DAI", pool.AssetParams{
		SupplyGrowthPerStep: num.MustUintFromString("1100000000000000000000000000", 10),
		BorrowGrowthPerStep: num.MustUintFromString("1200000000000000000000000000", 10),
	})

	supply, borrow, err := sim.Indexes(ctx, "DAI")
	require.NoError(t, err)
	assert.True(t, num.IsRay(supply))
	assert.True(t, num.IsRay(borrow))

	require.NoError(t, sim.Step("DAI"))
	supply, borrow, err = sim.Indexes(ctx, "DAI")
	require.NoError(t, err)
	assert.Equal(t, "1.1", num.DecimalFromRay(supply).String())
	assert.Equal(t, "1.2", num.DecimalFromRay(borrow).String())
}

func TestDefaultGrowthIsFrozen(t *testing.T) {
	sim := getTestSimulator()
	sim.RegisterAsset("DAI", pool.AssetParams{})

	require.NoError(t, sim.Step("DAI"))
	supply, borrow, err := sim.Indexes(context.Background(), "DAI")
	require.NoError(t, err)
	assert.True(t, num.IsRay(supply))
	assert.True(t, num.IsRay(borrow))
}

func TestLiquidityAccounting(t *testing.T) {
	sim := getTestSimulator()
	ctx := context.Background()
	sim.RegisterAsset("DAI", pool.AssetParams{})

	require.NoError(t, sim.Supply(ctx, "DAI", num.NewUint(100)))
	assert.True(t, sim.Liquidity("DAI").EQUint64(100))

	// withdraw clips at available liquidity
	got, err := sim.Withdraw(ctx, "DAI", num.NewUint(150))
	require.NoError(t, err)
	assert.True(t, got.EQUint64(100))
	assert.True(t, sim.Liquidity("DAI").IsZero())

	// borrow past liquidity is an outright failure
	require.NoError(t, sim.Supply(ctx, "DAI", num.NewUint(50)))
	err = sim.Borrow(ctx, "DAI", num.NewUint(60))
	assert.ErrorIs(t, err, pool.ErrInsufficientLiquidity)

	require.NoError(t, sim.Borrow(ctx, "DAI", num.NewUint(50)))
	assert.True(t, sim.Liquidity("DAI").IsZero())
	require.NoError(t, sim.Repay(ctx, "DAI", num.NewUint(50)))
	assert.True(t, sim.Liquidity("DAI").EQUint64(50))
}
