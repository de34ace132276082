package interest_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/interest"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

type stubPool struct {
	supply *num.Uint
	borrow *num.Uint
	err    error
}

func (p *stubPool) Indexes(_ context.Context, _ string) (*num.Uint, *num.Uint, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.supply.Clone(), p.borrow.Clone(), nil
}

type stubBroker struct {
	evts []events.Event
}

func (b *stubBroker) Send(e events.Event) {
	b.evts = append(b.evts, e)
}

func ray(s string) *num.Uint {
	return num.MustUintFromString(s, 10)
}

func getTestEngine(p *stubPool) (*interest.Engine, *stubBroker) {
	brk := &stubBroker{}
	eng := interest.New(logging.NewTestLogger(), interest.NewDefaultConfig(), p, brk)
	return eng, brk
}

func newTestMarket(reserveFactor, cursor uint64) *types.Market {
	return types.NewMarket("DAI", types.MarketParams{
		ReserveFactor:  reserveFactor,
		P2PIndexCursor: cursor,
	}, 16)
}

func TestIdempotence(t *testing.T) {
	p := &stubPool{supply: num.Ray(), borrow: num.Ray()}
	eng, brk := getTestEngine(p)
	mkt := newTestMarket(1000, 5000)

	before := mkt.Indexes.Clone()
	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))
	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	// unchanged pool indices are a strict no-op, bit for bit, no events
	assert.True(t, mkt.Indexes.PoolSupply.EQ(before.PoolSupply))
	assert.True(t, mkt.Indexes.PoolBorrow.EQ(before.PoolBorrow))
	assert.True(t, mkt.Indexes.P2PSupply.EQ(before.P2PSupply))
	assert.True(t, mkt.Indexes.P2PBorrow.EQ(before.P2PBorrow))
	assert.Empty(t, brk.evts)
}

func TestCursorWeightedGrowth(t *testing.T) {
	// pool supply grows 10%, pool borrow 20%, cursor midway, no reserve
	p := &stubPool{
		supply: ray("1100000000000000000000000000"),
		borrow: ray("1200000000000000000000000000"),
	}
	eng, brk := getTestEngine(p)
	mkt := newTestMarket(0, 5000)

	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	assert.Equal(t, "1.1", num.DecimalFromRay(mkt.Indexes.PoolSupply).String())
	assert.Equal(t, "1.2", num.DecimalFromRay(mkt.Indexes.PoolBorrow).String())
	// p2p growth sits midway at 1.15 on both sides
	assert.Equal(t, "1.15", num.DecimalFromRay(mkt.Indexes.P2PSupply).String())
	assert.Equal(t, "1.15", num.DecimalFromRay(mkt.Indexes.P2PBorrow).String())

	require.Len(t, brk.evts, 1)
	assert.Equal(t, events.IndexesUpdatedEvent, brk.evts[0].Type())
}

func TestReserveFactorShavesSpread(t *testing.T) {
	p := &stubPool{
		supply: ray("1100000000000000000000000000"),
		borrow: ray("1200000000000000000000000000"),
	}
	eng, _ := getTestEngine(p)
	// 10% of the spread goes to the reserve
	mkt := newTestMarket(1000, 5000)

	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	// spread each side is 0.05; 10% of it is 0.005
	assert.Equal(t, "1.145", num.DecimalFromRay(mkt.Indexes.P2PSupply).String())
	assert.Equal(t, "1.155", num.DecimalFromRay(mkt.Indexes.P2PBorrow).String())
}

func TestInvertedSpreadClamp(t *testing.T) {
	// pool supply growing faster than pool borrow is anomalous: both p2p
	// factors clamp to the borrow growth
	p := &stubPool{
		supply: ray("1200000000000000000000000000"),
		borrow: ray("1100000000000000000000000000"),
	}
	eng, _ := getTestEngine(p)
	mkt := newTestMarket(1000, 5000)

	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	assert.Equal(t, "1.1", num.DecimalFromRay(mkt.Indexes.P2PSupply).String())
	assert.Equal(t, "1.1", num.DecimalFromRay(mkt.Indexes.P2PBorrow).String())
}

func TestDeltaShareEarnsPoolRate(t *testing.T) {
	p := &stubPool{
		supply: ray("1100000000000000000000000000"),
		borrow: ray("1200000000000000000000000000"),
	}
	eng, _ := getTestEngine(p)
	mkt := newTestMarket(0, 5000)

	// half of the supply promise rests on the pool
	mkt.SupplyDelta.ScaledP2PTotal = num.NewUint(100)
	mkt.SupplyDelta.ScaledDelta = num.NewUint(50)

	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	// supply side: 0.5*1.15 + 0.5*1.1 = 1.125; borrow side has no delta
	assert.Equal(t, "1.125", num.DecimalFromRay(mkt.Indexes.P2PSupply).String())
	assert.Equal(t, "1.15", num.DecimalFromRay(mkt.Indexes.P2PBorrow).String())
}

func TestPoolIndexRegression(t *testing.T) {
	p := &stubPool{
		supply: ray("1100000000000000000000000000"),
		borrow: ray("1200000000000000000000000000"),
	}
	eng, _ := getTestEngine(p)
	mkt := newTestMarket(0, 5000)
	require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

	p.supply = num.Ray()
	err := eng.UpdateIndexes(context.Background(), mkt)
	assert.ErrorIs(t, err, interest.ErrPoolIndexRegression)
}

func TestPoolReaderFailurePropagates(t *testing.T) {
	p := &stubPool{err: errors.New("pool offline")}
	eng, brk := getTestEngine(p)
	mkt := newTestMarket(0, 5000)

	err := eng.UpdateIndexes(context.Background(), mkt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool offline")
	assert.Empty(t, brk.evts)
}

func TestMonotonicOverSteps(t *testing.T) {
	p := &stubPool{
		supply: num.Ray(),
		borrow: num.Ray(),
	}
	eng, _ := getTestEngine(p)
	mkt := newTestMarket(1000, 3000)

	growth := ray("1000000500000000000000000000")
	prev := mkt.Indexes.Clone()
	for i := 0; i < 10; i++ {
		p.supply = num.RayMulDown(p.supply, growth)
		p.borrow = num.RayMulDown(p.borrow, growth)
		require.NoError(t, eng.UpdateIndexes(context.Background(), mkt))

		assert.True(t, mkt.Indexes.PoolSupply.GTE(prev.PoolSupply))
		assert.True(t, mkt.Indexes.PoolBorrow.GTE(prev.PoolBorrow))
		assert.True(t, mkt.Indexes.P2PSupply.GTE(prev.P2PSupply))
		assert.True(t, mkt.Indexes.P2PBorrow.GTE(prev.P2PBorrow))
		prev = mkt.Indexes.Clone()
	}
}
