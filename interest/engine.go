package interest

import (
	"context"

	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

var (
	// ErrPoolIndexRegression signals the pool reported an index lower than
	// the one it reported before. Pool indices only ever increase, a
	// regression is a broken collaborator and aborts the operation.
	ErrPoolIndexRegression = errors.New("pool index went backwards")
)

// PoolReader is the slice of the pool adapter this engine consumes: the
// pool's own, authoritative indices.
type PoolReader interface {
	Indexes(ctx context.Context, asset string) (supplyIndex, borrowIndex *num.Uint, err error)
}

// Broker is the narrow audit surface this engine needs.
type Broker interface {
	Send(event events.Event)
}

// Engine accrues a market's four indices. The two pool indices mirror the
// pool; the two p2p indices grow at a blend of the pool rates positioned
// by the market's cursor, shaved by the reserve factor, with any
// delta-backed slice earning exactly the pool rate of its side.
type Engine struct {
	log *logging.Logger
	Config

	pool   PoolReader
	broker Broker
}

// New instantiates a new interest engine.
func New(log *logging.Logger, config Config, pool PoolReader, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Engine{
		log:    log,
		Config: config,
		pool:   pool,
		broker: broker,
	}
}

// UpdateIndexes brings the market's indices current. Calling it again
// with no pool-side movement is a strict no-op: the stored indices are
// returned bit for bit and no event is emitted.
func (e *Engine) UpdateIndexes(ctx context.Context, mkt *types.Market) error {
	newPoolSupply, newPoolBorrow, err := e.pool.Indexes(ctx, mkt.ID)
	if err != nil {
		return errors.Wrap(err, "fetching pool indices")
	}

	oldPoolSupply := mkt.Indexes.PoolSupply
	oldPoolBorrow := mkt.Indexes.PoolBorrow
	if newPoolSupply.LT(oldPoolSupply) || newPoolBorrow.LT(oldPoolBorrow) {
		return ErrPoolIndexRegression
	}
	if newPoolSupply.EQ(oldPoolSupply) && newPoolBorrow.EQ(oldPoolBorrow) {
		return nil
	}

	supplyGrowth := num.RayDivDown(newPoolSupply, oldPoolSupply)
	borrowGrowth := num.RayDivDown(newPoolBorrow, oldPoolBorrow)
	p2pSupplyGrowth, p2pBorrowGrowth := p2pGrowthFactors(supplyGrowth, borrowGrowth, mkt.Params)

	mkt.Indexes = types.Indexes{
		PoolSupply: newPoolSupply.Clone(),
		PoolBorrow: newPoolBorrow.Clone(),
		P2PSupply:  p2pIndex(mkt, types.SideSupply, p2pSupplyGrowth, supplyGrowth),
		P2PBorrow:  p2pIndex(mkt, types.SideBorrow, p2pBorrowGrowth, borrowGrowth),
	}

	e.broker.Send(events.NewIndexesUpdated(ctx, mkt.ID, mkt.Indexes))
	if e.log.IsDebug() {
		e.log.Debug("indices updated",
			logging.String("market-id", mkt.ID),
			logging.String("pool-supply", num.DecimalFromRay(mkt.Indexes.PoolSupply).String()),
			logging.String("pool-borrow", num.DecimalFromRay(mkt.Indexes.PoolBorrow).String()),
			logging.String("p2p-supply", num.DecimalFromRay(mkt.Indexes.P2PSupply).String()),
			logging.String("p2p-borrow", num.DecimalFromRay(mkt.Indexes.P2PBorrow).String()),
		)
	}
	return nil
}

// p2pGrowthFactors derives both sides' p2p growth from the pool growth
// pair. In the normal case the p2p rate sits cursor-of-the-way between
// the pool rates and the reserve factor carves a fee out of each side's
// share of the spread. When the spread inverts (supply rate above borrow
// rate) both p2p factors clamp to the pool borrow growth: the p2p rate
// must never beat the pool borrow rate nor trail the pool supply rate.
func p2pGrowthFactors(supplyGrowth, borrowGrowth *num.Uint, params types.MarketParams) (*num.Uint, *num.Uint) {
	if supplyGrowth.GT(borrowGrowth) {
		return borrowGrowth.Clone(), borrowGrowth.Clone()
	}

	p2pGrowth := num.WeightedAvgBps(supplyGrowth, borrowGrowth, params.P2PIndexCursor)

	supplySpread := num.UintZero().Sub(p2pGrowth, supplyGrowth)
	borrowSpread := num.UintZero().Sub(borrowGrowth, p2pGrowth)

	p2pSupplyGrowth := num.UintZero().Sub(p2pGrowth, num.BpsMulDown(supplySpread, params.ReserveFactor))
	p2pBorrowGrowth := num.UintZero().Add(p2pGrowth, num.BpsMulDown(borrowSpread, params.ReserveFactor))
	return p2pSupplyGrowth, p2pBorrowGrowth
}

// p2pIndex grows one side's p2p index. The share of the promise resting
// on the pool (the delta) earns the pool growth of the same side, the
// live-matched remainder earns the p2p growth.
func p2pIndex(mkt *types.Market, side types.Side, sideGrowth, poolGrowth *num.Uint) *num.Uint {
	oldIdx := mkt.Indexes.P2P(side)
	d := mkt.DeltaFor(side)
	if d.ScaledP2PTotal.IsZero() || d.ScaledDelta.IsZero() {
		return num.RayMulDown(oldIdx, sideGrowth)
	}

	resting := num.RayMulDown(d.ScaledDelta, mkt.Indexes.Pool(side))
	promised := num.RayMulDown(d.ScaledP2PTotal, oldIdx)
	share := num.Min(num.RayDivUp(resting, promised), num.Ray()).Clone()

	blended := num.Sum(
		num.RayMulDown(num.UintZero().Sub(num.Ray(), share), sideGrowth),
		num.RayMulDown(share, poolGrowth),
	)
	return num.RayMulDown(oldIdx, blended)
}
