package matching

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/metrics"
	"github.com/morpho-org/morpho-optimizers-sub014/positions"
	"github.com/morpho-org/morpho-optimizers-sub014/queue"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Broker is the narrow audit surface this engine needs.
type Broker interface {
	Send(event events.Event)
	SendBatch(evts []events.Event)
}

// Result reports how much underlying a matching walk actually moved and
// how much budget it burned. Matched < the requested amount is a normal
// outcome, it signals budget or queue exhaustion, never an error.
type Result struct {
	Matched *num.Uint
	Cost    uint64
}

// Engine moves liquidity between the pool-backed and peer-to-peer
// balances of one side of a market, greedily, biggest counterparty
// first, under a cost budget. It is stateless across calls: all market
// state lives on the Market and in the positions ledger.
type Engine struct {
	log *logging.Logger
	Config

	broker Broker
}

// New instantiates a new matching engine.
func New(log *logging.Logger, config Config, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Engine{
		log:    log,
		Config: config,
		broker: broker,
	}
}

// Match promotes up to amount underlying of the side's pool-backed
// balances into peer-to-peer, walking the on-pool queue.
func (e *Engine) Match(ctx context.Context, mkt *types.Market, pos *positions.Engine, side types.Side, amount *num.Uint, budget uint64) Result {
	return e.walk(ctx, mkt, pos, side, types.DirectionMatch, amount, budget)
}

// Unmatch demotes up to amount underlying of the side's peer-to-peer
// balances back onto the pool, walking the in-p2p queue.
func (e *Engine) Unmatch(ctx context.Context, mkt *types.Market, pos *positions.Engine, side types.Side, amount *num.Uint, budget uint64) Result {
	return e.walk(ctx, mkt, pos, side, types.DirectionUnmatch, amount, budget)
}

// walk is the budget-bounded greedy loop shared by both directions. Each
// iteration fully converts one counterparty's eligible portion and leaves
// every structure consistent, so running out of budget between iterations
// is always a clean stop.
func (e *Engine) walk(ctx context.Context, mkt *types.Market, pos *positions.Engine, side types.Side, direction types.Direction, amount *num.Uint, budget uint64) Result {
	res := Result{Matched: num.UintZero()}
	if budget == 0 || amount.IsZero() {
		return res
	}

	src := mkt.OnPoolQueue(side)
	if direction == types.DirectionUnmatch {
		src = mkt.InP2PQueue(side)
	}

	remaining := amount.Clone()
	for !remaining.IsZero() && res.Cost+e.CostPerIteration <= budget {
		party, ok := src.Head()
		if !ok {
			break
		}
		moved := e.convert(ctx, mkt, pos, side, direction, party, remaining)
		res.Cost += e.CostPerIteration
		res.Matched.Add(res.Matched, moved)
		remaining.Sub(remaining, moved)
	}
	metrics.MatchingCostAdd(res.Cost, mkt.ID, side.String())

	if e.log.IsDebug() {
		e.log.Debug("matching walk done",
			logging.String("market-id", mkt.ID),
			logging.Stringer("side", side),
			logging.Stringer("direction", direction),
			logging.String("requested", amount.String()),
			logging.String("matched", res.Matched.String()),
			logging.Uint64("cost", res.Cost),
		)
	}
	return res
}

// convert moves min(counterparty balance, remaining) of underlying for
// one counterparty, updating its position, both queues and the recorded
// p2p totals. The source balance is rounded down after conversion so no
// value is ever manufactured; the destination credit is floored for the
// same reason.
func (e *Engine) convert(ctx context.Context, mkt *types.Market, pos *positions.Engine, side types.Side, direction types.Direction, party string, remaining *num.Uint) *num.Uint {
	var srcIdx, dstIdx *num.Uint
	if direction == types.DirectionMatch {
		srcIdx, dstIdx = mkt.Indexes.Pool(side), mkt.Indexes.P2P(side)
	} else {
		srcIdx, dstIdx = mkt.Indexes.P2P(side), mkt.Indexes.Pool(side)
	}

	p := pos.Position(party)
	srcBal, dstBal := p.OnPool(side), p.InP2P(side)
	if direction == types.DirectionUnmatch {
		srcBal, dstBal = dstBal, srcBal
	}

	moved := num.Min(num.RayMulDown(srcBal, srcIdx), remaining).Clone()
	dec := num.Min(num.RayDivUp(moved, srcIdx), srcBal).Clone()
	credit := num.RayDivDown(moved, dstIdx)

	newSrc := num.UintZero().Sub(srcBal, dec)
	newDst := num.UintZero().Add(dstBal, credit)

	onPool, inP2P := newSrc, newDst
	if direction == types.DirectionUnmatch {
		onPool, inP2P = newDst, newSrc
	}
	e.UpdatePosition(ctx, mkt, pos, party, side, onPool, inP2P)

	// the side's recorded promise grows by what entered p2p, shrinks by
	// what left it
	d := mkt.DeltaFor(side)
	if direction == types.DirectionMatch {
		d.ScaledP2PTotal.Add(d.ScaledP2PTotal, credit)
	} else {
		d.ScaledP2PTotal.Sub(d.ScaledP2PTotal, num.Min(dec, d.ScaledP2PTotal))
	}
	e.sendAmounts(ctx, mkt)

	e.broker.Send(events.NewMatched(ctx, mkt.ID, party, side, direction, moved))
	return moved
}

// UpdatePosition writes a party's new balances to the position ledger and
// keeps the market's two queues for that side in sync with them.
func (e *Engine) UpdatePosition(ctx context.Context, mkt *types.Market, pos *positions.Engine, party string, side types.Side, onPool, inP2P *num.Uint) {
	prev := pos.Position(party)
	pos.Update(ctx, party, side, onPool, inP2P)
	syncQueue(mkt.OnPoolQueue(side), party, prev.OnPool(side), onPool)
	syncQueue(mkt.InP2PQueue(side), party, prev.InP2P(side), inP2P)
}

// syncQueue reconciles one queue entry with a balance transition. A
// failure here means the ledger and the queue disagreed, which is a logic
// bug, so it panics rather than limping on.
func syncQueue(q *queue.Queue, party string, oldVal, newVal *num.Uint) {
	switch {
	case oldVal.IsZero() && newVal.IsZero():
		return
	case oldVal.IsZero():
		if err := q.Insert(party, newVal); err != nil {
			panic(err)
		}
	default:
		if err := q.Update(party, newVal); err != nil {
			panic(err)
		}
	}
}
