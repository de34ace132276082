package matching

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/positions"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Delta ledger operations. A side's delta is principal resting on the
// pool backing the unmatched share of that side's p2p promise; it shrinks
// when fresh liquidity shows up ("delta first", before any queue
// matching) and grows when an unmatch runs out of live counterparties
// within budget.

// AbsorbDelta cancels as much of the side's outstanding delta as the
// given underlying amount covers, returning the underlying absorbed. The
// paired position credit and pool-adapter call are the caller's business.
func (e *Engine) AbsorbDelta(ctx context.Context, mkt *types.Market, side types.Side, amount *num.Uint) *num.Uint {
	d := mkt.DeltaFor(side)
	if d.ScaledDelta.IsZero() || amount.IsZero() {
		return num.UintZero()
	}

	poolIdx := mkt.Indexes.Pool(side)
	outstanding := num.RayMulDown(d.ScaledDelta, poolIdx)
	absorbed := num.Min(outstanding, amount).Clone()
	if absorbed.IsZero() {
		return absorbed
	}

	dec := num.Min(num.RayDivUp(absorbed, poolIdx), d.ScaledDelta).Clone()
	d.ScaledDelta.Sub(d.ScaledDelta, dec)

	e.broker.Send(events.NewDeltaUpdated(ctx, mkt.ID, side, d.ScaledDelta))
	if e.log.IsDebug() {
		e.log.Debug("delta absorbed",
			logging.String("market-id", mkt.ID),
			logging.Stringer("side", side),
			logging.String("absorbed", absorbed.String()),
			logging.String("delta", d.ScaledDelta.String()),
		)
	}
	return absorbed
}

// GrowDelta books a shortfall the matching loop could not place with live
// counterparties: the underlying is sourced from the pool directly and
// recorded as delta, scaled into pool units, rounded up since this is
// what the protocol still owes. The delta is capped so it never backs
// more than the full recorded promise.
func (e *Engine) GrowDelta(ctx context.Context, mkt *types.Market, side types.Side, shortfall *num.Uint) {
	if shortfall.IsZero() {
		return
	}
	d := mkt.DeltaFor(side)
	poolIdx := mkt.Indexes.Pool(side)

	inc := num.RayDivUp(shortfall, poolIdx)
	grown := num.UintZero().Add(d.ScaledDelta, inc)

	// cap: delta*poolIndex <= total*p2pIndex
	maxDelta := num.RayDivDown(num.RayMulDown(d.ScaledP2PTotal, mkt.Indexes.P2P(side)), poolIdx)
	d.ScaledDelta = num.Min(grown, maxDelta).Clone()

	e.broker.Send(events.NewDeltaUpdated(ctx, mkt.ID, side, d.ScaledDelta))
	if e.log.IsDebug() {
		e.log.Debug("delta grown",
			logging.String("market-id", mkt.ID),
			logging.Stringer("side", side),
			logging.String("shortfall", shortfall.String()),
			logging.String("delta", d.ScaledDelta.String()),
		)
	}
}

// CreditP2P moves a party into peer-to-peer for the given underlying
// value: its in-p2p balance and the side's recorded promise both grow by
// the floored p2p-unit equivalent. Returns the scaled credit.
func (e *Engine) CreditP2P(ctx context.Context, mkt *types.Market, pos *positions.Engine, party string, side types.Side, underlying *num.Uint) *num.Uint {
	credit := num.RayDivDown(underlying, mkt.Indexes.P2P(side))
	if credit.IsZero() {
		return credit
	}
	p := pos.Position(party)
	e.UpdatePosition(ctx, mkt, pos, party, side,
		p.OnPool(side), num.UintZero().Add(p.InP2P(side), credit))

	d := mkt.DeltaFor(side)
	d.ScaledP2PTotal.Add(d.ScaledP2PTotal, credit)
	e.sendAmounts(ctx, mkt)
	return credit
}

// DebitP2P takes a party out of peer-to-peer for the given underlying
// value: its in-p2p balance and the side's recorded promise both shrink.
// The resulting balance is floored, the party never keeps dust the
// protocol would have to honor twice. Returns the scaled debit.
func (e *Engine) DebitP2P(ctx context.Context, mkt *types.Market, pos *positions.Engine, party string, side types.Side, underlying *num.Uint) *num.Uint {
	p := pos.Position(party)
	bal := p.InP2P(side)
	dec := num.Min(num.RayDivUp(underlying, mkt.Indexes.P2P(side)), bal).Clone()
	if dec.IsZero() {
		return dec
	}
	e.UpdatePosition(ctx, mkt, pos, party, side,
		p.OnPool(side), num.UintZero().Sub(bal, dec))

	d := mkt.DeltaFor(side)
	d.ScaledP2PTotal.Sub(d.ScaledP2PTotal, num.Min(dec, d.ScaledP2PTotal))
	e.sendAmounts(ctx, mkt)
	return dec
}

func (e *Engine) sendAmounts(ctx context.Context, mkt *types.Market) {
	e.broker.Send(events.NewP2PAmountsUpdated(ctx, mkt.ID,
		mkt.SupplyDelta.ScaledP2PTotal, mkt.BorrowDelta.ScaledP2PTotal))
}
