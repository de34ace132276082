package execution

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/metrics"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Supply books fresh liquidity for party. Matched parts settle pool debt
// on the borrow side (delta first, then live borrowers within budget),
// the remainder rests on the pool.
func (e *Engine) Supply(ctx context.Context, marketID, party string, amount *num.Uint, budget uint64) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), marketID, "execution", "supply")
	defer func() { metrics.OperationCounterInc(marketID, "supply", outcome(err)) }()

	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return err
	}
	if mkt.Paused.Supply {
		return types.ErrMarketPaused
	}
	st, err := e.begin(ctx, mkt)
	if err != nil {
		return err
	}

	remaining := amount.Clone()
	if !mkt.P2PDisabled {
		toRepay := num.UintZero()

		absorbed := e.matcher.AbsorbDelta(ctx, mkt, types.SideBorrow, remaining)
		if !absorbed.IsZero() {
			e.matcher.CreditP2P(ctx, mkt, st.pos, party, types.SideSupply, absorbed)
			remaining.Sub(remaining, absorbed)
			toRepay.Add(toRepay, absorbed)
		}

		res := e.matcher.Match(ctx, mkt, st.pos, types.SideBorrow, remaining, budget)
		if !res.Matched.IsZero() {
			e.matcher.CreditP2P(ctx, mkt, st.pos, party, types.SideSupply, res.Matched)
			remaining.Sub(remaining, res.Matched)
			toRepay.Add(toRepay, res.Matched)
		}

		if !toRepay.IsZero() {
			if err := e.pool.Repay(ctx, mkt.ID, toRepay); err != nil {
				e.abort(st)
				return errors.Wrap(err, "supply: settling matched pool debt")
			}
		}
	}

	if !remaining.IsZero() {
		p := st.pos.Position(party)
		scaled := num.RayDivDown(remaining, mkt.Indexes.PoolSupply)
		e.matcher.UpdatePosition(ctx, mkt, st.pos, party, types.SideSupply,
			num.UintZero().Add(p.OnPool(types.SideSupply), scaled), p.InP2P(types.SideSupply))
		if err := e.pool.Supply(ctx, mkt.ID, remaining); err != nil {
			e.abort(st)
			return errors.Wrap(err, "supply: depositing remainder on pool")
		}
	}

	e.commit()
	e.log.Info("supply executed",
		logging.String("market-id", marketID),
		logging.String("party", party),
		logging.String("amount", amount.String()),
	)
	return nil
}

// Borrow sources liquidity for party. Matched parts are withdrawn from
// the pool (supply-side delta first, then live suppliers within budget),
// the remainder is borrowed from the pool directly.
func (e *Engine) Borrow(ctx context.Context, marketID, party string, amount *num.Uint, budget uint64) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), marketID, "execution", "borrow")
	defer func() { metrics.OperationCounterInc(marketID, "borrow", outcome(err)) }()

	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return err
	}
	if mkt.Paused.Borrow {
		return types.ErrMarketPaused
	}
	st, err := e.begin(ctx, mkt)
	if err != nil {
		return err
	}

	remaining := amount.Clone()
	if !mkt.P2PDisabled {
		toWithdraw := num.UintZero()

		absorbed := e.matcher.AbsorbDelta(ctx, mkt, types.SideSupply, remaining)
		toWithdraw.Add(toWithdraw, absorbed)

		res := e.matcher.Match(ctx, mkt, st.pos, types.SideSupply,
			num.UintZero().Sub(remaining, absorbed), budget)
		toWithdraw.Add(toWithdraw, res.Matched)

		if !toWithdraw.IsZero() {
			e.matcher.CreditP2P(ctx, mkt, st.pos, party, types.SideBorrow, toWithdraw)
			got, err := e.pool.Withdraw(ctx, mkt.ID, toWithdraw)
			if err != nil {
				e.abort(st)
				return errors.Wrap(err, "borrow: pulling matched liquidity")
			}
			if got.LT(toWithdraw) {
				e.abort(st)
				return ErrPoolShortfall
			}
			remaining.Sub(remaining, toWithdraw)
		}
	}

	if !remaining.IsZero() {
		p := st.pos.Position(party)
		// debt rounds against the borrower, the pool never under-records
		scaled := num.RayDivUp(remaining, mkt.Indexes.PoolBorrow)
		e.matcher.UpdatePosition(ctx, mkt, st.pos, party, types.SideBorrow,
			num.UintZero().Add(p.OnPool(types.SideBorrow), scaled), p.InP2P(types.SideBorrow))
		if err := e.pool.Borrow(ctx, mkt.ID, remaining); err != nil {
			e.abort(st)
			return errors.Wrap(err, "borrow: drawing remainder from pool")
		}
	}

	e.commit()
	e.log.Info("borrow executed",
		logging.String("market-id", marketID),
		logging.String("party", party),
		logging.String("amount", amount.String()),
	)
	return nil
}

// Withdraw returns up to amount of party's supplied liquidity, capped at
// its balance, and reports what was actually paid out. The on-pool part
// goes first and honors the pool's actually-withdrawn return; the
// peer-to-peer part is re-backed by replacement suppliers, then demoted
// borrowers, then the borrow-side delta.
func (e *Engine) Withdraw(ctx context.Context, marketID, party string, amount *num.Uint, budget uint64) (_ *num.Uint, err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), marketID, "execution", "withdraw")
	defer func() { metrics.OperationCounterInc(marketID, "withdraw", outcome(err)) }()

	if amount == nil || amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	if mkt.Paused.Withdraw {
		return nil, types.ErrMarketPaused
	}
	st, err := e.begin(ctx, mkt)
	if err != nil {
		return nil, err
	}

	p := st.pos.Position(party)
	onPoolUnder := num.RayMulDown(p.OnPool(types.SideSupply), mkt.Indexes.PoolSupply)
	inP2PUnder := num.RayMulDown(p.InP2P(types.SideSupply), mkt.Indexes.P2PSupply)

	remaining := num.Min(amount, num.UintZero().AddSum(onPoolUnder, inP2PUnder)).Clone()
	withdrawn := num.UintZero()

	fromPool := num.Min(remaining, onPoolUnder).Clone()
	if !fromPool.IsZero() {
		got, err := e.pool.Withdraw(ctx, mkt.ID, fromPool)
		if err != nil {
			e.abort(st)
			return nil, errors.Wrap(err, "withdraw: pulling on-pool balance")
		}
		short := got.LT(fromPool)
		fromPool = num.Min(fromPool, got).Clone()
		if !fromPool.IsZero() {
			dec := num.Min(num.RayDivUp(fromPool, mkt.Indexes.PoolSupply), p.OnPool(types.SideSupply)).Clone()
			e.matcher.UpdatePosition(ctx, mkt, st.pos, party, types.SideSupply,
				num.UintZero().Sub(p.OnPool(types.SideSupply), dec), p.InP2P(types.SideSupply))
			withdrawn.Add(withdrawn, fromPool)
			remaining.Sub(remaining, fromPool)
		}
		if short {
			// pool liquidity is exhausted, a partial payout is the outcome
			e.commit()
			return withdrawn, nil
		}
	}

	if !remaining.IsZero() {
		take := num.Min(remaining, inP2PUnder).Clone()
		if !take.IsZero() {
			e.matcher.DebitP2P(ctx, mkt, st.pos, party, types.SideSupply, take)

			absorbed := e.matcher.AbsorbDelta(ctx, mkt, types.SideSupply, take)
			res := e.matcher.Match(ctx, mkt, st.pos, types.SideSupply,
				num.UintZero().Sub(take, absorbed), budget)

			toPull := num.UintZero().AddSum(absorbed, res.Matched)
			if !toPull.IsZero() {
				got, err := e.pool.Withdraw(ctx, mkt.ID, toPull)
				if err != nil {
					e.abort(st)
					return nil, errors.Wrap(err, "withdraw: pulling replacement liquidity")
				}
				if got.LT(toPull) {
					e.abort(st)
					return nil, ErrPoolShortfall
				}
			}

			rem := num.UintZero().Sub(take, toPull)
			if !rem.IsZero() {
				res2 := e.matcher.Unmatch(ctx, mkt, st.pos, types.SideBorrow, rem, budget-res.Cost)
				e.matcher.GrowDelta(ctx, mkt, types.SideBorrow,
					num.UintZero().Sub(rem, res2.Matched))
				if err := e.pool.Borrow(ctx, mkt.ID, rem); err != nil {
					e.abort(st)
					return nil, errors.Wrap(err, "withdraw: covering demoted debt")
				}
			}
			withdrawn.Add(withdrawn, take)
		}
	}

	e.commit()
	e.log.Info("withdraw executed",
		logging.String("market-id", marketID),
		logging.String("party", party),
		logging.String("requested", amount.String()),
		logging.String("withdrawn", withdrawn.String()),
	)
	return withdrawn, nil
}

// Repay settles up to amount of party's debt, capped at what is owed, and
// reports what was actually repaid. The on-pool debt goes first; the
// peer-to-peer part is re-backed by replacement borrowers, then demoted
// suppliers, then the supply-side delta.
func (e *Engine) Repay(ctx context.Context, marketID, party string, amount *num.Uint, budget uint64) (_ *num.Uint, err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), marketID, "execution", "repay")
	defer func() { metrics.OperationCounterInc(marketID, "repay", outcome(err)) }()

	if amount == nil || amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	if mkt.Paused.Repay {
		return nil, types.ErrMarketPaused
	}
	st, err := e.begin(ctx, mkt)
	if err != nil {
		return nil, err
	}

	p := st.pos.Position(party)
	onPoolDebt := num.RayMulDown(p.OnPool(types.SideBorrow), mkt.Indexes.PoolBorrow)
	inP2PDebt := num.RayMulDown(p.InP2P(types.SideBorrow), mkt.Indexes.P2PBorrow)

	remaining := num.Min(amount, num.UintZero().AddSum(onPoolDebt, inP2PDebt)).Clone()
	repaid := num.UintZero()

	fromPool := num.Min(remaining, onPoolDebt).Clone()
	if !fromPool.IsZero() {
		if err := e.pool.Repay(ctx, mkt.ID, fromPool); err != nil {
			e.abort(st)
			return nil, errors.Wrap(err, "repay: settling on-pool debt")
		}
		dec := num.Min(num.RayDivUp(fromPool, mkt.Indexes.PoolBorrow), p.OnPool(types.SideBorrow)).Clone()
		e.matcher.UpdatePosition(ctx, mkt, st.pos, party, types.SideBorrow,
			num.UintZero().Sub(p.OnPool(types.SideBorrow), dec), p.InP2P(types.SideBorrow))
		repaid.Add(repaid, fromPool)
		remaining.Sub(remaining, fromPool)
	}

	if !remaining.IsZero() {
		take := num.Min(remaining, inP2PDebt).Clone()
		if !take.IsZero() {
			e.matcher.DebitP2P(ctx, mkt, st.pos, party, types.SideBorrow, take)

			absorbed := e.matcher.AbsorbDelta(ctx, mkt, types.SideBorrow, take)
			res := e.matcher.Match(ctx, mkt, st.pos, types.SideBorrow,
				num.UintZero().Sub(take, absorbed), budget)

			toSettle := num.UintZero().AddSum(absorbed, res.Matched)
			if !toSettle.IsZero() {
				if err := e.pool.Repay(ctx, mkt.ID, toSettle); err != nil {
					e.abort(st)
					return nil, errors.Wrap(err, "repay: settling replacement debt")
				}
			}

			rem := num.UintZero().Sub(take, toSettle)
			if !rem.IsZero() {
				res2 := e.matcher.Unmatch(ctx, mkt, st.pos, types.SideSupply, rem, budget-res.Cost)
				e.matcher.GrowDelta(ctx, mkt, types.SideSupply,
					num.UintZero().Sub(rem, res2.Matched))
				if err := e.pool.Supply(ctx, mkt.ID, rem); err != nil {
					e.abort(st)
					return nil, errors.Wrap(err, "repay: parking demoted liquidity")
				}
			}
			repaid.Add(repaid, take)
		}
	}

	e.commit()
	e.log.Info("repay executed",
		logging.String("market-id", marketID),
		logging.String("party", party),
		logging.String("requested", amount.String()),
		logging.String("repaid", repaid.String()),
	)
	return repaid, nil
}
