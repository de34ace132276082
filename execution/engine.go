package execution

import (
	"context"

	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/interest"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/markets"
	"github.com/morpho-org/morpho-optimizers-sub014/matching"
	"github.com/morpho-org/morpho-optimizers-sub014/positions"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

var (
	// ErrInvalidAmount is returned for zero-amount operations.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrPoolShortfall is returned when the pool hands back less than the
	// operation needed, aborting it.
	ErrPoolShortfall = errors.New("pool returned less than requested")
)

// PoolAdapter is the underlying lending pool, the collaborator every
// unmatched remainder falls back to.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/pool_adapter_mock.go -package mocks github.com/morpho-org/morpho-optimizers-sub014/execution PoolAdapter
type PoolAdapter interface {
	Indexes(ctx context.Context, asset string) (supplyIndex, borrowIndex *num.Uint, err error)
	Supply(ctx context.Context, asset string, amount *num.Uint) error
	Withdraw(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error)
	Borrow(ctx context.Context, asset string, amount *num.Uint) error
	Repay(ctx context.Context, asset string, amount *num.Uint) error
}

// Broker is the audit sink for the whole engine tree.
type Broker interface {
	Send(event events.Event)
	SendBatch(evts []events.Event)
}

// Engine is the entry-point orchestration: it sequences index accrual,
// position-ledger reads/writes, matching and pool-adapter calls for each
// user action. Operations are run-to-completion and atomic: a
// collaborator failure rolls the market and its positions back to the
// pre-operation snapshot and leaves no audit trail. The caller serializes
// operations per market.
type Engine struct {
	log *logging.Logger
	Config

	pool   PoolAdapter
	broker Broker
	buf    *evtBuffer

	registry  *markets.Registry
	matcher   *matching.Engine
	interest  *interest.Engine
	positions map[string]*positions.Engine
}

// New instantiates the execution engine and the engines it drives.
func New(log *logging.Logger, config Config, pool PoolAdapter, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	buf := newEvtBuffer(broker)
	return &Engine{
		log:       log,
		Config:    config,
		pool:      pool,
		broker:    broker,
		buf:       buf,
		registry:  markets.New(log, config.Markets),
		matcher:   matching.New(log, config.Matching, buf),
		interest:  interest.New(log, config.Interest, pool, buf),
		positions: map[string]*positions.Engine{},
	}
}

// Registry exposes the market registry for admin and inspection.
func (e *Engine) Registry() *markets.Registry {
	return e.registry
}

// CreateMarket registers a market and its position ledger.
func (e *Engine) CreateMarket(id string, params types.MarketParams) error {
	if _, err := e.registry.Create(id, params); err != nil {
		return err
	}
	e.positions[id] = positions.New(e.log, e.Config.Positions, id, e.buf)
	return nil
}

// Position returns a copy of a party's position in a market.
func (e *Engine) Position(marketID, party string) (*types.Position, error) {
	pos, ok := e.positions[marketID]
	if !ok {
		return nil, types.ErrMarketNotFound
	}
	return pos.Position(party), nil
}

// TotalUnderlying values a party's side of a market at current indices,
// the read consumed by risk/health-factor collaborators.
func (e *Engine) TotalUnderlying(marketID, party string, side types.Side) (*num.Uint, error) {
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	return e.positions[marketID].TotalUnderlying(party, side, mkt.Indexes), nil
}

// UpdateMarketIndexes accrues a market's indices outside of any user
// operation, e.g. on a timer.
func (e *Engine) UpdateMarketIndexes(ctx context.Context, marketID string) error {
	mkt, err := e.registry.Get(marketID)
	if err != nil {
		return err
	}
	if err := e.interest.UpdateIndexes(ctx, mkt); err != nil {
		e.buf.discard()
		return err
	}
	e.buf.flush()
	return nil
}

// opState is the snapshot an operation rolls back to on abort.
type opState struct {
	mkt      *types.Market
	pos      *positions.Engine
	mktCopy  *types.Market
	posState map[string]*types.Position
}

// begin snapshots the market and its ledger and brings the indices
// current. The returned state feeds either commit or abort, exactly once.
func (e *Engine) begin(ctx context.Context, mkt *types.Market) (*opState, error) {
	pos := e.positions[mkt.ID]
	st := &opState{
		mkt:      mkt,
		pos:      pos,
		mktCopy:  mkt.Clone(),
		posState: pos.State(),
	}
	if err := e.interest.UpdateIndexes(ctx, mkt); err != nil {
		e.abort(st)
		return nil, err
	}
	return st, nil
}

func (e *Engine) commit() {
	e.buf.flush()
}

// outcome is the metrics label for an operation result.
func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (e *Engine) abort(st *opState) {
	e.registry.Replace(st.mktCopy)
	st.pos.Restore(st.posState)
	e.buf.discard()
}
