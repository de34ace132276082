package positions

import (
	"context"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/metrics"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Broker is the narrow audit surface this engine needs.
type Broker interface {
	Send(event events.Event)
	SendBatch(evts []events.Event)
}

// Engine is the position ledger for one market: every party's scaled
// balances and derived membership record. Balances are mutated by the
// matching engine and the entry-point orchestration only.
type Engine struct {
	log *logging.Logger
	Config

	marketID  string
	positions map[string]*types.Position

	broker Broker
}

// New instantiates a new positions engine for the given market.
func New(log *logging.Logger, config Config, marketID string, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Engine{
		log:       log,
		Config:    config,
		marketID:  marketID,
		positions: map[string]*types.Position{},
		broker:    broker,
	}
}

// Position returns a copy of the party's position. Parties the ledger has
// never seen get an all-zero position, positions are created implicitly
// on the first non-zero mutation.
func (e *Engine) Position(party string) *types.Position {
	if p, ok := e.positions[party]; ok {
		return p.Clone()
	}
	return types.NewPosition(party)
}

// Update sets both components of one side of the party's balance and
// emits the audit record. A position whose two sides are both fully zero
// is dropped from the ledger, clearing membership.
func (e *Engine) Update(ctx context.Context, party string, side types.Side, onPool, inP2P *num.Uint) {
	p, ok := e.positions[party]
	if !ok {
		if onPool.IsZero() && inP2P.IsZero() {
			// nothing to record, avoid materializing empty positions
			return
		}
		p = types.NewPosition(party)
		e.positions[party] = p
	}
	p.Update(side, onPool, inP2P)
	if p.IsZero() {
		delete(e.positions, party)
	}
	metrics.PositionGaugeSet(len(e.positions), e.marketID)
	e.broker.Send(events.NewPositionUpdated(ctx, e.marketID, party, side, onPool, inP2P))
}

// TotalUnderlying values the party's side at the given indices:
// onPool*poolIndex + inP2P*p2pIndex, both floored.
func (e *Engine) TotalUnderlying(party string, side types.Side, idx types.Indexes) *num.Uint {
	p := e.Position(party)
	return num.Sum(
		num.RayMulDown(p.OnPool(side), idx.Pool(side)),
		num.RayMulDown(p.InP2P(side), idx.P2P(side)),
	)
}

// Parties returns all parties with a live position, sorted for
// deterministic iteration.
func (e *Engine) Parties() []string {
	parties := maps.Keys(e.positions)
	sort.Strings(parties)
	return parties
}

// Len returns the number of live positions.
func (e *Engine) Len() int {
	return len(e.positions)
}

// State deep-copies the ledger, so an enclosing operation can be rolled
// back wholesale when a collaborator call fails.
func (e *Engine) State() map[string]*types.Position {
	cpy := make(map[string]*types.Position, len(e.positions))
	for k, v := range e.positions {
		cpy[k] = v.Clone()
	}
	return cpy
}

// Restore replaces the ledger content with a previously captured state.
func (e *Engine) Restore(state map[string]*types.Position) {
	e.positions = make(map[string]*types.Position, len(state))
	for k, v := range state {
		e.positions[k] = v.Clone()
	}
}
