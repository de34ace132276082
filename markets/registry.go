package markets

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
)

// Registry owns every market's accounting state. All per-market maps the
// system needs live here, keyed by market id; components receive the
// market explicitly instead of reaching into shared globals.
type Registry struct {
	log *logging.Logger
	Config

	markets map[string]*types.Market
}

// New instantiates the market registry.
func New(log *logging.Logger, config Config) *Registry {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Registry{
		log:     log,
		Config:  config,
		markets: map[string]*types.Market{},
	}
}

// Create registers a new market. Markets are created once and never
// dropped.
func (r *Registry) Create(id string, params types.MarketParams) (*types.Market, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, ok := r.markets[id]; ok {
		return nil, types.ErrMarketAlreadyExists
	}
	mkt := types.NewMarket(id, params, r.MaxSortedUsers)
	r.markets[id] = mkt
	r.log.Info("market created",
		logging.String("market-id", id),
		logging.Uint64("reserve-factor-bps", params.ReserveFactor),
		logging.Uint64("p2p-cursor-bps", params.P2PIndexCursor),
	)
	return mkt, nil
}

// Get returns the live market for id.
func (r *Registry) Get(id string) (*types.Market, error) {
	mkt, ok := r.markets[id]
	if !ok {
		return nil, types.ErrMarketNotFound
	}
	return mkt, nil
}

// List returns all markets sorted by id, for deterministic inspection.
func (r *Registry) List() []*types.Market {
	ids := maps.Keys(r.markets)
	sort.Strings(ids)
	out := make([]*types.Market, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.markets[id])
	}
	return out
}

// Replace swaps a market's state wholesale, used by the execution layer
// to roll an aborted operation back to its pre-operation snapshot.
func (r *Registry) Replace(mkt *types.Market) {
	r.markets[mkt.ID] = mkt
}

// SetReserveFactor updates the market's reserve factor (admin surface).
func (r *Registry) SetReserveFactor(id string, bps uint64) error {
	mkt, err := r.Get(id)
	if err != nil {
		return err
	}
	params := mkt.Params
	params.ReserveFactor = bps
	if err := params.Validate(); err != nil {
		return err
	}
	mkt.Params = params
	return nil
}

// SetP2PIndexCursor updates the market's p2p index cursor (admin surface).
func (r *Registry) SetP2PIndexCursor(id string, bps uint64) error {
	mkt, err := r.Get(id)
	if err != nil {
		return err
	}
	params := mkt.Params
	params.P2PIndexCursor = bps
	if err := params.Validate(); err != nil {
		return err
	}
	mkt.Params = params
	return nil
}

// SetP2PDisabled flips peer-to-peer matching for the market; positions
// already matched stay matched, new liquidity goes straight to the pool.
func (r *Registry) SetP2PDisabled(id string, disabled bool) error {
	mkt, err := r.Get(id)
	if err != nil {
		return err
	}
	mkt.P2PDisabled = disabled
	return nil
}

// SetPaused replaces the market's pause flags (admin surface).
func (r *Registry) SetPaused(id string, flags types.PauseFlags) error {
	mkt, err := r.Get(id)
	if err != nil {
		return err
	}
	mkt.Paused = flags
	return nil
}
