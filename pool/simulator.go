package pool

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// AssetParams configure a simulated asset: the per-step ray growth
// factors applied to the pool indices on every Step call. A growth of
// exactly 1 ray freezes the index.
type AssetParams struct {
	SupplyGrowthPerStep *num.Uint
	BorrowGrowthPerStep *num.Uint
}

type simAsset struct {
	params      AssetParams
	supplyIndex *num.Uint
	borrowIndex *num.Uint
	// underlying tokens sitting in the pool, available for withdraw/borrow
	liquidity *num.Uint
}

// Simulator is a minimal stand-in for the underlying pool. It accrues its
// two indices by fixed per-step growth factors and tracks one liquidity
// figure per asset. Deliberately step-driven rather than clock-driven so
// tests stay deterministic.
type Simulator struct {
	log    *logging.Logger
	assets map[string]*simAsset
}

func NewSimulator(log *logging.Logger, config Config) *Simulator {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Simulator{
		log:    log,
		assets: map[string]*simAsset{},
	}
}

// RegisterAsset makes the simulator aware of an asset, with both indices
// starting at 1 ray and zero liquidity.
func (s *Simulator) RegisterAsset(asset string, params AssetParams) {
	if params.SupplyGrowthPerStep == nil {
		params.SupplyGrowthPerStep = num.Ray()
	}
	if params.BorrowGrowthPerStep == nil {
		params.BorrowGrowthPerStep = num.Ray()
	}
	s.assets[asset] = &simAsset{
		params:      params,
		supplyIndex: num.Ray(),
		borrowIndex: num.Ray(),
		liquidity:   num.UintZero(),
	}
}

// Step accrues one step of interest on the asset's indices.
func (s *Simulator) Step(asset string) error {
	a, ok := s.assets[asset]
	if !ok {
		return ErrUnknownAsset
	}
	a.supplyIndex = num.RayMulDown(a.supplyIndex, a.params.SupplyGrowthPerStep)
	a.borrowIndex = num.RayMulDown(a.borrowIndex, a.params.BorrowGrowthPerStep)
	if s.log.IsDebug() {
		s.log.Debug("pool indices accrued",
			logging.String("asset", asset),
			logging.String("supply-index", num.DecimalFromRay(a.supplyIndex).String()),
			logging.String("borrow-index", num.DecimalFromRay(a.borrowIndex).String()),
		)
	}
	return nil
}

// SetIndexes overrides both indices, for tests driving exact values.
func (s *Simulator) SetIndexes(asset string, supply, borrow *num.Uint) error {
	a, ok := s.assets[asset]
	if !ok {
		return ErrUnknownAsset
	}
	a.supplyIndex = supply.Clone()
	a.borrowIndex = borrow.Clone()
	return nil
}

// Indexes returns the current pool supply and borrow indices.
func (s *Simulator) Indexes(_ context.Context, asset string) (*num.Uint, *num.Uint, error) {
	a, ok := s.assets[asset]
	if !ok {
		return nil, nil, ErrUnknownAsset
	}
	return a.supplyIndex.Clone(), a.borrowIndex.Clone(), nil
}

// Supply deposits underlying into the pool.
func (s *Simulator) Supply(_ context.Context, asset string, amount *num.Uint) error {
	a, ok := s.assets[asset]
	if !ok {
		return ErrUnknownAsset
	}
	a.liquidity.Add(a.liquidity, amount)
	return nil
}

// Withdraw takes underlying out of the pool, returning how much could
// actually be withdrawn given the pool's liquidity.
func (s *Simulator) Withdraw(_ context.Context, asset string, amount *num.Uint) (*num.Uint, error) {
	a, ok := s.assets[asset]
	if !ok {
		return nil, ErrUnknownAsset
	}
	got := num.Min(amount, a.liquidity).Clone()
	a.liquidity.Sub(a.liquidity, got)
	return got, nil
}

// Borrow draws underlying debt from the pool.
func (s *Simulator) Borrow(_ context.Context, asset string, amount *num.Uint) error {
	a, ok := s.assets[asset]
	if !ok {
		return ErrUnknownAsset
	}
	if amount.GT(a.liquidity) {
		return ErrInsufficientLiquidity
	}
	a.liquidity.Sub(a.liquidity, amount)
	return nil
}

// Repay pays pool debt back.
func (s *Simulator) Repay(_ context.Context, asset string, amount *num.Uint) error {
	a, ok := s.assets[asset]
	if !ok {
		return ErrUnknownAsset
	}
	a.liquidity.Add(a.liquidity, amount)
	return nil
}

// Liquidity returns the underlying sitting in the pool for the asset.
func (s *Simulator) Liquidity(asset string) *num.Uint {
	a, ok := s.assets[asset]
	if !ok {
		return num.UintZero()
	}
	return a.liquidity.Clone()
}
