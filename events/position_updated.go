package events

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// PositionUpdated is emitted after every mutation of a party's scaled
// balances, carrying the balances after the change.
type PositionUpdated struct {
	Base
	marketID string
	party    string
	side     types.Side
	onPool   *num.Uint
	inP2P    *num.Uint
}

func NewPositionUpdated(ctx context.Context, marketID, party string, side types.Side, onPool, inP2P *num.Uint) *PositionUpdated {
	return &PositionUpdated{
		Base:     newBase(ctx, PositionUpdatedEvent),
		marketID: marketID,
		party:    party,
		side:     side,
		onPool:   onPool.Clone(),
		inP2P:    inP2P.Clone(),
	}
}

func (p PositionUpdated) MarketID() string {
	return p.marketID
}

func (p PositionUpdated) Party() string {
	return p.party
}

func (p PositionUpdated) Side() types.Side {
	return p.side
}

// OnPool is the scaled pool-backed balance after the mutation.
func (p PositionUpdated) OnPool() *num.Uint {
	return p.onPool.Clone()
}

// InP2P is the scaled peer-to-peer balance after the mutation.
func (p PositionUpdated) InP2P() *num.Uint {
	return p.inP2P.Clone()
}
