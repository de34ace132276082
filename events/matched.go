package events

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Matched is emitted once per counterparty touched by the matching loop,
// with the underlying value moved for that counterparty.
type Matched struct {
	Base
	marketID  string
	party     string
	side      types.Side
	direction types.Direction
	amount    *num.Uint
}

func NewMatched(ctx context.Context, marketID, party string, side types.Side, direction types.Direction, amount *num.Uint) *Matched {
	return &Matched{
		Base:      newBase(ctx, MatchedEvent),
		marketID:  marketID,
		party:     party,
		side:      side,
		direction: direction,
		amount:    amount.Clone(),
	}
}

func (m Matched) MarketID() string {
	return m.marketID
}

func (m Matched) Party() string {
	return m.party
}

func (m Matched) Side() types.Side {
	return m.side
}

func (m Matched) Direction() types.Direction {
	return m.direction
}

// Amount is the underlying value moved between the pool side and the
// peer-to-peer side for this counterparty.
func (m Matched) Amount() *num.Uint {
	return m.amount.Clone()
}
