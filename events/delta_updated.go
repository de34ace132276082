package events

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// DeltaUpdated is emitted whenever a side's delta changes, with the new
// scaled delta (pool units).
type DeltaUpdated struct {
	Base
	marketID string
	side     types.Side
	delta    *num.Uint
}

func NewDeltaUpdated(ctx context.Context, marketID string, side types.Side, delta *num.Uint) *DeltaUpdated {
	return &DeltaUpdated{
		Base:     newBase(ctx, DeltaUpdatedEvent),
		marketID: marketID,
		side:     side,
		delta:    delta.Clone(),
	}
}

func (d DeltaUpdated) MarketID() string {
	return d.marketID
}

func (d DeltaUpdated) Side() types.Side {
	return d.side
}

func (d DeltaUpdated) Delta() *num.Uint {
	return d.delta.Clone()
}
