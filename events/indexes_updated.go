package events

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/types"
)

// IndexesUpdated is emitted after an index accrual pass, carrying the
// four indices as of the update.
type IndexesUpdated struct {
	Base
	marketID string
	indexes  types.Indexes
}

func NewIndexesUpdated(ctx context.Context, marketID string, indexes types.Indexes) *IndexesUpdated {
	return &IndexesUpdated{
		Base:     newBase(ctx, IndexesUpdatedEvent),
		marketID: marketID,
		indexes:  indexes.Clone(),
	}
}

func (i IndexesUpdated) MarketID() string {
	return i.marketID
}

func (i IndexesUpdated) Indexes() types.Indexes {
	return i.indexes.Clone()
}
