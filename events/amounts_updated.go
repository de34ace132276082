package events

import (
	"context"

	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// P2PAmountsUpdated is emitted whenever a market's recorded peer-to-peer
// totals change, with both new totals (p2p units).
type P2PAmountsUpdated struct {
	Base
	marketID     string
	supplyAmount *num.Uint
	borrowAmount *num.Uint
}

func NewP2PAmountsUpdated(ctx context.Context, marketID string, supplyAmount, borrowAmount *num.Uint) *P2PAmountsUpdated {
	return &P2PAmountsUpdated{
		Base:         newBase(ctx, P2PAmountsUpdatedEvent),
		marketID:     marketID,
		supplyAmount: supplyAmount.Clone(),
		borrowAmount: borrowAmount.Clone(),
	}
}

func (a P2PAmountsUpdated) MarketID() string {
	return a.marketID
}

func (a P2PAmountsUpdated) SupplyAmount() *num.Uint {
	return a.supplyAmount.Clone()
}

func (a P2PAmountsUpdated) BorrowAmount() *num.Uint {
	return a.borrowAmount.Clone()
}
