package types

import (
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Delta reconciles one side's recorded peer-to-peer promise against the
// liquidity actually matched with live counterparties.
//
// ScaledDelta is principal resting on the pool on behalf of the unmatched
// share of the promise, in pool units (multiply by the side's pool index
// for underlying). ScaledP2PTotal is the full recorded promise, in p2p
// units. At all times 0 <= delta*poolIndex <= total*p2pIndex.
type Delta struct {
	ScaledDelta    *num.Uint
	ScaledP2PTotal *num.Uint
}

func NewDelta() *Delta {
	return &Delta{
		ScaledDelta:    num.UintZero(),
		ScaledP2PTotal: num.UintZero(),
	}
}

func (d *Delta) Clone() *Delta {
	return &Delta{
		ScaledDelta:    d.ScaledDelta.Clone(),
		ScaledP2PTotal: d.ScaledP2PTotal.Clone(),
	}
}
