package types

import (
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

// Position is a party's balances in one market, held in scaled units:
// divide nothing, multiply by the matching index to get underlying.
// OnPool balances scale with the pool indices, InP2P balances with the
// p2p indices. Membership flags are derived from the balances, never set
// directly.
type Position struct {
	Party string

	SupplyOnPool *num.Uint
	SupplyInP2P  *num.Uint
	BorrowOnPool *num.Uint
	BorrowInP2P  *num.Uint

	Supplying bool
	Borrowing bool
}

func NewPosition(party string) *Position {
	return &Position{
		Party:        party,
		SupplyOnPool: num.UintZero(),
		SupplyInP2P:  num.UintZero(),
		BorrowOnPool: num.UintZero(),
		BorrowInP2P:  num.UintZero(),
	}
}

// OnPool returns the scaled pool-backed balance for the given side.
func (p *Position) OnPool(side Side) *num.Uint {
	if side == SideSupply {
		return p.SupplyOnPool
	}
	return p.BorrowOnPool
}

// InP2P returns the scaled peer-to-peer balance for the given side.
func (p *Position) InP2P(side Side) *num.Uint {
	if side == SideSupply {
		return p.SupplyInP2P
	}
	return p.BorrowInP2P
}

func (p *Position) setOnPool(side Side, v *num.Uint) {
	if side == SideSupply {
		p.SupplyOnPool = v
	} else {
		p.BorrowOnPool = v
	}
}

func (p *Position) setInP2P(side Side, v *num.Uint) {
	if side == SideSupply {
		p.SupplyInP2P = v
	} else {
		p.BorrowInP2P = v
	}
}

// Update sets both components of a side and refreshes the membership
// flag: a party is a member of a side exactly while either component is
// non zero.
func (p *Position) Update(side Side, onPool, inP2P *num.Uint) {
	p.setOnPool(side, onPool.Clone())
	p.setInP2P(side, inP2P.Clone())
	member := !onPool.IsZero() || !inP2P.IsZero()
	if side == SideSupply {
		p.Supplying = member
	} else {
		p.Borrowing = member
	}
}

// IsZero reports whether the position carries no balance on either side.
func (p *Position) IsZero() bool {
	return !p.Supplying && !p.Borrowing
}

func (p *Position) Clone() *Position {
	return &Position{
		Party:        p.Party,
		SupplyOnPool: p.SupplyOnPool.Clone(),
		SupplyInP2P:  p.SupplyInP2P.Clone(),
		BorrowOnPool: p.BorrowOnPool.Clone(),
		BorrowInP2P:  p.BorrowInP2P.Clone(),
		Supplying:    p.Supplying,
		Borrowing:    p.Borrowing,
	}
}
