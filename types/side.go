package types

// Side identifies one of the two sides of a market, the suppliers or the
// borrowers. Deltas, p2p totals and indices all come in pairs keyed by
// side.
type Side int8

const (
	SideSupply Side = iota
	SideBorrow
)

func (s Side) String() string {
	switch s {
	case SideSupply:
		return "supply"
	case SideBorrow:
		return "borrow"
	}
	return "unknown"
}

// Opposite returns the other side of the market.
func (s Side) Opposite() Side {
	if s == SideSupply {
		return SideBorrow
	}
	return SideSupply
}

// Direction selects which way the matching engine moves liquidity:
// Match promotes pool-backed balances into peer-to-peer, Unmatch demotes
// them back onto the pool.
type Direction int8

const (
	DirectionMatch Direction = iota
	DirectionUnmatch
)

func (d Direction) String() string {
	switch d {
	case DirectionMatch:
		return "match"
	case DirectionUnmatch:
		return "unmatch"
	}
	return "unknown"
}
