package types

import (
	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/queue"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

var (
	// ErrMarketAlreadyExists is returned when creating a market with a known id.
	ErrMarketAlreadyExists = errors.New("market already exists")
	// ErrMarketNotFound is returned when looking up an unknown market id.
	ErrMarketNotFound = errors.New("market not found")
	// ErrInvalidBpsValue is returned for fractions outside [0, 10000] basis points.
	ErrInvalidBpsValue = errors.New("basis-point value out of range")
	// ErrMarketPaused is returned when the operation's pause flag is set.
	ErrMarketPaused = errors.New("market operation paused")
)

// MarketParams are the admin-set parameters of a market. Both fractions
// are expressed in basis points of [0, 10000].
type MarketParams struct {
	// ReserveFactor is the share of the p2p/pool spread kept as protocol
	// revenue.
	ReserveFactor uint64
	// P2PIndexCursor positions the p2p rate between the pool supply rate
	// (0) and the pool borrow rate (10000).
	P2PIndexCursor uint64
}

func (p MarketParams) Validate() error {
	if p.ReserveFactor > num.MaxBps || p.P2PIndexCursor > num.MaxBps {
		return ErrInvalidBpsValue
	}
	return nil
}

// Indexes groups the four interest indices of a market, all rays, all
// monotonically non-decreasing. The pool pair mirrors the underlying
// pool's authoritative indices as of the last update.
type Indexes struct {
	PoolSupply *num.Uint
	PoolBorrow *num.Uint
	P2PSupply  *num.Uint
	P2PBorrow  *num.Uint
}

func NewIndexes() Indexes {
	return Indexes{
		PoolSupply: num.Ray(),
		PoolBorrow: num.Ray(),
		P2PSupply:  num.Ray(),
		P2PBorrow:  num.Ray(),
	}
}

func (i Indexes) Clone() Indexes {
	return Indexes{
		PoolSupply: i.PoolSupply.Clone(),
		PoolBorrow: i.PoolBorrow.Clone(),
		P2PSupply:  i.P2PSupply.Clone(),
		P2PBorrow:  i.P2PBorrow.Clone(),
	}
}

// Pool returns the pool index for the given side.
func (i Indexes) Pool(side Side) *num.Uint {
	if side == SideSupply {
		return i.PoolSupply
	}
	return i.PoolBorrow
}

// P2P returns the peer-to-peer index for the given side.
func (i Indexes) P2P(side Side) *num.Uint {
	if side == SideSupply {
		return i.P2PSupply
	}
	return i.P2PBorrow
}

// PauseFlags gate the four user operations of a market.
type PauseFlags struct {
	Supply   bool
	Borrow   bool
	Withdraw bool
	Repay    bool
}

// Market is the per-asset accounting state: the four indices, the four
// priority queues, the two deltas, and the admin parameters. It is owned
// by the markets registry; the interest engine mutates the indices, the
// matching engine the queues and deltas, and admin operations the
// parameters and flags.
type Market struct {
	ID string

	Indexes Indexes
	Params  MarketParams

	SupplyDelta *Delta
	BorrowDelta *Delta

	SuppliersOnPool *queue.Queue
	SuppliersInP2P  *queue.Queue
	BorrowersOnPool *queue.Queue
	BorrowersInP2P  *queue.Queue

	P2PDisabled bool
	Paused      PauseFlags
}

func NewMarket(id string, params MarketParams, maxSortedUsers uint64) *Market {
	return &Market{
		ID:              id,
		Indexes:         NewIndexes(),
		Params:          params,
		SupplyDelta:     NewDelta(),
		BorrowDelta:     NewDelta(),
		SuppliersOnPool: queue.New(maxSortedUsers),
		SuppliersInP2P:  queue.New(maxSortedUsers),
		BorrowersOnPool: queue.New(maxSortedUsers),
		BorrowersInP2P:  queue.New(maxSortedUsers),
	}
}

// DeltaFor returns the delta tracking the given side's promise.
func (m *Market) DeltaFor(side Side) *Delta {
	if side == SideSupply {
		return m.SupplyDelta
	}
	return m.BorrowDelta
}

// OnPoolQueue returns the queue ranking the given side's pool-backed
// balances.
func (m *Market) OnPoolQueue(side Side) *queue.Queue {
	if side == SideSupply {
		return m.SuppliersOnPool
	}
	return m.BorrowersOnPool
}

// InP2PQueue returns the queue ranking the given side's peer-to-peer
// balances.
func (m *Market) InP2PQueue(side Side) *queue.Queue {
	if side == SideSupply {
		return m.SuppliersInP2P
	}
	return m.BorrowersInP2P
}

// MatchedUnderlying returns the underlying value of the side's promise
// actually matched with live counterparties:
// total*p2pIndex - delta*poolIndex, floored at zero. The conservation law
// says the two sides of a market agree on this value within rounding
// tolerance.
func (m *Market) MatchedUnderlying(side Side) *num.Uint {
	d := m.DeltaFor(side)
	promised := num.RayMulDown(d.ScaledP2PTotal, m.Indexes.P2P(side))
	resting := num.RayMulDown(d.ScaledDelta, m.Indexes.Pool(side))
	if resting.GT(promised) {
		return num.UintZero()
	}
	return num.UintZero().Sub(promised, resting)
}

// Clone deep-copies the market, queues included. The execution layer
// snapshots a market before an operation so a collaborator failure can
// roll the whole operation back.
func (m *Market) Clone() *Market {
	return &Market{
		ID:              m.ID,
		Indexes:         m.Indexes.Clone(),
		Params:          m.Params,
		SupplyDelta:     m.SupplyDelta.Clone(),
		BorrowDelta:     m.BorrowDelta.Clone(),
		SuppliersOnPool: m.SuppliersOnPool.Clone(),
		SuppliersInP2P:  m.SuppliersInP2P.Clone(),
		BorrowersOnPool: m.BorrowersOnPool.Clone(),
		BorrowersInP2P:  m.BorrowersInP2P.Clone(),
		P2PDisabled:     m.P2PDisabled,
		Paused:          m.Paused,
	}
}
