package positions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/positions"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

type stubBroker struct {
	evts []events.Event
}

func (b *stubBroker) Send(e events.Event) {
	b.evts = append(b.evts, e)
}

func (b *stubBroker) SendBatch(evts []events.Event) {
	b.evts = append(b.evts, evts...)
}

func getTestEngine() (*positions.Engine, *stubBroker) {
	brk := &stubBroker{}
	eng := positions.New(logging.NewTestLogger(), positions.NewDefaultConfig(), "DAI", brk)
	return eng, brk
}

func TestImplicitCreation(t *testing.T) {
	eng, brk := getTestEngine()
	ctx := context.Background()

	// unseen party reads as an all-zero position
	p := eng.Position("alice")
	assert.True(t, p.SupplyOnPool.IsZero())
	assert.False(t, p.Supplying)
	assert.Equal(t, 0, eng.Len())

	eng.Update(ctx, "alice", types.SideSupply, num.NewUint(100), num.UintZero())
	assert.Equal(t, 1, eng.Len())
	p = eng.Position("alice")
	assert.True(t, p.SupplyOnPool.EQUint64(100))
	assert.True(t, p.Supplying)
	assert.False(t, p.Borrowing)
	require.Len(t, brk.evts, 1)
	assert.Equal(t, events.PositionUpdatedEvent, brk.evts[0].Type())
}

func TestMembershipClearing(t *testing.T) {
	eng, _ := getTestEngine()
	ctx := context.Background()

	eng.Update(ctx, "alice", types.SideSupply, num.NewUint(100), num.NewUint(50))
	eng.Update(ctx, "alice", types.SideBorrow, num.UintZero(), num.NewUint(30))

	p := eng.Position("alice")
	assert.True(t, p.Supplying)
	assert.True(t, p.Borrowing)

	// membership clears only when both components of the side hit zero
	eng.Update(ctx, "alice", types.SideSupply, num.UintZero(), num.NewUint(50))
	assert.True(t, eng.Position("alice").Supplying)
	eng.Update(ctx, "alice", types.SideSupply, num.UintZero(), num.UintZero())
	assert.False(t, eng.Position("alice").Supplying)
	assert.Equal(t, 1, eng.Len())

	// the fully zero position is dropped from the ledger
	eng.Update(ctx, "alice", types.SideBorrow, num.UintZero(), num.UintZero())
	assert.Equal(t, 0, eng.Len())
}

func TestZeroUpdateOnUnknownParty(t *testing.T) {
	eng, brk := getTestEngine()

	eng.Update(context.Background(), "ghost", types.SideSupply, num.UintZero(), num.UintZero())
	assert.Equal(t, 0, eng.Len())
	assert.Empty(t, brk.evts)
}

func TestTotalUnderlying(t *testing.T) {
	eng, _ := getTestEngine()
	ctx := context.Background()

	eng.Update(ctx, "alice", types.SideSupply, num.NewUint(100), num.NewUint(40))

	idx := types.NewIndexes()
	// pool index 1.5, p2p index 2.0
	idx.PoolSupply = num.MustUintFromString("1500000000000000000000000000", 10)
	idx.P2PSupply = num.MustUintFromString("2000000000000000000000000000", 10)

	// 100*1.5 + 40*2.0 = 230
	assert.True(t, eng.TotalUnderlying("alice", types.SideSupply, idx).EQUint64(230))
	assert.True(t, eng.TotalUnderlying("alice", types.SideBorrow, idx).IsZero())
}

func TestPartiesSorted(t *testing.T) {
	eng, _ := getTestEngine()
	ctx := context.Background()

	for _, party := range []string{"zoe", "alice", "mallory"} {
		eng.Update(ctx, party, types.SideSupply, num.NewUint(1), num.UintZero())
	}
	assert.Equal(t, []string{"alice", "mallory", "zoe"}, eng.Parties())
}

func TestStateRestore(t *testing.T) {
	eng, _ := getTestEngine()
	ctx := context.Background()

	eng.Update(ctx, "alice", types.SideSupply, num.NewUint(100), num.UintZero())
	snap := eng.State()

	eng.Update(ctx, "alice", types.SideSupply, num.NewUint(7), num.UintZero())
	eng.Update(ctx, "bob", types.SideBorrow, num.NewUint(9), num.UintZero())
	require.Equal(t, 2, eng.Len())

	eng.Restore(snap)
	assert.Equal(t, 1, eng.Len())
	assert.True(t, eng.Position("alice").SupplyOnPool.EQUint64(100))
	assert.True(t, eng.Position("bob").BorrowOnPool.IsZero())
}
