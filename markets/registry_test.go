package markets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/markets"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
)

func getTestRegistry() *markets.Registry {
	return markets.New(logging.NewTestLogger(), markets.NewDefaultConfig())
}

func TestCreateAndGet(t *testing.T) {
	reg := getTestRegistry()

	mkt, err := reg.Create("DAI", types.MarketParams{ReserveFactor: 1000, P2PIndexCursor: 5000})
	require.NoError(t, err)
	assert.Equal(t, "DAI", mkt.ID)
	assert.True(t, mkt.Indexes.PoolSupply.EQ(mkt.Indexes.P2PSupply))

	got, err := reg.Get("DAI")
	require.NoError(t, err)
	assert.Same(t, mkt, got)

	_, err = reg.Get("GHOST")
	assert.ErrorIs(t, err, types.ErrMarketNotFound)

	_, err = reg.Create("DAI", types.MarketParams{})
	assert.ErrorIs(t, err, types.ErrMarketAlreadyExists)

	_, err = reg.Create("USDC", types.MarketParams{ReserveFactor: 10_001})
	assert.ErrorIs(t, err, types.ErrInvalidBpsValue)
}

func TestListIsSorted(t *testing.T) {
	reg := getTestRegistry()
	for _, id := range []string{"USDC", "DAI", "WETH"} {
		_, err := reg.Create(id, types.MarketParams{})
		require.NoError(t, err)
	}

	var ids []string
	for _, mkt := range reg.List() {
		ids = append(ids, mkt.ID)
	}
	assert.Equal(t, []string{"DAI", "USDC", "WETH"}, ids)
}

func TestAdminSetters(t *testing.T) {
	reg := getTestRegistry()
	_, err := reg.Create("DAI", types.MarketParams{})
	require.NoError(t, err)

	require.NoError(t, reg.SetReserveFactor("DAI", 2000))
	require.NoError(t, reg.SetP2PIndexCursor("DAI", 4000))
	require.NoError(t, reg.SetP2PDisabled("DAI", true))
	require.NoError(t, reg.SetPaused("DAI", types.PauseFlags{Borrow: true}))

	mkt, _ := reg.Get("DAI")
	assert.Equal(t, uint64(2000), mkt.Params.ReserveFactor)
	assert.Equal(t, uint64(4000), mkt.Params.P2PIndexCursor)
	assert.True(t, mkt.P2PDisabled)
	assert.True(t, mkt.Paused.Borrow)

	// out-of-range fractions are rejected, the market keeps its value
	assert.ErrorIs(t, reg.SetReserveFactor("DAI", 10_001), types.ErrInvalidBpsValue)
	assert.Equal(t, uint64(2000), mkt.Params.ReserveFactor)

	assert.ErrorIs(t, reg.SetReserveFactor("GHOST", 1), types.ErrMarketNotFound)
}

func TestReplace(t *testing.T) {
	reg := getTestRegistry()
	mkt, err := reg.Create("DAI", types.MarketParams{})
	require.NoError(t, err)

	snap := mkt.Clone()
	mkt.P2PDisabled = true

	reg.Replace(snap)
	got, _ := reg.Get("DAI")
	assert.False(t, got.P2PDisabled)
}
