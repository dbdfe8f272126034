package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurre/ig-client-go/model"
)

func TestCacheRingBufferEvictsOldest(t *testing.T) {
	c := NewCache(3)
	c.AttachMarket(MarketUpdate{Epic: "X", Bid: 1.0, Offer: 1.1})
	c.AttachMarket(MarketUpdate{Epic: "X", Bid: 2.0, Offer: 2.1})
	c.AttachMarket(MarketUpdate{Epic: "X", Bid: 3.0, Offer: 3.1})
	c.AttachMarket(MarketUpdate{Epic: "X", Bid: 4.0, Offer: 4.1})

	recent := c.RecentTicks("X", 0)
	require.Len(t, recent, 3)
	assert.Equal(t, 2.0, recent[0].Bid)
	assert.Equal(t, 3.0, recent[1].Bid)
	assert.Equal(t, 4.0, recent[2].Bid)
}

func TestCacheRecentTicksUnknownEpic(t *testing.T) {
	c := NewCache(10)
	assert.Nil(t, c.RecentTicks("UNKNOWN", 5))
}

func TestCacheOrderMergesNonEmptyFieldsOnly(t *testing.T) {
	c := NewCache(10)
	c.AttachTrade(TradeUpdate{Status: model.StatusOpen, Data: map[string]string{"dealId": "D1", "level": "100.5"}})
	c.AttachTrade(TradeUpdate{Status: "", Data: map[string]string{"dealId": "D1", "level": ""}})

	state, ok := c.Order("D1")
	require.True(t, ok)
	assert.Equal(t, model.StatusOpen, state.Status, "empty status on a later update must not overwrite the tracked one")
	assert.Equal(t, "100.5", state.Fields["level"], "empty level on a later update must not overwrite the tracked one")
}

func TestCacheOrderUnknownDeal(t *testing.T) {
	c := NewCache(10)
	_, ok := c.Order("missing")
	assert.False(t, ok)
}

func TestCacheAllOrdersReturnsDefensiveCopies(t *testing.T) {
	c := NewCache(10)
	c.AttachTrade(TradeUpdate{Status: model.StatusFilled, Data: map[string]string{"dealId": "D1"}})

	all := c.AllOrders()
	require.Len(t, all, 1)
	all[0].Fields["mutated"] = "yes"

	state, _ := c.Order("D1")
	_, mutated := state.Fields["mutated"]
	assert.False(t, mutated, "mutating a returned copy must not affect cache state")
}

func TestCacheAttachTradeIgnoresMissingDealID(t *testing.T) {
	c := NewCache(10)
	c.AttachTrade(TradeUpdate{Status: model.StatusOpen, Data: map[string]string{}})
	assert.Empty(t, c.AllOrders())
}
