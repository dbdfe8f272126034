package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gurre/ig-client-go/model"
)

func TestMarketDispatchDecodesBidOfferAndState(t *testing.T) {
	var got MarketUpdate
	calls := 0
	var l Listeners
	l.OnMarket(func(u MarketUpdate) error {
		got = u
		calls++
		return nil
	})

	sub := Subscription{ID: "MARKET-1", Class: model.SubscriptionMarket, Item: "CS.D.EURUSD.CFD.IP"}
	l.dispatch(sub, map[string]string{"BID": "1.2000", "OFFER": "1.2010", "MARKET_STATE": "tradeable"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, "CS.D.EURUSD.CFD.IP", got.Epic)
	assert.Equal(t, 1.2000, got.Bid)
	assert.Equal(t, 1.2010, got.Offer)
	assert.Equal(t, model.MarketTradeable, got.MarketState)
}

func TestCallbackErrorDoesNotDisableFutureDispatch(t *testing.T) {
	calls := 0
	var l Listeners
	l.OnMarket(func(u MarketUpdate) error {
		calls++
		return errors.New("boom")
	})

	sub := Subscription{ID: "MARKET-1", Class: model.SubscriptionMarket, Item: "X"}
	l.dispatch(sub, map[string]string{"BID": "1.0"})
	l.dispatch(sub, map[string]string{"BID": "1.1"})
	l.dispatch(sub, map[string]string{"BID": "1.2"})

	assert.Equal(t, 3, calls)
}

func TestDispatchWithoutRegisteredListenerIsNoop(t *testing.T) {
	var l Listeners
	sub := Subscription{ID: "MARKET-1", Class: model.SubscriptionMarket, Item: "X"}
	assert.NotPanics(t, func() {
		l.dispatch(sub, map[string]string{"BID": "1.0"})
	})
}

func TestTradeDispatchCarriesRawFieldMap(t *testing.T) {
	var got TradeUpdate
	var l Listeners
	l.OnTrade(func(u TradeUpdate) error {
		got = u
		return nil
	})

	sub := Subscription{ID: "TRADE-1", Class: model.SubscriptionTrade, Item: "TRADE"}
	l.dispatch(sub, map[string]string{"dealReference": "ref-1", "status": "OPEN"})

	assert.Equal(t, model.Status("OPEN"), got.Status)
	assert.Equal(t, "ref-1", got.Data["dealReference"])
}

func TestParseOptFloatToleratesEmptyAndGarbage(t *testing.T) {
	assert.Equal(t, 0.0, parseOptFloat(""))
	assert.Equal(t, 0.0, parseOptFloat("not-a-number"))
	assert.Equal(t, 1091.0, parseOptFloat("1091.0"))
}
