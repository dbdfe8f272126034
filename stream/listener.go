// Listener framework: the generic callback adapter that bridges a raw push
// record (item name + field map) into a typed domain event and invokes a
// caller-supplied callback. Grounded on SPEC_FULL.md §9's re-architecture
// note ("tagged-variant dispatch table... a Listener owns the function value
// it holds") and on fixclient/fixapp.go's callback-holder shape, generalized
// from quickfix.Application's fixed method set into a per-class registration
// table since Go has no dynamic dispatch to lean on.
package stream

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gurre/ig-client-go/model"
)

// MarketListener is invoked once per decoded MARKET-class update.
type MarketListener func(MarketUpdate) error

// AccountListener is invoked once per decoded ACCOUNT-class update.
type AccountListener func(AccountUpdate) error

// TradeListener is invoked once per decoded TRADE-class update.
type TradeListener func(TradeUpdate) error

// ChartListener is invoked once per decoded CHART-class update.
type ChartListener func(ChartUpdate) error

// Listeners holds at most one callback per subscription class. A Client owns
// exactly one Listeners value; every subscription of a given class dispatches
// to the same registered callback (SPEC_FULL.md §4.5: "each subscription has
// exactly one listener").
type Listeners struct {
	market  MarketListener
	account AccountListener
	trade   TradeListener
	chart   ChartListener
}

// OnMarket registers (or replaces) the MARKET-class callback.
func (l *Listeners) OnMarket(fn MarketListener) { l.market = fn }

// OnAccount registers (or replaces) the ACCOUNT-class callback.
func (l *Listeners) OnAccount(fn AccountListener) { l.account = fn }

// OnTrade registers (or replaces) the TRADE-class callback.
func (l *Listeners) OnTrade(fn TradeListener) { l.trade = fn }

// OnChart registers (or replaces) the CHART-class callback.
func (l *Listeners) OnChart(fn ChartListener) { l.chart = fn }

// dispatch converts one raw field-map update for sub into the typed record
// for sub.Class and invokes the registered callback, if any. A callback error
// is logged and discarded (SPEC_FULL.md §4.5 step 3; §7 propagation policy) -
// it never propagates to the transport, and it never disables future
// dispatch on the same subscription (§8 property 6).
func (l *Listeners) dispatch(sub Subscription, fields map[string]string) {
	switch sub.Class {
	case model.SubscriptionMarket:
		if l.market == nil {
			return
		}
		if err := l.market(decodeMarketUpdate(sub.Item, fields)); err != nil {
			logrus.WithField("epic", sub.Item).WithError(err).Error("stream: market listener callback failed")
		}
	case model.SubscriptionAccount:
		if l.account == nil {
			return
		}
		if err := l.account(decodeAccountUpdate(sub.Item, fields)); err != nil {
			logrus.WithError(err).Error("stream: account listener callback failed")
		}
	case model.SubscriptionTrade:
		if l.trade == nil {
			return
		}
		if err := l.trade(decodeTradeUpdate(fields)); err != nil {
			logrus.WithError(err).Error("stream: trade listener callback failed")
		}
	case model.SubscriptionChart, model.SubscriptionPrice:
		if l.chart == nil {
			return
		}
		if err := l.chart(decodeChartUpdate(sub.Item, fields)); err != nil {
			logrus.WithField("epic", sub.Item).WithError(err).Error("stream: chart listener callback failed")
		}
	}
}

func decodeMarketUpdate(epic string, f map[string]string) MarketUpdate {
	return MarketUpdate{
		Epic:        epic,
		Bid:         parseOptFloat(f["BID"]),
		Offer:       parseOptFloat(f["OFFER"]),
		MarketState: model.ParseMarketState(f["MARKET_STATE"]),
		Timestamp:   f["UPDATE_TIME"],
	}
}

func decodeAccountUpdate(accountID string, f map[string]string) AccountUpdate {
	data := make(map[string]string, len(f))
	for k, v := range f {
		data[k] = v
	}
	return AccountUpdate{AccountID: accountID, UpdateType: "ACCOUNT", Data: data}
}

func decodeTradeUpdate(f map[string]string) TradeUpdate {
	data := make(map[string]string, len(f))
	for k, v := range f {
		data[k] = v
	}
	ref := f["dealReference"]
	return TradeUpdate{DealReference: ref, Status: model.Status(f["status"]), Data: data}
}

func decodeChartUpdate(epic string, f map[string]string) ChartUpdate {
	data := make(map[string]string, len(f))
	for k, v := range f {
		data[k] = v
	}
	return ChartUpdate{Epic: epic, Data: data}
}

// parseOptFloat returns 0 for an empty or non-numeric string; unlike
// model.OptFloat it neither keeps empty as absent nor rejects garbage (the
// streaming decode path reports absence as a zero bid/offer rather than
// threading OptFloat through MarketUpdate, since streaming fields are always
// either a fresh numeric string or omitted entirely from the changed-field map).
func parseOptFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
