// Package stream implements the Lightstreamer-style push-channel client:
// connection lifecycle over a WebSocket, a subscription registry keyed by
// generated ids, and bounded per-class update channels. Grounded on
// original_source/src/transport/lightstreamer_client.rs, with the
// subscription-registry/ring-buffer idioms carried over from
// fixclient/tradestore.go.
package stream

import "github.com/gurre/ig-client-go/model"

// MarketUpdate is a decoded MARKET-class field update.
type MarketUpdate struct {
	Epic        string
	Bid         float64
	Offer       float64
	MarketState model.MarketState
	Timestamp   string
}

// AccountUpdate is a decoded ACCOUNT-class field update. Data holds the
// raw field map since account update shapes vary by update type
// (POSITION, WORKING_ORDER, ...).
type AccountUpdate struct {
	AccountID  string
	UpdateType string
	Data       map[string]string
}

// TradeUpdate is a decoded TRADE-class confirmation update.
type TradeUpdate struct {
	DealReference string
	Status        model.Status
	Data          map[string]string
}

// ChartUpdate is a decoded CHART-class tick/candle update.
type ChartUpdate struct {
	Epic string
	Data map[string]string
}

// Subscription is one active streaming registration.
type Subscription struct {
	ID    string
	Class model.SubscriptionClass
	Item  string
}

// ConnectionState is the lifecycle state of the stream transport.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Disconnecting
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}
