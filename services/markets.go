package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/transport"
)

// SearchMarkets returns every market whose name matches searchTerm, per GET
// markets?searchTerm=... (Version 1).
func (c *Client) SearchMarkets(ctx context.Context, s session.Session, searchTerm string) ([]model.MarketData, error) {
	path := "markets?searchTerm=" + url.QueryEscape(searchTerm)
	resp, err := transport.Request[model.MarketSearchResult](ctx, c.Envelope, "GET", path, s, nil, "1")
	if err != nil {
		return nil, err
	}
	return resp.Markets, nil
}

// MarketDetails returns the full instrument/dealing-rules/snapshot composite
// for epic, per GET markets/{epic} (Version 3).
func (c *Client) MarketDetails(ctx context.Context, s session.Session, epic string) (model.MarketDetails, error) {
	path := "markets/" + url.PathEscape(epic)
	return transport.Request[model.MarketDetails](ctx, c.Envelope, "GET", path, s, nil, "3")
}

// HistoricalPrices returns OHLC bars for epic at the given resolution
// between from and to (both ISO-8601), per GET prices/{epic}/{resolution}
// (Version 3). Historical-price calls are rate-limited under the
// HistoricalPrice class at the caller's discretion - the envelope itself
// gates on whatever class s.Class names, so pass a session bound to
// ratelimit.HistoricalPrice for price-history-heavy callers.
func (c *Client) HistoricalPrices(ctx context.Context, s session.Session, epic, resolution, from, to string) (model.HistoricalPricesResponse, error) {
	path := fmt.Sprintf("prices/%s/%s?from=%s&to=%s", url.PathEscape(epic), url.PathEscape(resolution), url.QueryEscape(from), url.QueryEscape(to))
	return transport.Request[model.HistoricalPricesResponse](ctx, c.Envelope, "GET", path, s, nil, "3")
}
