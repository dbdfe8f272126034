package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/transport"
)

// Activity returns the account activity log between from and to (both
// ISO-8601), optionally requesting the detailed variant, per GET
// history/activity (Version 3). pageSize defaults to 500 when <= 0, per
// SPEC_FULL.md §6.
func (c *Client) Activity(ctx context.Context, s session.Session, from, to string, detailed bool, pageSize int) (model.ActivityHistory, error) {
	if pageSize <= 0 {
		pageSize = 500
	}
	path := fmt.Sprintf("history/activity?from=%s&to=%s&pageSize=%d", url.QueryEscape(from), url.QueryEscape(to), pageSize)
	if detailed {
		path += "&detailed=true"
	}
	return transport.Request[model.ActivityHistory](ctx, c.Envelope, "GET", path, s, nil, "3")
}

// Transactions returns one page of the account transaction history between
// from and to, per GET history/transactions (Version 2).
func (c *Client) Transactions(ctx context.Context, s session.Session, from, to string, pageSize, pageNumber int) (model.TransactionHistory, error) {
	path := fmt.Sprintf("history/transactions?from=%s&to=%s&pageSize=%d&pageNumber=%d",
		url.QueryEscape(from), url.QueryEscape(to), pageSize, pageNumber)
	return transport.Request[model.TransactionHistory](ctx, c.Envelope, "GET", path, s, nil, "2")
}
