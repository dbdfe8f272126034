package services

import (
	"context"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/transport"
)

// Accounts returns every account visible to s, per GET accounts (Version 1).
func (c *Client) Accounts(ctx context.Context, s session.Session) ([]model.Account, error) {
	resp, err := transport.Request[model.AccountsResponse](ctx, c.Envelope, "GET", "accounts", s, nil, "1")
	if err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Positions returns every open position on s's active account, per GET
// positions (Version 2).
func (c *Client) Positions(ctx context.Context, s session.Session) ([]model.Position, error) {
	resp, err := transport.Request[model.Positions](ctx, c.Envelope, "GET", "positions", s, nil, "2")
	if err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// WorkingOrders returns every pending order on s's active account, per GET
// workingorders (Version 2).
func (c *Client) WorkingOrders(ctx context.Context, s session.Session) ([]model.WorkingOrder, error) {
	resp, err := transport.Request[model.WorkingOrders](ctx, c.Envelope, "GET", "workingorders", s, nil, "2")
	if err != nil {
		return nil, err
	}
	return resp.WorkingOrders, nil
}
