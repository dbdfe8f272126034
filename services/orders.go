package services

import (
	"context"
	"fmt"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/transport"
)

// CreateOrder submits req as a new OTC position, per POST positions/otc
// (Version 2). The returned deal reference must be polled via Confirm to
// learn the order's eventual fill outcome.
func (c *Client) CreateOrder(ctx context.Context, s session.Session, req model.CreateOrderRequest) (model.CreateOrderResponse, error) {
	return transport.Request[model.CreateOrderResponse](ctx, c.Envelope, "POST", "positions/otc", s, req, "2")
}

// CreateWorkingOrder submits req as a new resting limit/stop order, per POST
// workingorders/otc (Version 2).
func (c *Client) CreateWorkingOrder(ctx context.Context, s session.Session, req model.CreateOrderRequest) (model.CreateOrderResponse, error) {
	return transport.Request[model.CreateOrderResponse](ctx, c.Envelope, "POST", "workingorders/otc", s, req, "2")
}

// UpdatePosition amends an open position's stop/limit/trailing-stop
// parameters, per PUT positions/otc/{dealId} (Version 2).
func (c *Client) UpdatePosition(ctx context.Context, s session.Session, dealID string, req model.UpdatePositionRequest) (model.CreateOrderResponse, error) {
	path := fmt.Sprintf("positions/otc/%s", dealID)
	return transport.Request[model.CreateOrderResponse](ctx, c.Envelope, "PUT", path, s, req, "2")
}

// ClosePosition closes an open position at market or a limit level, per
// POST positions/otc (Version 1, distinct payload shape from CreateOrder's
// Version 2 body).
func (c *Client) ClosePosition(ctx context.Context, s session.Session, req model.ClosePositionRequest) (model.ClosePositionResponse, error) {
	return transport.Request[model.ClosePositionResponse](ctx, c.Envelope, "POST", "positions/otc", s, req, "1")
}

// Confirm retrieves the final outcome of a previously submitted order, per
// GET confirms/{dealReference} (Version 1).
func (c *Client) Confirm(ctx context.Context, s session.Session, dealReference string) (model.OrderConfirmation, error) {
	path := "confirms/" + dealReference
	return transport.Request[model.OrderConfirmation](ctx, c.Envelope, "GET", path, s, nil, "1")
}
