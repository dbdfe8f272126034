package model

// CreateOrderRequest is the body of POST positions/otc and POST workingorders/otc.
// Built with the constructors below rather than a struct literal, mirroring
// original_source/src/application/models/order.rs's market()/limit() builder
// methods on CreateOrderRequest.
type CreateOrderRequest struct {
	Epic           string      `json:"epic"`
	Direction      Direction   `json:"direction"`
	Size           float64     `json:"size"`
	OrderType      OrderType   `json:"orderType"`
	TimeInForce    TimeInForce `json:"timeInForce"`
	Level          *OptFloat   `json:"level,omitempty"`
	GuaranteedStop *OptBool    `json:"guaranteedStop,omitempty"`
	StopLevel      *OptFloat   `json:"stopLevel,omitempty"`
	StopDistance   *OptFloat   `json:"stopDistance,omitempty"`
	LimitLevel     *OptFloat   `json:"limitLevel,omitempty"`
	LimitDistance  *OptFloat   `json:"limitDistance,omitempty"`
	Expiry         string      `json:"expiry,omitempty"`
	DealReference  *string     `json:"dealReference,omitempty"`
	ForceOpen      *OptBool    `json:"forceOpen,omitempty"`
}

// NewMarketOrder builds a CreateOrderRequest that deals at the current
// market price with GOOD_TILL_CANCELLED and no guaranteed stop, the same
// defaults as order.rs's CreateOrderRequest::market().
func NewMarketOrder(epic string, direction Direction, size float64) CreateOrderRequest {
	return CreateOrderRequest{
		Epic:           epic,
		Direction:      direction,
		Size:           size,
		OrderType:      OrderTypeMarket,
		TimeInForce:    GoodTillCancelled,
		Expiry:         "-",
		GuaranteedStop: SomeBoolPtr(false),
		ForceOpen:      SomeBoolPtr(true),
	}
}

// NewLimitOrder builds a CreateOrderRequest that only fills at level or
// better, mirroring CreateOrderRequest::limit().
func NewLimitOrder(epic string, direction Direction, size, level float64) CreateOrderRequest {
	o := NewMarketOrder(epic, direction, size)
	o.OrderType = OrderTypeLimit
	o.Level = SomeFloatPtr(level)
	return o
}

// WithStopLoss attaches a stop level to the request and returns it, mirroring
// with_stop_loss().
func (o CreateOrderRequest) WithStopLoss(level float64) CreateOrderRequest {
	o.StopLevel = SomeFloatPtr(level)
	return o
}

// WithTakeProfit attaches a limit level to the request and returns it,
// mirroring with_take_profit().
func (o CreateOrderRequest) WithTakeProfit(level float64) CreateOrderRequest {
	o.LimitLevel = SomeFloatPtr(level)
	return o
}

// WithReference attaches a client-supplied deal reference and returns it,
// mirroring with_reference().
func (o CreateOrderRequest) WithReference(ref string) CreateOrderRequest {
	o.DealReference = &ref
	return o
}

// CreateOrderResponse is returned immediately by the create-order endpoints;
// the actual fill is reported asynchronously via the TRADE streaming
// subscription or polled via OrderConfirmation.
type CreateOrderResponse struct {
	DealReference string `json:"dealReference"`
}

// OrderConfirmation is the response from GET confirms/{dealReference},
// reporting the final outcome of a previously submitted order.
type OrderConfirmation struct {
	Date           string     `json:"date"`
	Status         Status     `json:"status"`
	Reason         *string    `json:"reason"`
	DealID         *string    `json:"dealId"`
	DealReference  string     `json:"dealReference"`
	DealStatus     *Status    `json:"dealStatus"`
	Epic           *string    `json:"epic"`
	Expiry         *string    `json:"expiry"`
	GuaranteedStop OptBool    `json:"guaranteedStop"`
	Level          OptFloat   `json:"level"`
	LimitDistance  OptFloat   `json:"limitDistance"`
	LimitLevel     OptFloat   `json:"limitLevel"`
	Size           OptFloat   `json:"size"`
	StopDistance   OptFloat   `json:"stopDistance"`
	StopLevel      OptFloat   `json:"stopLevel"`
	TrailingStop   OptBool    `json:"trailingStop"`
	Direction      *Direction `json:"direction"`
}

// UpdatePositionRequest is the body of PUT positions/otc/{dealId}; every
// field is optional since the caller only sends what it wants to change.
type UpdatePositionRequest struct {
	StopLevel            *OptFloat `json:"stopLevel,omitempty"`
	LimitLevel           *OptFloat `json:"limitLevel,omitempty"`
	TrailingStop         *OptBool  `json:"trailingStop,omitempty"`
	TrailingStopDistance *OptFloat `json:"trailingStopDistance,omitempty"`
}

// ClosePositionRequest is the body of the close-position endpoint, which on
// this platform is a POST to positions/otc carrying the opposite direction.
type ClosePositionRequest struct {
	DealID      string      `json:"dealId"`
	Direction   Direction   `json:"direction"`
	Size        float64     `json:"size"`
	OrderType   OrderType   `json:"orderType"`
	TimeInForce TimeInForce `json:"timeInForce"`
	Level       *OptFloat   `json:"level,omitempty"`
}

// MarketClose builds a ClosePositionRequest that closes at the current
// market price, mirroring ClosePositionRequest::market().
func MarketClose(dealID string, direction Direction, size float64) ClosePositionRequest {
	return ClosePositionRequest{
		DealID:      dealID,
		Direction:   direction,
		Size:        size,
		OrderType:   OrderTypeMarket,
		TimeInForce: GoodTillCancelled,
	}
}

// ClosePositionResponse is returned immediately by the close-position
// endpoint; like CreateOrderResponse, the outcome lands later via
// OrderConfirmation or the TRADE stream.
type ClosePositionResponse struct {
	DealReference string `json:"dealReference"`
}
