package model

// AccountBalance is the {balance, deposit, profit-loss, available} tuple
// reported per account.
type AccountBalance struct {
	Balance    OptFloat `json:"balance"`
	Deposit    OptFloat `json:"deposit"`
	ProfitLoss OptFloat `json:"profitLoss"`
	Available  OptFloat `json:"available"`
}

// Account is one entry in the accounts listing.
type Account struct {
	AccountID   string         `json:"accountId"`
	AccountName string         `json:"accountName"`
	AccountType string         `json:"accountType"`
	Currency    string         `json:"currency"`
	Balance     AccountBalance `json:"balance"`
	Status      string         `json:"status"`
	Preferred   bool           `json:"preferred"`
}

// AccountsResponse wraps the accounts endpoint's top-level array.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// PositionMarket is the market-snapshot half of a position record.
type PositionMarket struct {
	Epic           string         `json:"epic"`
	InstrumentName string         `json:"instrumentName"`
	InstrumentType InstrumentType `json:"instrumentType"`
	Expiry         string         `json:"expiry"`
	Bid            OptFloat       `json:"bid"`
	Offer          OptFloat       `json:"offer"`
	MarketStatus   string         `json:"marketStatus"`
	UpdateTime     *string        `json:"updateTime"`
	HighLimitPrice OptFloat       `json:"highLimitPrice"`
	LowLimitPrice  OptFloat       `json:"lowLimitPrice"`
}

// PositionDetails mirrors the platform's {position-details} nested object.
type PositionDetails struct {
	DealID               string    `json:"dealId"`
	DealReference        *string   `json:"dealReference"`
	Direction            Direction `json:"direction"`
	Epic                 string    `json:"epic"`
	Size                 float64   `json:"size"`
	Level                float64   `json:"level"`
	Currency             string    `json:"currency"`
	ControlledRisk       bool      `json:"controlledRisk"`
	StopLevel            OptFloat  `json:"stopLevel"`
	LimitLevel           OptFloat  `json:"limitLevel"`
	TrailingStop         bool      `json:"trailingStop"`
	TrailingStopDistance OptFloat  `json:"trailingStopDistance"`
	CreatedDate          string    `json:"createdDate"`
}

// Position is one entry in the open-positions listing.
type Position struct {
	Position PositionDetails `json:"position"`
	Market   PositionMarket  `json:"market"`
}

// Positions wraps the positions endpoint's top-level array.
type Positions struct {
	Positions []Position `json:"positions"`
}

// WorkingOrderData is the pending-order half of a working-order record.
type WorkingOrderData struct {
	DealID        string      `json:"dealId"`
	Direction     Direction   `json:"direction"`
	Epic          string      `json:"epic"`
	Size          float64     `json:"orderSize"`
	Level         float64     `json:"orderLevel"`
	TimeInForce   TimeInForce `json:"timeInForce"`
	OrderType     OrderType   `json:"orderType"`
	StopDistance  OptFloat    `json:"stopDistance"`
	LimitDistance OptFloat    `json:"limitDistance"`
	CurrencyCode  string      `json:"currencyCode"`
	GoodTillDate  *string     `json:"goodTillDate"`
	CreatedDate   string      `json:"createdDate"`
}

// WorkingOrder is one entry in the working-orders listing.
type WorkingOrder struct {
	WorkingOrderData WorkingOrderData `json:"workingOrderData"`
	MarketData       PositionMarket   `json:"marketData"`
}

// WorkingOrders wraps the workingorders endpoint's top-level array.
type WorkingOrders struct {
	WorkingOrders []WorkingOrder `json:"workingOrders"`
}

// ActivityDetails is the optional free-form detail object attached to some
// activity records (e.g. amended stop/limit levels).
type ActivityDetails struct {
	MarketName  *string  `json:"marketName"`
	Description *string  `json:"description"`
	ActionList  []string `json:"actions"`
}

// Activity is one entry in the history/activity listing.
type Activity struct {
	Date          string           `json:"date"`
	DealID        *string          `json:"dealId"`
	Epic          *string          `json:"epic"`
	Period        *string          `json:"period"`
	DealReference *string          `json:"dealReference"`
	Type          ActivityType     `json:"type"`
	Status        *string          `json:"status"`
	Description   *string          `json:"description"`
	Details       *ActivityDetails `json:"details"`
}

// ActivityPaging is the pagination metadata the activity endpoint returns
// alongside its data array.
type ActivityPaging struct {
	Next *string `json:"next"`
	Size int     `json:"size"`
}

// ActivityMetadata wraps ActivityPaging the way the platform nests it.
type ActivityMetadata struct {
	Paging ActivityPaging `json:"paging"`
}

// ActivityHistory is the full history/activity response.
type ActivityHistory struct {
	Activities []Activity       `json:"activities"`
	Metadata   ActivityMetadata `json:"metadata"`
}

// AccountTransaction is one entry in the history/transactions listing. Note
// profitAndLoss, openLevel, closeLevel and size are string-typed on the wire
// (e.g. "+12.34", carrying a currency or sign prefix) - they are intentionally
// kept as plain strings rather than coerced into OptFloat, since the platform
// embeds non-numeric prefixes the caller must parse explicitly if needed.
type AccountTransaction struct {
	Date            string `json:"date"`
	DateUTC         string `json:"dateUtc"`
	OpenDateUTC     string `json:"openDateUtc"`
	InstrumentName  string `json:"instrumentName"`
	Period          string `json:"period"`
	ProfitAndLoss   string `json:"profitAndLoss"`
	TransactionType string `json:"transactionType"`
	Reference       string `json:"reference"`
	OpenLevel       string `json:"openLevel"`
	CloseLevel      string `json:"closeLevel"`
	Size            string `json:"size"`
	Currency        string `json:"currency"`
	CashTransaction bool   `json:"cashTransaction"`
}

// PageData is the shared pagination block on paged endpoints.
type PageData struct {
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
	TotalPages int `json:"totalPages"`
	Size       int `json:"size"`
}

// TransactionMetadata wraps PageData the way the platform nests it.
type TransactionMetadata struct {
	PageData PageData `json:"pageData"`
}

// TransactionHistory is the full history/transactions response.
type TransactionHistory struct {
	Transactions []AccountTransaction `json:"transactions"`
	Metadata     TransactionMetadata  `json:"metadata"`
}
