package model

// Currency is one of an instrument's tradeable currencies.
type Currency struct {
	Code             string   `json:"code"`
	Symbol           *string  `json:"symbol"`
	BaseExchangeRate OptFloat `json:"baseExchangeRate"`
	ExchangeRate     OptFloat `json:"exchangeRate"`
	IsDefault        OptBool  `json:"isDefault"`
}

// ExpiryDetails describes last-dealing-date information for expiring
// instruments (futures, options).
type ExpiryDetails struct {
	LastDealingDate string  `json:"lastDealingDate"`
	SettlementInfo  *string `json:"settlementInfo"`
}

// StepUnit is the unit a StepDistance's Value is expressed in.
type StepUnit string

const (
	StepUnitPoints     StepUnit = "POINTS"
	StepUnitPercentage StepUnit = "PERCENTAGE"
	StepUnitPct        StepUnit = "pct"
)

// StepDistance handles the platform's minStepDistance-shaped values, which
// arrive as a nested {unit, value} object rather than a bare number.
type StepDistance struct {
	Unit  *StepUnit `json:"unit"`
	Value OptFloat  `json:"value"`
}

// Instrument is the detailed instrument descriptor embedded in market
// details responses.
type Instrument struct {
	Epic               string         `json:"epic"`
	Name               string         `json:"name"`
	Expiry             string         `json:"expiry"`
	ContractSize       string         `json:"contractSize"`
	LotSize            OptFloat       `json:"lotSize"`
	HighLimitPrice     OptFloat       `json:"highLimitPrice"`
	LowLimitPrice      OptFloat       `json:"lowLimitPrice"`
	MarginFactor       OptFloat       `json:"marginFactor"`
	MarginFactorUnit   *string        `json:"marginFactorUnit"`
	Currencies         []Currency     `json:"currencies"`
	ValueOfOnePip      string         `json:"valueOfOnePip"`
	InstrumentType     InstrumentType `json:"instrumentType"`
	ExpiryDetails      *ExpiryDetails `json:"expiryDetails"`
	SlippageFactor     *StepDistance  `json:"slippageFactor"`
	LimitedRiskPremium *StepDistance  `json:"limitedRiskPremium"`
	NewsCode           *string        `json:"newsCode"`
	ChartCode          *string        `json:"chartCode"`
}

// DealingRules is the trading-rules block of a market details response.
type DealingRules struct {
	MinStepDistance               StepDistance `json:"minStepDistance"`
	MinDealSize                   StepDistance `json:"minDealSize"`
	MinControlledRiskStopDistance StepDistance `json:"minControlledRiskStopDistance"`
	MinNormalStopOrLimitDistance  StepDistance `json:"minNormalStopOrLimitDistance"`
	MaxStopOrLimitDistance        StepDistance `json:"maxStopOrLimitDistance"`
	ControlledRiskSpacing         StepDistance `json:"controlledRiskSpacing"`
	MarketOrderPreference         string       `json:"marketOrderPreference"`
	TrailingStopsPreference       string       `json:"trailingStopsPreference"`
	MaxDealSize                   OptFloat     `json:"maxDealSize"`
}

// MarketSnapshot is the live-price block of a market details response.
type MarketSnapshot struct {
	MarketStatus              string   `json:"marketStatus"`
	NetChange                 OptFloat `json:"netChange"`
	PercentageChange          OptFloat `json:"percentageChange"`
	UpdateTime                *string  `json:"updateTime"`
	DelayTime                 *int64   `json:"delayTime"`
	Bid                       OptFloat `json:"bid"`
	Offer                     OptFloat `json:"offer"`
	High                      OptFloat `json:"high"`
	Low                       OptFloat `json:"low"`
	BinaryOdds                OptFloat `json:"binaryOdds"`
	DecimalPlacesFactor       *int64   `json:"decimalPlacesFactor"`
	ScalingFactor             *int64   `json:"scalingFactor"`
	ControlledRiskExtraSpread OptFloat `json:"controlledRiskExtraSpread"`
}

// MarketDetails is the full response from GET markets/{epic}.
type MarketDetails struct {
	Instrument   Instrument     `json:"instrument"`
	Snapshot     MarketSnapshot `json:"snapshot"`
	DealingRules DealingRules   `json:"dealingRules"`
}

// MarketData is the compact market summary used by search results and
// navigation leaves.
type MarketData struct {
	Epic             string         `json:"epic"`
	InstrumentName   string         `json:"instrumentName"`
	InstrumentType   InstrumentType `json:"instrumentType"`
	Expiry           string         `json:"expiry"`
	HighLimitPrice   OptFloat       `json:"highLimitPrice"`
	LowLimitPrice    OptFloat       `json:"lowLimitPrice"`
	MarketStatus     string         `json:"marketStatus"`
	NetChange        OptFloat       `json:"netChange"`
	PercentageChange OptFloat       `json:"percentageChange"`
	UpdateTime       *string        `json:"updateTime"`
	UpdateTimeUTC    *string        `json:"updateTimeUTC"`
	Bid              OptFloat       `json:"bid"`
	Offer            OptFloat       `json:"offer"`
}

// MarketSearchResult is the response from GET markets?searchTerm=.
type MarketSearchResult struct {
	Markets []MarketData `json:"markets"`
}

// PricePoint is a single open/high/low/close price within a historical bar.
type PricePoint struct {
	Bid        OptFloat `json:"bid"`
	Ask        OptFloat `json:"ask"`
	LastTraded OptFloat `json:"lastTraded"`
}

// HistoricalPrice is one bar in a historical-prices response.
type HistoricalPrice struct {
	SnapshotTime     string     `json:"snapshotTime"`
	OpenPrice        PricePoint `json:"openPrice"`
	HighPrice        PricePoint `json:"highPrice"`
	LowPrice         PricePoint `json:"lowPrice"`
	ClosePrice       PricePoint `json:"closePrice"`
	LastTradedVolume *int64     `json:"lastTradedVolume"`
}

// PriceAllowance reports the caller's remaining historical-price quota.
type PriceAllowance struct {
	RemainingAllowance int64 `json:"remainingAllowance"`
	TotalAllowance     int64 `json:"totalAllowance"`
	AllowanceExpiry    int64 `json:"allowanceExpiry"`
}

// HistoricalPricesResponse is the full response from GET prices/{epic}/{resolution}.
type HistoricalPricesResponse struct {
	Prices         []HistoricalPrice `json:"prices"`
	InstrumentType InstrumentType    `json:"instrumentType"`
	Allowance      PriceAllowance    `json:"allowance"`
}
