package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarketDetailsScenarioE decodes the literal fixture from SPEC_FULL.md's
// Scenario E: a market-details body whose dealing rules carry a
// minStepDistance value of 1.0e10 and whose snapshot bid decodes to Some(1086.0).
func TestMarketDetailsScenarioE(t *testing.T) {
	raw := `{
		"instrument": {
			"epic": "DO.D.OTCDDAX.1.IP",
			"name": "Germany 40",
			"expiry": "-",
			"contractSize": "1",
			"lotSize": 1,
			"highLimitPrice": null,
			"lowLimitPrice": null,
			"marginFactor": 5,
			"marginFactorUnit": "PERCENTAGE",
			"currencies": [],
			"valueOfOnePip": "1",
			"instrumentType": "INDICES",
			"expiryDetails": null,
			"slippageFactor": null,
			"limitedRiskPremium": null,
			"newsCode": null,
			"chartCode": null
		},
		"snapshot": {
			"marketStatus": "TRADEABLE",
			"netChange": 0,
			"percentageChange": 0,
			"updateTime": "10:00:00",
			"delayTime": 0,
			"bid": 1086.0,
			"offer": 1086.4,
			"high": 1090.0,
			"low": 1080.0,
			"binaryOdds": null,
			"decimalPlacesFactor": 1,
			"scalingFactor": 1,
			"controlledRiskExtraSpread": 0
		},
		"dealingRules": {
			"minStepDistance": {"unit": "POINTS", "value": 1.0e10},
			"minDealSize": {"unit": "POINTS", "value": 0.5},
			"minControlledRiskStopDistance": {"unit": "POINTS", "value": 1},
			"minNormalStopOrLimitDistance": {"unit": "POINTS", "value": 1},
			"maxStopOrLimitDistance": {"unit": "PERCENTAGE", "value": 75},
			"controlledRiskSpacing": {"unit": "POINTS", "value": 1},
			"marketOrderPreference": "AVAILABLE_DEFAULT_OFF",
			"trailingStopsPreference": "NOT_AVAILABLE",
			"maxDealSize": null
		}
	}`

	var md MarketDetails
	require.NoError(t, json.Unmarshal([]byte(raw), &md))

	assert.Equal(t, "DO.D.OTCDDAX.1.IP", md.Instrument.Epic)
	require.True(t, md.Snapshot.Bid.Valid)
	assert.Equal(t, 1086.0, md.Snapshot.Bid.Value)
	require.True(t, md.DealingRules.MinStepDistance.Value.Valid)
	assert.Equal(t, 1.0e10, md.DealingRules.MinStepDistance.Value.Value)
}

func TestMarketDataRoundTrip(t *testing.T) {
	m := MarketData{
		Epic:           "CS.D.EURUSD.CFD.IP",
		InstrumentName: "Spot FX EUR/USD",
		InstrumentType: InstrumentCurrencies,
		MarketStatus:   "TRADEABLE",
		Bid:            SomeFloat(1.0921),
		Offer:          SomeFloat(1.0923),
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded MarketData
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, m, decoded)
}

func TestHistoricalPricesResponseDecode(t *testing.T) {
	raw := `{
		"prices": [{
			"snapshotTime": "2026/07/31 10:00:00",
			"openPrice": {"bid": 1.09, "ask": 1.0902, "lastTraded": null},
			"highPrice": {"bid": 1.095, "ask": 1.0952, "lastTraded": null},
			"lowPrice": {"bid": 1.085, "ask": 1.0852, "lastTraded": null},
			"closePrice": {"bid": 1.091, "ask": 1.0912, "lastTraded": null},
			"lastTradedVolume": 120
		}],
		"instrumentType": "CURRENCIES",
		"allowance": {"remainingAllowance": 9990, "totalAllowance": 10000, "allowanceExpiry": 604800}
	}`
	var resp HistoricalPricesResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Len(t, resp.Prices, 1)
	assert.Equal(t, InstrumentCurrencies, resp.InstrumentType)
	require.True(t, resp.Prices[0].OpenPrice.Bid.Valid)
	assert.Equal(t, 1.09, resp.Prices[0].OpenPrice.Bid.Value)
	require.NotNil(t, resp.Prices[0].LastTradedVolume)
	assert.EqualValues(t, 120, *resp.Prices[0].LastTradedVolume)
}
