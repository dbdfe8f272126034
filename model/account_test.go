package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionsDecode(t *testing.T) {
	raw := `{
		"positions": [{
			"position": {
				"dealId": "DIAAAABBCCDDEEFF",
				"dealReference": null,
				"direction": "BUY",
				"epic": "CS.D.EURUSD.CFD.IP",
				"size": 1.0,
				"level": 1.0921,
				"currency": "USD",
				"controlledRisk": false,
				"stopLevel": "1.08",
				"limitLevel": null,
				"trailingStop": false,
				"trailingStopDistance": null,
				"createdDate": "2026-07-31T10:00:00"
			},
			"market": {
				"epic": "CS.D.EURUSD.CFD.IP",
				"instrumentName": "Spot FX EUR/USD",
				"instrumentType": "CURRENCIES",
				"expiry": "-",
				"bid": 1.0921,
				"offer": 1.0923,
				"marketStatus": "TRADEABLE",
				"updateTime": "10:00:00",
				"highLimitPrice": null,
				"lowLimitPrice": null
			}
		}]
	}`
	var p Positions
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Len(t, p.Positions, 1)
	assert.Equal(t, Buy, p.Positions[0].Position.Direction)
	require.True(t, p.Positions[0].Position.StopLevel.Valid)
	assert.Equal(t, 1.08, p.Positions[0].Position.StopLevel.Value)
	assert.False(t, p.Positions[0].Position.LimitLevel.Valid)
}

func TestActivityHistoryRoundTrip(t *testing.T) {
	desc := "Stop and limit amended"
	h := ActivityHistory{
		Activities: []Activity{{
			Date:        "2026-07-31",
			Type:        ActivityEditStopAndLimit,
			Description: &desc,
		}},
		Metadata: ActivityMetadata{Paging: ActivityPaging{Size: 1}},
	}
	b, err := json.Marshal(h)
	require.NoError(t, err)

	var decoded ActivityHistory
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, h, decoded)
}

func TestTransactionHistoryDecode(t *testing.T) {
	raw := `{
		"transactions": [{
			"date": "31-07-26",
			"dateUtc": "2026-07-31T10:00:00",
			"openDateUtc": "2026-07-31T09:00:00",
			"instrumentName": "Spot FX EUR/USD",
			"period": "-",
			"profitAndLoss": "+12.34",
			"transactionType": "TRADE",
			"reference": "DIAAAABBCCDDEEFF",
			"openLevel": "1.0900",
			"closeLevel": "1.0912",
			"size": "1.0",
			"currency": "USD",
			"cashTransaction": false
		}],
		"metadata": {"pageData": {"pageSize": 20, "pageNumber": 1, "totalPages": 1, "size": 1}}
	}`
	var th TransactionHistory
	require.NoError(t, json.Unmarshal([]byte(raw), &th))
	require.Len(t, th.Transactions, 1)
	assert.Equal(t, "+12.34", th.Transactions[0].ProfitAndLoss)
	assert.Equal(t, 1, th.Metadata.PageData.TotalPages)
}
