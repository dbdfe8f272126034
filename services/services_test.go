package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurre/ig-client-go/config"
	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/ratelimit"
	"github.com/gurre/ig-client-go/session"
)

func testClient(serverURL string) *Client {
	return New(&config.Config{RestAPI: config.RestAPI{BaseURL: serverURL, Timeout: 5}})
}

func TestAccountsDecodesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "1", r.Header.Get("Version"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"accounts":[{"accountId":"A1","accountName":"Spread bet","preferred":true}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.NonTradingAccount}
	accounts, err := c.Accounts(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "A1", accounts[0].AccountID)
	assert.True(t, accounts[0].Preferred)
}

func TestMarketDetailsScenarioE(t *testing.T) {
	const body = `{
		"instrument": {"epic": "DO.D.OTCDDAX.1.IP", "name": "Germany 40"},
		"snapshot": {"bid": 1086.0, "offer": 1086.4, "marketStatus": "TRADEABLE"},
		"dealingRules": {
			"minStepDistance": {"unit": "POINTS", "value": 1.0e10},
			"minDealSize": {"unit": "POINTS", "value": 0.5},
			"minControlledRiskStopDistance": {"unit": "POINTS", "value": 1},
			"minNormalStopOrLimitDistance": {"unit": "POINTS", "value": 1},
			"maxStopOrLimitDistance": {"unit": "PERCENTAGE", "value": 75},
			"controlledRiskSpacing": {"unit": "POINTS", "value": 1}
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/DO.D.OTCDDAX.1.IP", r.URL.Path)
		assert.Equal(t, "3", r.Header.Get("Version"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.NonTradingAccount}
	details, err := c.MarketDetails(context.Background(), s, "DO.D.OTCDDAX.1.IP")
	require.NoError(t, err)
	assert.Equal(t, "DO.D.OTCDDAX.1.IP", details.Instrument.Epic)
	assert.Equal(t, 1086.0, details.Snapshot.Bid.Value)
	assert.True(t, details.Snapshot.Bid.Valid)
	assert.Equal(t, 1.0e10, details.DealingRules.MinStepDistance.Value.Value)
}

func TestCreateOrderPostsToPositionsOTC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/positions/otc", r.URL.Path)
		assert.Equal(t, "2", r.Header.Get("Version"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"dealReference":"REF123"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.TradingAccount}
	resp, err := c.CreateOrder(context.Background(), s, model.NewMarketOrder("CS.D.EURUSD.CFD.IP", model.Buy, 1))
	require.NoError(t, err)
	assert.Equal(t, "REF123", resp.DealReference)
}

func TestClosePositionUsesVersion1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.Header.Get("Version"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"dealReference":"REF456"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.TradingAccount}
	resp, err := c.ClosePosition(context.Background(), s, model.MarketClose("D1", model.Sell, 1))
	require.NoError(t, err)
	assert.Equal(t, "REF456", resp.DealReference)
}

func TestActivityAppliesDefaultPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "true", r.URL.Query().Get("detailed"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"activities":[],"metadata":{"paging":{"size":0}}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.NonTradingAccount}
	_, err := c.Activity(context.Background(), s, "2024-01-01", "2024-01-02", true, 0)
	require.NoError(t, err)
}

func TestBuildNavigationTreeWalksChildren(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/marketnavigation":
			_, _ = w.Write([]byte(`{"nodes":[{"id":"child1","name":"Indices"}],"markets":[]}`))
		case "/marketnavigation/child1":
			_, _ = w.Write([]byte(`{"nodes":[],"markets":[{"epic":"IX.D.DAX.IFD.IP","instrumentName":"Germany 40"}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s := session.Session{CST: "c", Token: "t", Class: ratelimit.NonTradingAccount}
	tree, err := c.BuildNavigationTree(context.Background(), s, 2)
	require.NoError(t, err)

	root, ok := tree.Root()
	require.True(t, ok)
	require.Len(t, root.ChildIndices, 1)

	child, ok := tree.Child(root, 0)
	require.True(t, ok)
	assert.Equal(t, "Indices", child.Name)
	require.Len(t, child.Markets, 1)
	assert.Equal(t, "IX.D.DAX.IFD.IP", child.Markets[0].Epic)
}
