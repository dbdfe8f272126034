package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalMarketNavigationResponseFlatShape(t *testing.T) {
	raw := `{
		"nodes": [{"id": "264139", "name": "Commodities"}, {"id": "77976799", "name": "FX"}],
		"markets": null
	}`
	resp, err := UnmarshalMarketNavigationResponse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, resp.Nodes, 2)
	assert.Equal(t, "264139", resp.Nodes[0].ID)
	assert.Nil(t, resp.Markets)
}

func TestUnmarshalMarketNavigationResponseLeafWithMarkets(t *testing.T) {
	raw := `{
		"nodes": null,
		"markets": [{"epic": "CS.D.EURUSD.CFD.IP", "instrumentName": "Spot FX EUR/USD", "instrumentType": "CURRENCIES", "marketStatus": "TRADEABLE"}]
	}`
	resp, err := UnmarshalMarketNavigationResponse([]byte(raw))
	require.NoError(t, err)
	assert.Nil(t, resp.Nodes)
	require.Len(t, resp.Markets, 1)
	assert.Equal(t, "CS.D.EURUSD.CFD.IP", resp.Markets[0].Epic)
}

// TestNavigationTreeAssembly simulates the client-side arena build: one call
// per node, each response's refs becoming new arena entries linked back via
// ChildIndices, since the platform itself returns no embedded children.
func TestNavigationTreeAssembly(t *testing.T) {
	root := MarketNavigationNode{ID: "root", Name: "Root"}
	child := MarketNavigationNode{ID: "264139", Name: "Commodities"}
	tree := NavigationTree{Nodes: []MarketNavigationNode{root, child}}
	tree.Nodes[0].ChildIndices = []int{1}

	got, ok := tree.Root()
	require.True(t, ok)
	assert.Equal(t, "root", got.ID)

	c, ok := tree.Child(got, 0)
	require.True(t, ok)
	assert.Equal(t, "264139", c.ID)

	_, ok = tree.Child(got, 5)
	assert.False(t, ok)
}

func TestEmptyNavigationTreeHasNoRoot(t *testing.T) {
	var tree NavigationTree
	_, ok := tree.Root()
	assert.False(t, ok)
}
