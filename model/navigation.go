package model

import "encoding/json"

// NavigationNodeRef is one child reference as the platform reports it:
// just an id and a name, to be resolved into its own children/markets by a
// follow-up call.
type NavigationNodeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MarketNavigationResponse is the flat, per-call shape the platform actually
// returns from marketnavigation and marketnavigation/{nodeId}: a list of
// immediate child node refs (no embedded grandchildren) and a list of
// markets at that level. See SPEC_FULL.md §4.4 and
// original_source/src/application/models/market.rs's MarketNavigationResponse.
type MarketNavigationResponse struct {
	Nodes   []NavigationNodeRef `json:"nodes"`
	Markets []MarketData        `json:"markets"`
}

// UnmarshalMarketNavigationResponse decodes one call's raw body.
func UnmarshalMarketNavigationResponse(data []byte) (MarketNavigationResponse, error) {
	var w MarketNavigationResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return MarketNavigationResponse{}, err
	}
	return w, nil
}

// MarketNavigationNode is one node in the client-assembled navigation tree.
// The platform's wire format is flat per call (§9's Open Question), so the
// tree here is an arena: each node owns integer indices into NavigationTree's
// Nodes slice instead of pointers, per SPEC_FULL.md §9's re-architecture note
// on cyclic/deep market-navigation trees.
type MarketNavigationNode struct {
	ID           string
	Name         string
	ChildIndices []int
	Markets      []MarketData
}

// NavigationTree is the arena holding every node discovered so far. Index 0
// is always the root.
type NavigationTree struct {
	Nodes []MarketNavigationNode
}

// Root returns the tree's root node, or false if the tree is empty.
func (t *NavigationTree) Root() (MarketNavigationNode, bool) {
	if len(t.Nodes) == 0 {
		return MarketNavigationNode{}, false
	}
	return t.Nodes[0], true
}

// Child resolves one of node's children by position.
func (t *NavigationTree) Child(node MarketNavigationNode, i int) (MarketNavigationNode, bool) {
	if i < 0 || i >= len(node.ChildIndices) {
		return MarketNavigationNode{}, false
	}
	idx := node.ChildIndices[i]
	if idx < 0 || idx >= len(t.Nodes) {
		return MarketNavigationNode{}, false
	}
	return t.Nodes[idx], true
}
