package services

import (
	"context"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/transport"
)

// NavigationNode fetches one level of the market navigation hierarchy: the
// root when nodeID is empty, or nodeID's immediate children/markets
// otherwise. Per GET marketnavigation / marketnavigation/{nodeId} (Version 1).
func (c *Client) NavigationNode(ctx context.Context, s session.Session, nodeID string) (model.MarketNavigationResponse, error) {
	path := "marketnavigation"
	if nodeID != "" {
		path += "/" + nodeID
	}
	return transport.Request[model.MarketNavigationResponse](ctx, c.Envelope, "GET", path, s, nil, "1")
}

// BuildNavigationTree assembles a client-side NavigationTree by recursively
// walking NavigationNode calls, per SPEC_FULL.md §4.4's arena-and-index
// re-architecture note: the wire protocol is flat per call, so the tree is
// built here rather than decoded from a single nested payload. maxDepth
// bounds recursion (0 means root only) to guard against unexpectedly deep
// or cyclic navigation graphs.
func (c *Client) BuildNavigationTree(ctx context.Context, s session.Session, maxDepth int) (model.NavigationTree, error) {
	tree := model.NavigationTree{}
	if _, err := c.buildNode(ctx, s, "", "root", &tree, 0, maxDepth); err != nil {
		return model.NavigationTree{}, err
	}
	return tree, nil
}

func (c *Client) buildNode(ctx context.Context, s session.Session, nodeID, name string, tree *model.NavigationTree, depth, maxDepth int) (int, error) {
	resp, err := c.NavigationNode(ctx, s, nodeID)
	if err != nil {
		return 0, err
	}

	node := model.MarketNavigationNode{ID: nodeID, Name: name, Markets: resp.Markets}
	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, node)

	if depth < maxDepth {
		var childIndices []int
		for _, ref := range resp.Nodes {
			childIdx, err := c.buildNode(ctx, s, ref.ID, ref.Name, tree, depth+1, maxDepth)
			if err != nil {
				return 0, err
			}
			childIndices = append(childIndices, childIdx)
		}
		tree.Nodes[idx].ChildIndices = childIndices
	}

	return idx, nil
}
