// Package services holds the thin per-endpoint facades the spec treats as
// external collaborators of the core (SPEC_FULL.md §1): each facade is a
// mechanical wrapper over transport.Request that names its path, method and
// version and decodes into the matching model type. None of them carry
// independent design complexity - the classification, rate-limiting and
// coercion logic they depend on all lives in transport/session/model.
package services

import (
	"github.com/gurre/ig-client-go/config"
	"github.com/gurre/ig-client-go/transport"
)

// Client bundles every endpoint facade behind one envelope, mirroring the
// teacher's single-FixApp-owns-everything shape generalized to a REST
// client with many small typed operations instead of one FIX session.
type Client struct {
	Envelope *transport.Envelope
}

// New builds a Client bound to cfg's REST transport.
func New(cfg *config.Config) *Client {
	return &Client{Envelope: transport.New(cfg)}
}
