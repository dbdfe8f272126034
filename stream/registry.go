package stream

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gurre/ig-client-go/model"
)

// Registry is the thread-safe subscription map every active Subscription is
// tracked in, mirroring tradestore.go's subscriptions map but keyed on a
// generated id instead of a FIX request id.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]Subscription
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]Subscription)}
}

// Add generates a new "{CLASS}-{uuid}" id, registers item under it and
// returns the id, mirroring subscribe_market/subscribe_account's
// "MARKET-{uuid}"/"ACCOUNT-{uuid}" id scheme.
func (r *Registry) Add(class model.SubscriptionClass, item string) string {
	id := fmt.Sprintf("%s-%s", class, uuid.New().String())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[id] = Subscription{ID: id, Class: class, Item: item}
	return id
}

// Remove deletes a subscription by id. Returns false if it was not present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return false
	}
	delete(r.subs, id)
	return true
}

// Get resolves a subscription by id.
func (r *Registry) Get(id string) (Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	return s, ok
}

// All returns a snapshot of every active subscription.
func (r *Registry) All() []Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	return out
}

// Clear drops every subscription, used on disconnect.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[string]Subscription)
}

// Len reports the number of active subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
