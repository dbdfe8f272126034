package stream

import (
	"sync"
	"time"

	"github.com/gurre/ig-client-go/model"
)

// Tick is one ring-buffer entry in a Cache's per-epic market history,
// adapting fixclient/tradestore.go's Trade record (time.Time first, strings
// next, for alignment) from FIX market-data entries to decoded MARKET-class
// stream updates.
type Tick struct {
	Timestamp time.Time
	Bid       float64
	Offer     float64
}

// epicRing is a fixed-capacity ring buffer of Ticks for one epic, a direct
// port of TradeStore's head/count/maxSize ring-buffer layout.
type epicRing struct {
	ticks   []Tick
	head    int
	count   int
	maxSize int
}

func newEpicRing(maxSize int) *epicRing {
	return &epicRing{ticks: make([]Tick, maxSize), maxSize: maxSize}
}

func (r *epicRing) add(t Tick) {
	idx := (r.head + r.count) % r.maxSize
	r.ticks[idx] = t
	if r.count < r.maxSize {
		r.count++
	} else {
		r.head = (r.head + 1) % r.maxSize
	}
}

func (r *epicRing) recent(n int) []Tick {
	if n <= 0 || n > r.count {
		n = r.count
	}
	out := make([]Tick, n)
	for i := 0; i < n; i++ {
		idx := (r.head + r.count - n + i) % r.maxSize
		out[i] = r.ticks[idx]
	}
	return out
}

// OrderState is the latest known state of one working order or position,
// merge-updated from successive TRADE-class confirmation frames the same
// way fixclient/orderstore.go's OrderStore.UpdateOrderFromExecReport merges
// only the non-empty fields of each new ExecutionReport into the tracked
// Order.
type OrderState struct {
	DealID    string
	Status    model.Status
	UpdatedAt time.Time
	Fields    map[string]string
}

// Cache is the optional "keep the last N updates per item" convenience layer
// a caller may attach alongside (or instead of) a Listener callback,
// grounded on SPEC_FULL.md §4.5.1: it adapts TradeStore's ring buffer for
// per-epic tick history and OrderStore's defensive-copy-under-RWMutex /
// merge-non-empty-fields pattern for per-deal order state, both repurposed
// from FIX market-data/execution-report bookkeeping to this domain's MARKET
// and TRADE stream classes.
type Cache struct {
	mu      sync.RWMutex
	ticks   map[string]*epicRing // epic -> ring buffer
	orders  map[string]*OrderState // dealId -> latest state
	ringCap int
}

// NewCache builds an empty Cache whose per-epic tick ring buffers hold up to
// ringCapacity entries each.
func NewCache(ringCapacity int) *Cache {
	if ringCapacity <= 0 {
		ringCapacity = 500
	}
	return &Cache{
		ticks:   make(map[string]*epicRing),
		orders:  make(map[string]*OrderState),
		ringCap: ringCapacity,
	}
}

// AttachMarket appends one decoded MarketUpdate to its epic's ring buffer. It
// does not register itself with a Client: updates reach the Cache only when
// the caller passes them in.
func (c *Cache) AttachMarket(mu MarketUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ring, ok := c.ticks[mu.Epic]
	if !ok {
		ring = newEpicRing(c.ringCap)
		c.ticks[mu.Epic] = ring
	}
	ring.add(Tick{Timestamp: time.Now(), Bid: mu.Bid, Offer: mu.Offer})
}

// RecentTicks returns up to n of the most recent ticks recorded for epic, in
// chronological order. n <= 0 returns every tick currently buffered.
func (c *Cache) RecentTicks(epic string, n int) []Tick {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ring, ok := c.ticks[epic]
	if !ok {
		return nil
	}
	return ring.recent(n)
}

// AttachTrade merges one TradeUpdate's non-empty fields into the tracked
// OrderState for its "dealId" field; updates without one are ignored. Like
// AttachMarket, it is not registered with a Client.
func (c *Cache) AttachTrade(tu TradeUpdate) {
	dealID := tu.Data["dealId"]
	if dealID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.orders[dealID]
	if !ok {
		state = &OrderState{DealID: dealID, Fields: make(map[string]string)}
		c.orders[dealID] = state
	}
	state.UpdatedAt = time.Now()
	if tu.Status != "" {
		state.Status = tu.Status
	}
	for k, v := range tu.Data {
		if v != "" {
			state.Fields[k] = v
		}
	}
}

// Order returns a defensive copy of the tracked state for dealID, mirroring
// OrderStore.GetOrder's copy-under-RLock accessor.
func (c *Cache) Order(dealID string) (OrderState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.orders[dealID]
	if !ok {
		return OrderState{}, false
	}
	cp := *state
	cp.Fields = make(map[string]string, len(state.Fields))
	for k, v := range state.Fields {
		cp.Fields[k] = v
	}
	return cp, true
}

// AllOrders returns a defensive copy of every tracked order state, mirroring
// OrderStore.GetAllOrders.
func (c *Cache) AllOrders() []OrderState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]OrderState, 0, len(c.orders))
	for _, state := range c.orders {
		cp := *state
		cp.Fields = make(map[string]string, len(state.Fields))
		for k, v := range state.Fields {
			cp.Fields[k] = v
		}
		out = append(out, cp)
	}
	return out
}
