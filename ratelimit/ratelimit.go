// Package ratelimit implements the multi-class spaced-grants limiter that
// gates every outbound call the client makes. Each class is a process-global
// singleton guarded by its own mutex, following the same acquire/compute/
// release discipline the teacher's subscription registries use for shared
// state (fixclient/tradestore.go).
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Class is the closed set of rate-limit categories the platform enforces.
type Class int

const (
	// NonTradingAccount covers per-account read-only calls: 30/min.
	NonTradingAccount Class = iota
	// TradingAccount covers per-account order/position mutations: 100/min.
	TradingAccount
	// NonTradingApp covers per-application read-only calls: 60/min.
	NonTradingApp
	// HistoricalPrice covers price-history pulls: nominal 0.5/min (see quota).
	HistoricalPrice
)

func (c Class) String() string {
	switch c {
	case NonTradingAccount:
		return "non_trading_account"
	case TradingAccount:
		return "trading_account"
	case NonTradingApp:
		return "non_trading_app"
	case HistoricalPrice:
		return "historical_price"
	default:
		return "unknown"
	}
}

// quota returns the nominal per-minute quota for the class. HistoricalPrice's
// "10,000 points per week" allowance is expressed as a nominal 0.5/min. New
// floors the effective limit at 1, so for any safety margin this class is
// spaced at one grant per minute.
func (c Class) quota() float64 {
	switch c {
	case NonTradingAccount:
		return 30
	case TradingAccount:
		return 100
	case NonTradingApp:
		return 60
	case HistoricalPrice:
		return 0.5
	default:
		return 1
	}
}

// DefaultSafetyMargin is the suggested default fraction of the nominal quota
// to actually enforce. It is more conservative than 1.0 because the server's
// own rolling-window algorithm is undocumented (see SPEC_FULL.md §9).
const DefaultSafetyMargin = 0.5

// Stats is a point-in-time snapshot of a limiter's usage.
type Stats struct {
	Class          Class
	RequestCount   int64
	EffectiveLimit int
	UsagePercent   float64
}

// Limiter enforces spaced grants for a single class. Build one via New or
// obtain the process-global instance via Get.
type Limiter struct {
	class          Class
	effectiveLimit int
	mu             sync.Mutex
	last           time.Time
	requestCount   int64
}

// New builds a limiter for class with the given safety margin, clamped to
// [0.1, 1.0] per SPEC_FULL.md §4.1.
func New(class Class, safetyMargin float64) *Limiter {
	if safetyMargin < 0.1 {
		safetyMargin = 0.1
	}
	if safetyMargin > 1.0 {
		safetyMargin = 1.0
	}
	effective := int(class.quota() * safetyMargin)
	if effective < 1 {
		effective = 1
	}
	return &Limiter{class: class, effectiveLimit: effective}
}

// minInterval is 60_000 / effectiveLimit milliseconds, the minimum spacing
// between two successful grants.
func (l *Limiter) minInterval() time.Duration {
	return time.Duration(60000/l.effectiveLimit) * time.Millisecond
}

// Acquire blocks until it is safe to issue another call in this class, then
// records the grant. It returns only on success or ctx cancellation/deadline.
//
// The next grant slot is reserved atomically at the lock under which this
// caller's position in line is decided, not after the wait completes: two
// concurrent callers must never compute their wait from the same stale
// "last" value, or both could wake and grant within the same instant. So
// Acquire publishes the reserved "last" before sleeping, serializing callers
// FIFO by lock-acquisition order. A cancelled wait does not refund the
// reserved slot — the next caller still waits out the full interval from it.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	next := now
	if !l.last.IsZero() {
		if candidate := l.last.Add(l.minInterval()); candidate.After(next) {
			next = candidate
		}
	}
	l.last = next
	l.requestCount++
	l.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats reports the limiter's current usage. RequestCount is the number of
// grants since the limiter was built; it is not reset per minute, so
// UsagePercent is that total over the per-minute effective limit and can
// exceed 100.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	usage := float64(l.requestCount) / float64(l.effectiveLimit) * 100
	return Stats{
		Class:          l.class,
		RequestCount:   l.requestCount,
		EffectiveLimit: l.effectiveLimit,
		UsagePercent:   usage,
	}
}

var (
	registryMu sync.Mutex
	registry   = map[Class]*Limiter{}
	margin     = DefaultSafetyMargin
)

// SetSafetyMargin configures the safety margin used by limiters created
// through Get from this point forward. It does not retroactively change
// limiters already constructed.
func SetSafetyMargin(m float64) {
	registryMu.Lock()
	defer registryMu.Unlock()
	margin = m
}

// Get returns the process-global singleton limiter for class, constructing it
// on first access with the currently configured safety margin.
func Get(class Class) *Limiter {
	registryMu.Lock()
	defer registryMu.Unlock()
	if l, ok := registry[class]; ok {
		return l
	}
	l := New(class, margin)
	registry[class] = l
	return l
}

// Describe renders a Stats value for display, mirroring the teacher's
// plain-text status formatting idiom.
func Describe(s Stats) string {
	return fmt.Sprintf("%s: %d/%d requests (%.1f%% of effective limit)", s.Class, s.RequestCount, s.EffectiveLimit, s.UsagePercent)
}
