// Package game holds the progression state: the counter, the per-click
// and per-second rates, and the timestamps that drive catch-up math.
// Every operation here is total; bad clocks clamp instead of failing.
package game

import (
	"time"

	"idler/internal/bignum"
)

// Default rates for a fresh save.
const (
	DefaultClickPower = 10
	DefaultAutoRate   = 1
)

// Observer receives the counter and the delta that produced it after
// each mutating operation. The presentation layer registers one; nil is
// fine and means nobody is listening.
type Observer func(counter, delta bignum.Value)

// State is the progression aggregate. Counter only ever grows between
// resets; ClickPower and AutoRate are configuration-shaped and static
// for now, but nothing here forbids a future upgrade path mutating them.
type State struct {
	Counter    bignum.Value
	ClickPower bignum.Value
	AutoRate   bignum.Value

	// LastUpdate is the instant through which AutoRate has been paid out.
	LastUpdate time.Time
	// LastSave is the instant of the most recent durable write.
	LastSave time.Time

	observer Observer
}

// New returns a fresh default state: zero counter, stock rates, both
// timestamps at now.
func New(ctx *bignum.Context, now time.Time) *State {
	return NewWithRates(ctx, now,
		bignum.FromInt64(ctx, DefaultClickPower),
		bignum.FromInt64(ctx, DefaultAutoRate))
}

// NewWithRates returns a fresh state with configured rates. The counter
// always starts at zero.
func NewWithRates(ctx *bignum.Context, now time.Time, clickPower, autoRate bignum.Value) *State {
	return &State{
		Counter:    bignum.Zero(ctx),
		ClickPower: clickPower,
		AutoRate:   autoRate,
		LastUpdate: now,
		LastSave:   now,
	}
}

// SetObserver registers the presentation callback.
func (s *State) SetObserver(fn Observer) {
	s.observer = fn
}

func (s *State) notify(delta bignum.Value) {
	if s.observer != nil {
		s.observer(s.Counter, delta)
	}
}

// Tick pays out AutoRate for the time elapsed since LastUpdate and
// advances LastUpdate to now. It returns the increment produced. A now
// at or before LastUpdate clamps to a zero-length interval, so the
// counter can never move backwards on clock skew.
func (s *State) Tick(now time.Time) bignum.Value {
	elapsed := now.Sub(s.LastUpdate)
	if elapsed < 0 {
		// Skewed clock: pay nothing and hold position rather than
		// rewinding, so the same interval cannot be paid twice.
		elapsed = 0
	} else {
		s.LastUpdate = now
	}
	increment := s.AutoRate.Mul(bignum.FromDuration(s.Counter.Ctx(), elapsed))
	s.Counter = s.Counter.Add(increment)
	s.notify(increment)
	return increment
}

// Click adds ClickPower to the counter and returns the amount added.
func (s *State) Click() bignum.Value {
	s.Counter = s.Counter.Add(s.ClickPower)
	s.notify(s.ClickPower)
	return s.ClickPower
}

// OfflineEarnings computes what AutoRate would have produced over the
// given away-time. Pure: the state is untouched. The caller applies the
// result via ApplyOffline before resuming regular ticking.
func (s *State) OfflineEarnings(offline time.Duration) bignum.Value {
	if offline < 0 {
		offline = 0
	}
	return s.AutoRate.Mul(bignum.FromDuration(s.Counter.Ctx(), offline))
}

// ApplyOffline credits previously computed offline earnings and moves
// LastUpdate to now so the next Tick cannot charge the same interval
// twice.
func (s *State) ApplyOffline(now time.Time, earned bignum.Value) {
	s.Counter = s.Counter.Add(earned)
	s.LastUpdate = now
	s.notify(earned)
}

// Reset returns a fresh state with a zero counter. ClickPower and
// AutoRate are configuration, not progress, so they carry over, as does
// the registered observer. The caller persists the fresh instance and
// discards the old one.
func (s *State) Reset(now time.Time) *State {
	fresh := NewWithRates(s.Counter.Ctx(), now, s.ClickPower, s.AutoRate)
	fresh.observer = s.observer
	return fresh
}

// MarkSaved stamps LastSave and returns the snapshot to write. Call it
// on the session timeline, then hand the record to the store; the record
// shares nothing with the live state.
func (s *State) MarkSaved(now time.Time) Record {
	s.LastSave = now
	return s.Snapshot()
}

// Snapshot returns an immutable copy safe to read off-loop.
func (s *State) Snapshot() Record {
	return Record{
		Counter:    s.Counter.Clone(),
		ClickPower: s.ClickPower.Clone(),
		AutoRate:   s.AutoRate.Clone(),
		LastUpdate: s.LastUpdate,
		LastSave:   s.LastSave,
	}
}

// Record is a point-in-time copy of State with no live references.
type Record struct {
	Counter    bignum.Value
	ClickPower bignum.Value
	AutoRate   bignum.Value
	LastUpdate time.Time
	LastSave   time.Time
}

// State rebuilds a live State from the record.
func (r Record) State() *State {
	return &State{
		Counter:    r.Counter,
		ClickPower: r.ClickPower,
		AutoRate:   r.AutoRate,
		LastUpdate: r.LastUpdate,
		LastSave:   r.LastSave,
	}
}
