// Package bignum provides the arbitrary-precision decimal quantity used
// for all progression math. Values are immutable: Add and Mul return new
// values and never touch the receiver. Precision is carried explicitly by
// an apd context passed at construction time, not by process-wide state.
package bignum

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant digits carried by the
// default context. Long sessions accumulate tiny sub-second increments,
// so anything much lower drifts visibly over weeks of play.
const DefaultPrecision = 50

// suffixes are the display tiers, each one three orders of magnitude up.
// The last tier caps the display; values beyond it render imprecisely.
var suffixes = []string{"", "K", "M", "B", "T", "Qa", "Qi", "Sx", "Sp", "Oc", "No", "Dc"}

// Context carries the precision for a family of values. Aliasing the
// apd context keeps callers off the apd import.
type Context = apd.Context

// NewContext returns a decimal context with the given number of
// significant digits.
func NewContext(precision uint32) *Context {
	return apd.BaseContext.WithPrecision(precision)
}

// Value is a non-negative decimal magnitude.
type Value struct {
	dec *apd.Decimal
	ctx *apd.Context
}

// Zero returns the zero value under ctx.
func Zero(ctx *apd.Context) Value {
	return Value{dec: apd.New(0, 0), ctx: ctx}
}

// FromInt64 returns an integer-valued Value under ctx.
func FromInt64(ctx *apd.Context, i int64) Value {
	return Value{dec: apd.New(i, 0), ctx: ctx}
}

// Parse builds a Value from exact decimal text, as produced by String.
// Magnitudes are non-negative; negative input is rejected.
func Parse(ctx *apd.Context, s string) (Value, error) {
	dec, _, err := apd.NewFromString(s)
	if err != nil {
		return Value{}, err
	}
	if dec.Sign() < 0 {
		return Value{}, fmt.Errorf("negative value %q", s)
	}
	return Value{dec: dec, ctx: ctx}, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(ctx *apd.Context, s string) Value {
	v, err := Parse(ctx, s)
	if err != nil {
		panic("bignum: bad literal " + s + ": " + err.Error())
	}
	return v
}

// FromDuration converts an elapsed duration to decimal seconds exactly.
// A duration is an integer count of nanoseconds, so it enters the decimal
// domain as coefficient*10^-9 with no binary-float intermediate.
func FromDuration(ctx *apd.Context, d time.Duration) Value {
	dec := apd.New(d.Nanoseconds(), -9)
	dec.Reduce(dec)
	return Value{dec: dec, ctx: ctx}
}

// Add returns v+delta.
func (v Value) Add(delta Value) Value {
	res := new(apd.Decimal)
	v.ctx.Add(res, v.dec, delta.dec)
	res.Reduce(res)
	return Value{dec: res, ctx: v.ctx}
}

// Mul returns v*factor.
func (v Value) Mul(factor Value) Value {
	res := new(apd.Decimal)
	v.ctx.Mul(res, v.dec, factor.dec)
	res.Reduce(res)
	return Value{dec: res, ctx: v.ctx}
}

// Ctx exposes the context the value was built under, so derived values
// (durations, deltas) can share its precision.
func (v Value) Ctx() *Context {
	return v.ctx
}

// Cmp compares v against x, returning -1, 0 or +1.
func (v Value) Cmp(x Value) int {
	return v.dec.Cmp(x.dec)
}

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool {
	return v.dec.IsZero()
}

// Clone returns an independent copy of v. apd decimals are pointers
// underneath, so snapshots handed to another goroutine must clone.
func (v Value) Clone() Value {
	return Value{dec: new(apd.Decimal).Set(v.dec), ctx: v.ctx}
}

// String renders the exact decimal text in plain fixed notation. It
// round-trips through Parse without loss and is the persisted form.
func (v Value) String() string {
	return v.dec.Text('f')
}

// Format renders v for display. Values under 1000 render as a bare
// integer. Larger values are scaled down by 1000 per suffix tier and
// rendered with two decimal places, e.g. 1500000 -> "1.50M". Scaling
// stays in the decimal domain throughout. Total function: values past
// the last tier keep that tier's suffix and simply show more digits.
func (v Value) Format() string {
	thousand := apd.New(1000, 0)
	if v.dec.Cmp(thousand) < 0 {
		var r apd.Decimal
		v.ctx.Quantize(&r, v.dec, 0)
		return r.Text('f')
	}

	num := new(apd.Decimal).Set(v.dec)
	magnitude := 0
	for num.Cmp(thousand) >= 0 && magnitude < len(suffixes)-1 {
		v.ctx.Quo(num, num, thousand)
		magnitude++
	}

	var r apd.Decimal
	v.ctx.Quantize(&r, num, -2)
	return r.Text('f') + suffixes[magnitude]
}
