package bignum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSuffixTiers(t *testing.T) {
	ctx := NewContext(DefaultPrecision)

	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"999", "999"},
		{"999.4", "999"},
		{"1000", "1.00K"},
		{"1500", "1.50K"},
		{"999999", "1000.00K"},
		{"1000000", "1.00M"},
		{"1500000", "1.50M"},
		{"1234567890", "1.23B"},
		{"1000000000000", "1.00T"},
		// Dc is the last tier at 10^33; past it the display just grows.
		{"1000000000000000000000000000000000", "1.00Dc"},
		{"1000000000000000000000000000000000000", "1000.00Dc"},
	}
	for _, tt := range tests {
		v := MustParse(ctx, tt.in)
		assert.Equal(t, tt.want, v.Format(), "format of %s", tt.in)
	}
}

func TestAddAssociativity(t *testing.T) {
	ctx := NewContext(DefaultPrecision)
	v := MustParse(ctx, "123.456")
	d1 := MustParse(ctx, "0.001")
	d2 := MustParse(ctx, "789.999")

	stepwise := v.Add(d1).Add(d2)
	combined := v.Add(d1.Add(d2))
	assert.Zero(t, stepwise.Cmp(combined))
}

func TestAddAndMulArePure(t *testing.T) {
	ctx := NewContext(DefaultPrecision)
	v := MustParse(ctx, "100")
	_ = v.Add(MustParse(ctx, "5"))
	_ = v.Mul(MustParse(ctx, "3"))
	assert.Equal(t, "100", v.String())
}

func TestFromDurationExact(t *testing.T) {
	ctx := NewContext(DefaultPrecision)

	assert.Equal(t, "1.5", FromDuration(ctx, 1500*time.Millisecond).String())
	assert.Equal(t, "0.1", FromDuration(ctx, 100*time.Millisecond).String())
	assert.Equal(t, "0.000000001", FromDuration(ctx, time.Nanosecond).String())
	assert.Equal(t, "60", FromDuration(ctx, time.Minute).String())
	assert.True(t, FromDuration(ctx, 0).IsZero())
}

func TestStringRoundTrip(t *testing.T) {
	ctx := NewContext(DefaultPrecision)
	for _, s := range []string{"0", "10", "0.1", "12345678901234567890.000000001"} {
		v := MustParse(ctx, s)
		back, err := Parse(ctx, v.String())
		require.NoError(t, err)
		assert.Zero(t, v.Cmp(back))
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	ctx := NewContext(DefaultPrecision)

	_, err := Parse(ctx, "not a number")
	assert.Error(t, err)

	_, err = Parse(ctx, "-5")
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := NewContext(DefaultPrecision)
	v := MustParse(ctx, "42")
	c := v.Clone()
	v = v.Add(MustParse(ctx, "1"))
	assert.Equal(t, "42", c.String())
	assert.Equal(t, "43", v.String())
}

func TestPrecisionIsPerContext(t *testing.T) {
	small := NewContext(5)
	big := NewContext(DefaultPrecision)

	a := MustParse(small, "123456789")
	b := MustParse(big, "123456789")
	one := MustParse(big, "1")

	// The 5-digit context rounds the sum; the 50-digit one keeps it.
	assert.NotEqual(t, "123456790", a.Add(MustParse(small, "1")).String())
	assert.Equal(t, "123456790", b.Add(one).String())
}
