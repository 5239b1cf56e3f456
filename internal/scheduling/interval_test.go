package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalContainsIsHalfOpen(t *testing.T) {
	ivl := Interval{Start: clk("09:00"), End: clk("10:00")}

	assert.True(t, ivl.Contains(clk("09:00")))
	assert.True(t, ivl.Contains(clk("09:59")))
	assert.False(t, ivl.Contains(clk("10:00")))
	assert.False(t, ivl.Contains(clk("08:59")))
}

func TestIntervalContainsEndMirrorsContains(t *testing.T) {
	ivl := Interval{Start: clk("09:00"), End: clk("10:00")}

	assert.False(t, ivl.ContainsEnd(clk("09:00")))
	assert.True(t, ivl.ContainsEnd(clk("09:30")))
	assert.True(t, ivl.ContainsEnd(clk("10:00")))
	assert.False(t, ivl.ContainsEnd(clk("10:01")))
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: clk("09:00"), End: clk("10:00")}
	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"inside", Interval{Start: clk("09:15"), End: clk("09:45")}, true},
		{"straddles start", Interval{Start: clk("08:30"), End: clk("09:30")}, true},
		{"touches end", Interval{Start: clk("10:00"), End: clk("11:00")}, false},
		{"touches start", Interval{Start: clk("08:00"), End: clk("09:00")}, false},
		{"covers", Interval{Start: clk("08:00"), End: clk("11:00")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestIntervalSubtractTruncatesOnly(t *testing.T) {
	base := Interval{Start: clk("09:00"), End: clk("12:00")}

	got, ok := base.Subtract(Interval{Start: clk("10:00"), End: clk("10:30")})
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: clk("09:00"), End: clk("10:00")}, got, "mid-block removal must not split")

	got, ok = base.Subtract(Interval{Start: clk("08:00"), End: clk("09:30")})
	assert.True(t, ok)
	assert.Equal(t, base, got, "removal starting before the block leaves it untouched")

	got, ok = base.Subtract(Interval{Start: clk("12:00"), End: clk("13:00")})
	assert.True(t, ok)
	assert.Equal(t, base, got)

	_, ok = base.Subtract(Interval{Start: clk("09:00"), End: clk("09:30")})
	assert.False(t, ok, "removal at the block start leaves nothing")
}
