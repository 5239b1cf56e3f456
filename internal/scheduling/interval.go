// Package scheduling resolves tutor availability and booking conflicts.
//
// Every function in this package is pure: callers pass a fully materialized
// snapshot of the term, tutor schedules and existing appointments, and get a
// derived answer back. Nothing here performs I/O or keeps state, so the
// functions are safe for concurrent use over read-only inputs.
package scheduling

import (
	"fmt"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// Interval is a half-open [Start, End) window within a single day.
type Interval struct {
	Start models.Clock `json:"start"`
	End   models.Clock `json:"end"`
}

// Empty reports whether the interval covers no time at all.
func (i Interval) Empty() bool {
	return i.End <= i.Start
}

// Contains reports whether p lies in [Start, End).
func (i Interval) Contains(p models.Clock) bool {
	return p >= i.Start && p < i.End
}

// ContainsEnd is the mirrored rule used for end times: p lies in (Start, End].
func (i Interval) ContainsEnd(p models.Clock) bool {
	return p > i.Start && p <= i.End
}

// Overlaps reports whether both half-open intervals share any moment.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Subtract removes o from i by truncation only: when o starts inside i the
// remainder is [i.Start, o.Start), otherwise i is returned unchanged. The
// interval is never split in two. The boolean is false when nothing remains.
func (i Interval) Subtract(o Interval) (Interval, bool) {
	if i.Contains(o.Start) {
		i.End = o.Start
	}
	return i, !i.Empty()
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s,%s)", i.Start, i.End)
}

// endMatches is the location lookup rule: p falls strictly inside the
// interval or lands exactly on its end.
func endMatches(i Interval, p models.Clock) bool {
	return (p > i.Start && p < i.End) || p == i.End
}

func blockInterval(b models.RegularScheduleBlock) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

func exceptionInterval(e models.DateException) Interval {
	return Interval{Start: e.StartTime, End: e.EndTime}
}

func appointmentInterval(a models.Appointment) Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}
