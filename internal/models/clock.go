package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay bounds the Clock domain.
const MinutesPerDay = 24 * 60

// Clock is a time of day at minute resolution (minutes after midnight).
// The zero value is 00:00 and doubles as the "unset" sentinel for end times.
type Clock int

// NewClock builds a Clock from hour and minute components.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute).normalize()
}

// ClockOf extracts the time of day from t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

// ParseClock accepts HH:MM or HH:MM:SS. Seconds are discarded.
func ParseClock(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if len(parts) == 3 {
		// fractional seconds come back from some drivers, e.g. "09:30:00.000000"
		secPart := strings.SplitN(parts[2], ".", 2)[0]
		if _, err := strconv.Atoi(secPart); err != nil {
			return 0, fmt.Errorf("invalid second in %q: %w", raw, err)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day out of range %q", raw)
	}
	return NewClock(hour, minute), nil
}

// MustParseClock panics on malformed input. Intended for fixtures and constants.
func MustParseClock(raw string) Clock {
	c, err := ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// IsZero reports whether the clock is the 00:00 sentinel.
func (c Clock) IsZero() bool { return c == 0 }

// Add shifts the clock by d, wrapping around midnight.
func (c Clock) Add(d time.Duration) Clock {
	return (c + Clock(d/time.Minute)).normalize()
}

// Sub returns the duration between two clocks on the same day.
func (c Clock) Sub(other Clock) time.Duration {
	return time.Duration(c-other) * time.Minute
}

// On places the clock on the given calendar date.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) normalize() Clock {
	c %= MinutesPerDay
	if c < 0 {
		c += MinutesPerDay
	}
	return c
}

// MarshalJSON renders the clock as "HH:MM".
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses "HH:MM" strings.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	if raw == "" {
		*c = 0
		return nil
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Scan implements sql.Scanner for TIME columns.
func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = 0
		return nil
	case time.Time:
		*c = ClockOf(v)
		return nil
	case []byte:
		parsed, err := ParseClock(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case int64:
		*c = Clock(v).normalize()
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	return c.String() + ":00", nil
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf strips the time of day from t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t, nil
}

// SameDate reports whether both values fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
