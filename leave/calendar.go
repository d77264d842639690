package leave

import (
	"time"
)

// =============================================================================
// DATE - Day-granular point in time
// =============================================================================

// Date is a calendar day. All comparisons are at day granularity in UTC;
// callers pass already-normalized dates and no timezone conversion happens.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(o Date) bool        { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool         { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool         { return d.Time.Equal(o.Time) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CHARGEABLE DAY COUNTING
// =============================================================================

// CountChargeableDays counts the days in [start, end] inclusive that charge
// against a leave balance. Weekend days (Saturday/Sunday) are skipped unless
// includeWeekends is set.
//
// A reversed range returns ErrInvalidRange rather than 0, so caller bugs
// surface instead of silently producing a zero-day request.
func CountChargeableDays(start, end Date, includeWeekends bool) (int, error) {
	if start.After(end) {
		return 0, ErrInvalidRange
	}

	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if includeWeekends || !d.IsWeekend() {
			count++
		}
	}
	return count, nil
}
