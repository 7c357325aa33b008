package timescale

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for strings that are not YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a civil calendar date with no time of day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string as a year/month/day triple.
// time.Parse without a zone yields UTC, so no local offset is ever applied.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// noon anchors the date at UTC noon; calendar rollover is done by time.Date
// normalisation and no daylight-saving transition exists in UTC.
func (d Date) noon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays shifts d by n calendar days.
func (d Date) AddDays(n int) Date {
	if n == 0 {
		return d
	}
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.noon().Weekday()
}

// ISOWeek returns the ISO 8601 year and week number of d.
func (d Date) ISOWeek() (year, week int) {
	return d.noon().ISOWeek()
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// AddMonths shifts the first of d's month by n months.
func (d Date) AddMonths(n int) Date {
	return DateOf(time.Date(d.Year, d.Month+time.Month(n), 1, 12, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.noon().Before(o.noon())
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.noon().After(o.noon())
}

// DaysBetween returns the number of days from a to b (negative when b < a).
func DaysBetween(a, b Date) int {
	return int(b.noon().Sub(a.noon()).Hours() / 24)
}

// ShiftCalendarDate adds n days to a YYYY-MM-DD string using calendar rules.
// A zero shift returns s untouched.
func ShiftCalendarDate(s string, n int) (string, error) {
	if n == 0 {
		return s, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.AddDays(n).String(), nil
}
