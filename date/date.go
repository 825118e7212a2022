// Package date provides a day-granularity Date type and closed date ranges,
// the time vocabulary of the reconciliation engine.
package date

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Min returns the minimum representable date. It is the lower bound of every
// "at or before" query.
func Min() Date { return New(1, time.January, 1) }

// Max returns a date later than any date a ledger can contain. Passing it as
// a query bound means "all time".
func Max() Date { return New(9999, time.December, 31) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// FromYMD converts a date in YYYYMMDD integer encoding (the encoding used by
// the MoneyWell persistent store) to a Date.
func FromYMD(ymd int) (Date, error) {
	y, m, d := ymd/10000, (ymd/100)%100, ymd%100
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("invalid ymd date %d", ymd)
	}
	date := New(y, time.Month(m), d)
	// New normalizes out-of-range days (Feb 30 becomes Mar 2); an encoding
	// that does not round-trip was not a valid calendar day.
	if date.Day() != d || date.Month() != time.Month(m) {
		return Date{}, fmt.Errorf("invalid ymd date %d", ymd)
	}
	return date, nil
}

// YMD returns the date in YYYYMMDD integer encoding.
func (d Date) YMD() int { return d.y*10000 + int(d.m)*100 + d.d }
