// internal/bs/date.go
//
// Value types for the two calendars the engine understands. Both are plain
// comparable structs so they can be used as map keys and compared with ==.

package bs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ADDate is a Gregorian calendar date.
type ADDate struct {
	Year  int
	Month int
	Day   int
}

// BSDate is a Bikram Sambat calendar date.
type BSDate struct {
	Year  int
	Month int
	Day   int
}

// NewAD builds an ADDate from its parts without validation.
func NewAD(year, month, day int) ADDate {
	return ADDate{Year: year, Month: month, Day: day}
}

// FromTime takes the calendar date of t in t's own location.
func FromTime(t time.Time) ADDate {
	return ADDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseAD reads an ISO-8601 date (YYYY-MM-DD). A full RFC 3339 timestamp is
// accepted too; only its date part is kept.
func ParseAD(raw string) (ADDate, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ADDate{}, fmt.Errorf("bs: empty date")
	}
	if t, err := time.Parse(isoLayout, value); err == nil {
		return FromTime(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return ADDate{}, fmt.Errorf("bs: parse AD date %q: %w", raw, err)
	}
	return FromTime(t), nil
}

// Time returns midnight UTC on the date.
func (d ADDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the date exists in the Gregorian calendar.
func (d ADDate) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInADMonth(d.Year, d.Month)
}

// IsZero reports whether d is the zero value.
func (d ADDate) IsZero() bool {
	return d == ADDate{}
}

// String renders the date as YYYY-MM-DD, the key format used for selections.
func (d ADDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the day of week, Sunday being 0.
func (d ADDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// FirstOfMonth returns the first day of d's month.
func (d ADDate) FirstOfMonth() ADDate {
	return ADDate{Year: d.Year, Month: d.Month, Day: 1}
}

// AddMonths moves the first of d's month by n months.
func (d ADDate) AddMonths(n int) ADDate {
	t := time.Date(d.Year, time.Month(d.Month)+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return FromTime(t)
}

// AddDays shifts the date by n days.
func (d ADDate) AddDays(n int) ADDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
func (d ADDate) Before(other ADDate) bool {
	return d.Time().Before(other.Time())
}

// SameMonth reports whether both dates fall in the same Gregorian month.
func (d ADDate) SameMonth(other ADDate) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// Label renders the month heading, e.g. "April 2024".
func (d ADDate) Label() string {
	return fmt.Sprintf("%s %d", time.Month(d.Month), d.Year)
}

// DaysInADMonth returns the Gregorian length of a month.
func DaysInADMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String renders the date as YYYY-MM-DD.
func (d BSDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Format renders the date as "2081 Baisakh 1".
func (d BSDate) Format() string {
	return fmt.Sprintf("%d %s %d", d.Year, MonthName(d.Month), d.Day)
}

// FormatLocal renders the date with Nepali month names and numerals.
func (d BSDate) FormatLocal() string {
	return fmt.Sprintf("%s %s %s", Devanagari(d.Year), LocalMonthName(d.Month), Devanagari(d.Day))
}

// Validate checks the date against the month-length table.
func (d BSDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("bs: month %d in %s: %w", d.Month, d, ErrInvalidDate)
	}
	days, err := DaysInMonth(d.Year, d.Month)
	if err != nil {
		return err
	}
	if d.Day < 1 || d.Day > days {
		return fmt.Errorf("bs: day %d of %s %d has %d days: %w", d.Day, MonthName(d.Month), d.Year, days, ErrInvalidDate)
	}
	return nil
}

// ParseBS reads a BS date written as YYYY-MM-DD.
func ParseBS(raw string) (BSDate, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return BSDate{}, fmt.Errorf("bs: parse BS date %q: want YYYY-MM-DD", raw)
	}
	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return BSDate{}, fmt.Errorf("bs: parse BS date %q: %w", raw, err)
		}
		fields[i] = n
	}
	d := BSDate{Year: fields[0], Month: fields[1], Day: fields[2]}
	if err := d.Validate(); err != nil {
		return BSDate{}, err
	}
	return d, nil
}
