package bs

import (
	"errors"
	"fmt"
)

// ErrInvalidDate marks a date that does not exist in its calendar, such as
// 2024-02-30 AD or Baisakh 32 in a year where Baisakh has 31 days.
var ErrInvalidDate = errors.New("invalid date")

// OutOfRangeError reports a date the month-length table does not cover.
// Conversions never clamp or extrapolate past the table.
type OutOfRangeError struct {
	Calendar string // "AD" or "BS"
	Value    string
	Min      string
	Max      string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bs: %s date %s is outside the supported range %s to %s", e.Calendar, e.Value, e.Min, e.Max)
}

// IsOutOfRange reports whether err wraps an *OutOfRangeError.
func IsOutOfRange(err error) bool {
	var target *OutOfRangeError
	return errors.As(err, &target)
}

func newADRangeError(ad ADDate) error {
	first, last := Range()
	return &OutOfRangeError{Calendar: "AD", Value: ad.String(), Min: first.String(), Max: last.String()}
}

func newYearRangeError(year int) error {
	return &OutOfRangeError{
		Calendar: "BS",
		Value:    fmt.Sprintf("year %d", year),
		Min:      fmt.Sprintf("%d", firstYear),
		Max:      fmt.Sprintf("%d", lastYear),
	}
}
