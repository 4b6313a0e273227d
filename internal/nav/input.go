package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/patro/internal/bs"
)

// ErrBusy is reported through a jump's error callback when the controller
// is mid-transition and rejects the request.
var ErrBusy = errors.New("nav: a transition is already in progress")

// MalformedInputError reports an externally supplied date that could not be
// read as an AD date.
type MalformedInputError struct {
	Input string
	Err   error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("nav: cannot read %q as a date (want YYYY-MM-DD): %v", e.Input, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ParseInput reads an externally supplied ISO-8601 date.
func ParseInput(raw string) (bs.ADDate, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return bs.ADDate{}, &MalformedInputError{Input: raw, Err: errors.New("empty value")}
	}
	date, err := bs.ParseAD(trimmed)
	if err != nil {
		return bs.ADDate{}, &MalformedInputError{Input: raw, Err: err}
	}
	return date, nil
}
