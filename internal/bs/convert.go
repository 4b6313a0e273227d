package bs

import (
	"fmt"
	"sort"
	"time"
)

// epoch is the AD date of Baisakh 1 of firstYear.
var epoch = ADDate{Year: 1913, Month: 4, Day: 13}

// yearStart[i] is the day offset from epoch of Baisakh 1 in firstYear+i.
// The final element is the total number of days the table covers.
var yearStart = buildYearStarts()

func buildYearStarts() []int {
	starts := make([]int, len(monthDays)+1)
	for i, months := range monthDays {
		total := 0
		for _, days := range months {
			total += int(days)
		}
		starts[i+1] = starts[i] + total
	}
	return starts
}

// Range reports the first and last AD dates the table can convert.
func Range() (first, last ADDate) {
	return epoch, epoch.AddDays(yearStart[len(yearStart)-1] - 1)
}

// BSRange reports the first and last BS dates the table covers.
func BSRange() (first, last BSDate) {
	lastMonth := monthDays[len(monthDays)-1]
	return BSDate{Year: firstYear, Month: 1, Day: 1},
		BSDate{Year: lastYear, Month: 12, Day: int(lastMonth[11])}
}

// DaysInMonth returns the number of days in a BS month.
func DaysInMonth(year, month int) (int, error) {
	if year < firstYear || year > lastYear {
		return 0, newYearRangeError(year)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("bs: month %d: %w", month, ErrInvalidDate)
	}
	return int(monthDays[year-firstYear][month-1]), nil
}

// DaysInYear returns the number of days in a BS year.
func DaysInYear(year int) (int, error) {
	if year < firstYear || year > lastYear {
		return 0, newYearRangeError(year)
	}
	idx := year - firstYear
	return yearStart[idx+1] - yearStart[idx], nil
}

// Projected reports whether a year's month lengths are a projection rather
// than a published calendar.
func Projected(year int) bool {
	return year > lastPublishedYear
}

// ToBS converts a Gregorian date to Bikram Sambat.
func ToBS(ad ADDate) (BSDate, error) {
	if !ad.Valid() {
		return BSDate{}, fmt.Errorf("bs: %s: %w", ad, ErrInvalidDate)
	}
	offset := daysBetween(epoch, ad)
	if offset < 0 || offset >= yearStart[len(yearStart)-1] {
		return BSDate{}, newADRangeError(ad)
	}
	// First year whose successor starts after offset.
	idx := sort.Search(len(monthDays), func(i int) bool {
		return yearStart[i+1] > offset
	})
	remaining := offset - yearStart[idx]
	for month, days := range monthDays[idx] {
		if remaining < int(days) {
			return BSDate{Year: firstYear + idx, Month: month + 1, Day: remaining + 1}, nil
		}
		remaining -= int(days)
	}
	// yearStart is derived from monthDays, so the loop always returns.
	panic(fmt.Sprintf("bs: offset %d escaped year %d", offset, firstYear+idx))
}

// ToAD converts a Bikram Sambat date to Gregorian.
func ToAD(d BSDate) (ADDate, error) {
	if err := d.Validate(); err != nil {
		return ADDate{}, err
	}
	idx := d.Year - firstYear
	offset := yearStart[idx]
	for month := 0; month < d.Month-1; month++ {
		offset += int(monthDays[idx][month])
	}
	offset += d.Day - 1
	return epoch.AddDays(offset), nil
}

// MustToBS is ToBS for dates known to be in range, such as fixtures.
func MustToBS(ad ADDate) BSDate {
	d, err := ToBS(ad)
	if err != nil {
		panic(err)
	}
	return d
}

// Clock supplies the current instant. time.Now satisfies it.
type Clock func() time.Time

// Now pairs the current date in both calendars.
type Now struct {
	AD ADDate
	BS BSDate
}

// Today reads clock once and converts the local date it reports.
func Today(clock Clock) (Now, error) {
	if clock == nil {
		clock = time.Now
	}
	ad := FromTime(clock())
	d, err := ToBS(ad)
	if err != nil {
		return Now{AD: ad}, err
	}
	return Now{AD: ad, BS: d}, nil
}

func daysBetween(from, to ADDate) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}
