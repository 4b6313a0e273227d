package bs

import (
	"errors"
	"testing"
	"time"
)

func TestToBSKnownDates(t *testing.T) {
	cases := []struct {
		ad   ADDate
		want BSDate
	}{
		{NewAD(1913, 4, 13), BSDate{1970, 1, 1}},
		{NewAD(1943, 4, 14), BSDate{2000, 1, 1}},
		{NewAD(2000, 1, 1), BSDate{2056, 9, 17}},
		{NewAD(2023, 10, 24), BSDate{2080, 7, 7}},
		{NewAD(2024, 1, 1), BSDate{2080, 9, 16}},
		{NewAD(2024, 4, 1), BSDate{2080, 12, 19}},
		{NewAD(2024, 4, 13), BSDate{2081, 1, 1}},
		{NewAD(2024, 4, 15), BSDate{2081, 1, 3}},
		{NewAD(2025, 4, 14), BSDate{2082, 1, 1}},
		{NewAD(2025, 5, 14), BSDate{2082, 1, 31}},
		{NewAD(2025, 5, 15), BSDate{2082, 2, 1}},
		{NewAD(2025, 5, 29), BSDate{2082, 2, 15}},
		{NewAD(2025, 7, 17), BSDate{2082, 4, 1}},
		{NewAD(2025, 9, 22), BSDate{2082, 6, 6}},
		{NewAD(2025, 10, 18), BSDate{2082, 7, 1}},
		{NewAD(2026, 1, 15), BSDate{2082, 10, 1}},
		{NewAD(2026, 4, 13), BSDate{2082, 12, 30}},
		{NewAD(2026, 4, 14), BSDate{2083, 1, 1}},
		{NewAD(2027, 4, 14), BSDate{2084, 1, 1}},
		{NewAD(2044, 4, 11), BSDate{2100, 12, 30}},
	}
	for _, tc := range cases {
		got, err := ToBS(tc.ad)
		if err != nil {
			t.Fatalf("ToBS(%s): %v", tc.ad, err)
		}
		if got != tc.want {
			t.Fatalf("ToBS(%s) = %s, want %s", tc.ad, got, tc.want)
		}
		back, err := ToAD(tc.want)
		if err != nil {
			t.Fatalf("ToAD(%s): %v", tc.want, err)
		}
		if back != tc.ad {
			t.Fatalf("ToAD(%s) = %s, want %s", tc.want, back, tc.ad)
		}
	}
}

func TestRoundTripEveryADDate(t *testing.T) {
	first, last := Range()
	count := 0
	for d := first; !last.Before(d); d = d.AddDays(1) {
		b, err := ToBS(d)
		if err != nil {
			t.Fatalf("ToBS(%s): %v", d, err)
		}
		back, err := ToAD(b)
		if err != nil {
			t.Fatalf("ToAD(%s): %v", b, err)
		}
		if back != d {
			t.Fatalf("round trip %s -> %s -> %s", d, b, back)
		}
		count++
	}
	if count != yearStart[len(yearStart)-1] {
		t.Fatalf("walked %d days, table covers %d", count, yearStart[len(yearStart)-1])
	}
}

func TestRoundTripEveryBSDate(t *testing.T) {
	var prev ADDate
	for year := firstYear; year <= lastYear; year++ {
		for month := 1; month <= 12; month++ {
			days, err := DaysInMonth(year, month)
			if err != nil {
				t.Fatalf("DaysInMonth(%d, %d): %v", year, month, err)
			}
			for day := 1; day <= days; day++ {
				d := BSDate{year, month, day}
				ad, err := ToAD(d)
				if err != nil {
					t.Fatalf("ToAD(%s): %v", d, err)
				}
				if !prev.IsZero() && ad != prev.AddDays(1) {
					t.Fatalf("ToAD(%s) = %s, expected the day after %s", d, ad, prev)
				}
				prev = ad
				back, err := ToBS(ad)
				if err != nil {
					t.Fatalf("ToBS(%s): %v", ad, err)
				}
				if back != d {
					t.Fatalf("round trip %s -> %s -> %s", d, ad, back)
				}
			}
		}
	}
}

func TestTableYearsAreSolarLength(t *testing.T) {
	for year := firstYear; year <= lastYear; year++ {
		total, err := DaysInYear(year)
		if err != nil {
			t.Fatalf("DaysInYear(%d): %v", year, err)
		}
		shortest := 365
		if Projected(year) {
			shortest = 364
		}
		if total < shortest || total > 366 {
			t.Fatalf("year %d has %d days", year, total)
		}
		for month := 1; month <= 12; month++ {
			days, _ := DaysInMonth(year, month)
			if days < 29 || days > 32 {
				t.Fatalf("%s %d has %d days", MonthName(month), year, days)
			}
		}
	}
}

func TestOutOfRange(t *testing.T) {
	first, last := Range()
	for _, ad := range []ADDate{first.AddDays(-1), last.AddDays(1), NewAD(1800, 1, 1), NewAD(2500, 6, 1)} {
		_, err := ToBS(ad)
		if err == nil {
			t.Fatalf("ToBS(%s) should fail", ad)
		}
		var rangeErr *OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("ToBS(%s) error %v is not *OutOfRangeError", ad, err)
		}
		if rangeErr.Calendar != "AD" || rangeErr.Value != ad.String() {
			t.Fatalf("unexpected error detail: %+v", rangeErr)
		}
	}
	for _, d := range []BSDate{{1969, 12, 30}, {2101, 1, 1}} {
		if _, err := ToAD(d); !IsOutOfRange(err) {
			t.Fatalf("ToAD(%s) error = %v, want out of range", d, err)
		}
	}
	if _, err := DaysInMonth(1969, 1); !IsOutOfRange(err) {
		t.Fatalf("DaysInMonth(1969, 1) error = %v, want out of range", err)
	}
	if _, err := DaysInMonth(2101, 1); !IsOutOfRange(err) {
		t.Fatalf("DaysInMonth(2101, 1) error = %v, want out of range", err)
	}
}

func TestInvalidDates(t *testing.T) {
	if _, err := ToBS(NewAD(2024, 2, 30)); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("ToBS(2024-02-30) error = %v, want ErrInvalidDate", err)
	}
	if _, err := DaysInMonth(2081, 13); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("DaysInMonth(2081, 13) error = %v, want ErrInvalidDate", err)
	}
	// Baisakh 2081 has 31 days.
	if _, err := ToAD(BSDate{2081, 1, 32}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("ToAD(2081-01-32) error = %v, want ErrInvalidDate", err)
	}
	if _, err := ToAD(BSDate{2081, 0, 1}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("ToAD(2081-00-01) error = %v, want ErrInvalidDate", err)
	}
}

func TestToday(t *testing.T) {
	fixed := time.Date(2024, 4, 13, 9, 30, 0, 0, time.UTC)
	now, err := Today(func() time.Time { return fixed })
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if now.AD != NewAD(2024, 4, 13) {
		t.Fatalf("AD = %s", now.AD)
	}
	if now.BS != (BSDate{2081, 1, 1}) {
		t.Fatalf("BS = %s", now.BS)
	}

	calls := 0
	_, err = Today(func() time.Time {
		calls++
		return time.Date(2090, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	if !IsOutOfRange(err) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("clock read %d times, want 1", calls)
	}
}

func TestBSRange(t *testing.T) {
	first, last := BSRange()
	adFirst, adLast := Range()
	if got, _ := ToAD(first); got != adFirst {
		t.Fatalf("first BS %s maps to %s, want %s", first, got, adFirst)
	}
	if got, _ := ToAD(last); got != adLast {
		t.Fatalf("last BS %s maps to %s, want %s", last, got, adLast)
	}
}

func TestProjected(t *testing.T) {
	cases := map[int]bool{1970: false, 2081: false, 2082: false, 2083: true, 2100: true}
	for year, want := range cases {
		if got := Projected(year); got != want {
			t.Fatalf("Projected(%d) = %v, want %v", year, got, want)
		}
	}
	if _, last := Range(); last != NewAD(2044, 4, 11) {
		t.Fatalf("last supported day = %s", last)
	}
}
