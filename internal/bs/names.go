package bs

import (
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"Baisakh", "Jestha", "Ashadh", "Shrawan", "Bhadra", "Ashwin",
	"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
}

var localMonthNames = [12]string{
	"बैशाख", "जेठ", "असार", "साउन", "भदौ", "असोज",
	"कात्तिक", "मंसिर", "पुस", "माघ", "फागुन", "चैत",
}

var devanagariDigits = [10]rune{'०', '१', '२', '३', '४', '५', '६', '७', '८', '९'}

// MonthName returns the romanised name of a BS month (1 = Baisakh), or ""
// when month is out of bounds.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// LocalMonthName returns the Nepali name of a BS month.
func LocalMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return localMonthNames[month-1]
}

// MonthNames lists the romanised month names in calendar order.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames[:])
	return out
}

// LocalMonthNames lists the Nepali month names in calendar order.
func LocalMonthNames() []string {
	out := make([]string, len(localMonthNames))
	copy(out, localMonthNames[:])
	return out
}

// Devanagari renders n with Devanagari digits.
func Devanagari(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if r >= '0' && r <= '9' {
			b.WriteRune(devanagariDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
