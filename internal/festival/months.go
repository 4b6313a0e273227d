package festival

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kingrea/patro/internal/bs"
)

// monthVariants maps known spellings of each BS month to its canonical
// romanisation. Keys are lower case.
var monthVariants = buildMonthVariants(map[string][]string{
	"Baisakh": {"baisakh", "baishakh", "vaisakh", "vaishakh", "baisak", "besakh", "बैशाख", "वैशाख"},
	"Jestha":  {"jestha", "jeth", "jeshtha", "jyestha", "jyeshtha", "जेठ", "जेष्ठ", "ज्येष्ठ"},
	"Ashadh":  {"ashadh", "ashad", "asadh", "asar", "ashar", "aashadh", "असार", "आषाढ"},
	"Shrawan": {"shrawan", "srawan", "shravan", "sravan", "saun", "sawan", "साउन", "श्रावण"},
	"Bhadra":  {"bhadra", "bhadau", "bhado", "bhadrapad", "भदौ", "भाद्र"},
	"Ashwin":  {"ashwin", "aswin", "aashwin", "asoj", "ashoj", "असोज", "आश्विन"},
	"Kartik":  {"kartik", "kartika", "kattik", "कात्तिक", "कार्तिक"},
	"Mangsir": {"mangsir", "mangshir", "marga", "margashirsha", "मंसिर", "मार्ग"},
	"Poush":   {"poush", "paush", "push", "pus", "pausa", "पुस", "पौष"},
	"Magh":    {"magh", "magha", "माघ"},
	"Falgun":  {"falgun", "phalgun", "phagun", "fagun", "फागुन", "फाल्गुन"},
	"Chaitra": {"chaitra", "chait", "chaitr", "चैत", "चैत्र"},
})

func buildMonthVariants(groups map[string][]string) map[string]string {
	out := make(map[string]string)
	for canonical, variants := range groups {
		out[strings.ToLower(canonical)] = canonical
		for _, v := range variants {
			out[strings.ToLower(v)] = canonical
		}
	}
	return out
}

// CanonicalMonthName folds a BS month spelling onto one of the twelve names
// bs.MonthName returns. Unknown names come back trimmed but otherwise as
// given, so the function is idempotent for every input.
func CanonicalMonthName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := monthVariants[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// MonthNumber resolves any known spelling to 1..12.
func MonthNumber(raw string) (int, bool) {
	canonical := CanonicalMonthName(raw)
	for m := 1; m <= 12; m++ {
		if bs.MonthName(m) == canonical {
			return m, true
		}
	}
	return 0, false
}

// Key identifies the festivals falling on one BS month and day, written
// "<CanonicalMonthName>-<day>".
type Key string

// KeyFor builds the key for a BS month number and day.
func KeyFor(month, day int) Key {
	return Key(fmt.Sprintf("%s-%d", CanonicalMonthName(bs.MonthName(month)), day))
}

// KeyOf builds the key a BS date is looked up under.
func KeyOf(d bs.BSDate) Key {
	return KeyFor(d.Month, d.Day)
}

// ParseKey splits a key written with any known month spelling, returning the
// month number and day.
func ParseKey(raw string) (month, day int, err error) {
	value := strings.TrimSpace(raw)
	idx := strings.LastIndex(value, "-")
	if idx <= 0 || idx == len(value)-1 {
		return 0, 0, fmt.Errorf("festival: key %q: want <Month>-<day>", raw)
	}
	month, ok := MonthNumber(value[:idx])
	if !ok {
		return 0, 0, fmt.Errorf("festival: key %q: unknown month %q", raw, value[:idx])
	}
	day, err = strconv.Atoi(value[idx+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("festival: key %q: %w", raw, err)
	}
	if day < 1 || day > 32 {
		return 0, 0, fmt.Errorf("festival: key %q: day %d outside 1-32", raw, day)
	}
	return month, day, nil
}

// NormalizeKey rewrites a key into canonical form.
func NormalizeKey(raw string) (Key, error) {
	month, day, err := ParseKey(raw)
	if err != nil {
		return "", err
	}
	return KeyFor(month, day), nil
}
