package festival

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kingrea/patro/internal/bs"
)

func TestCanonicalMonthNameVariants(t *testing.T) {
	cases := map[string]string{
		"Baisakh":   "Baisakh",
		"baishakh":  "Baisakh",
		"Mangshir":  "Mangsir",
		"Ashad":     "Ashadh",
		" ASAR ":    "Ashadh",
		"Saun":      "Shrawan",
		"Srawan":    "Shrawan",
		"Asoj":      "Ashwin",
		"Paush":     "Poush",
		"Phalgun":   "Falgun",
		"Chait":     "Chaitra",
		"बैशाख":     "Baisakh",
		"चैत":       "Chaitra",
		"Undecimber": "Undecimber",
	}
	for raw, want := range cases {
		if got := CanonicalMonthName(raw); got != want {
			t.Fatalf("CanonicalMonthName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCanonicalMonthNameIdempotent(t *testing.T) {
	inputs := []string{"  Undecimber ", "", "Magha"}
	for variant := range monthVariants {
		inputs = append(inputs, variant, strings.ToUpper(variant))
	}
	for _, raw := range inputs {
		once := CanonicalMonthName(raw)
		if twice := CanonicalMonthName(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestCanonicalNamesMatchConverter(t *testing.T) {
	for m := 1; m <= 12; m++ {
		name := bs.MonthName(m)
		if got := CanonicalMonthName(name); got != name {
			t.Fatalf("month %d: canonical %q differs from %q", m, got, name)
		}
		if got, ok := MonthNumber(strings.ToLower(name)); !ok || got != m {
			t.Fatalf("MonthNumber(%q) = %d, %v", name, got, ok)
		}
	}
}

func TestParseKey(t *testing.T) {
	month, day, err := ParseKey("Mangshir-1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if month != 8 || day != 1 {
		t.Fatalf("got %d-%d", month, day)
	}
	for _, bad := range []string{"Baisakh", "Baisakh-", "-1", "Nowhere-3", "Magh-0", "Magh-33", "Magh-x"} {
		if _, _, err := ParseKey(bad); err == nil {
			t.Fatalf("ParseKey(%q) should fail", bad)
		}
	}
	if key := KeyOf(bs.BSDate{Year: 2081, Month: 8, Day: 1}); key != "Mangsir-1" {
		t.Fatalf("KeyOf = %q", key)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if reg.Len() != 27 {
		t.Fatalf("Len = %d, want 27", reg.Len())
	}
	newYear := reg.Lookup(bs.BSDate{Year: 2081, Month: 1, Day: 1})
	if len(newYear) != 2 {
		t.Fatalf("Baisakh-1 records = %d, want 2", len(newYear))
	}
	if newYear[0].ID != "baisakh-1" || newYear[1].ID != "sindur-jatra" {
		t.Fatalf("record order not preserved: %s, %s", newYear[0].ID, newYear[1].ID)
	}
	if got := reg.Lookup(bs.BSDate{Year: 2081, Month: 9, Day: 2}); got != nil {
		t.Fatalf("expected miss, got %v", got)
	}
	keys := reg.Keys()
	if keys[0] != "Baisakh-1" || keys[len(keys)-1] != "Chaitra-30" {
		t.Fatalf("keys not in calendar order: %v", keys)
	}
	teej := reg.Get("Shrawan-3")
	if len(teej) != 1 || !teej[0].Approximate {
		t.Fatalf("expected approximate Teej, got %+v", teej)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	reg := MustDefault()
	d := bs.BSDate{Year: 2081, Month: 1, Day: 1}
	got := reg.Lookup(d)
	got[0].Name = "mutated"
	if reg.Lookup(d)[0].Name == "mutated" {
		t.Fatalf("lookup exposed registry storage")
	}
	a, b := MustDefault(), MustDefault()
	if !reflect.DeepEqual(a.Groups(), b.Groups()) {
		t.Fatalf("default registries differ")
	}
}

func TestNewMergesVariantKeys(t *testing.T) {
	reg, err := New(
		Group{Key: "Mangshir-1", Records: []Record{{ID: "a", Name: "A"}}},
		Group{Key: "mangsir-1", Records: []Record{{ID: "b", Name: "B"}}},
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d", reg.Len())
	}
	got := reg.Get("Mangsir-1")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("merged records = %+v", got)
	}
}

func TestNewRejectsBadGroups(t *testing.T) {
	cases := map[string][]Group{
		"empty":     {{Key: "Magh-1"}},
		"bad key":   {{Key: "Magh", Records: []Record{{ID: "x", Name: "X"}}}},
		"no id":     {{Key: "Magh-1", Records: []Record{{Name: "X"}}}},
		"no name":   {{Key: "Magh-1", Records: []Record{{ID: "x"}}}},
		"duplicate": {{Key: "Magh-1", Records: []Record{{ID: "x", Name: "X"}}}, {Key: "Magh-2", Records: []Record{{ID: "x", Name: "Y"}}}},
	}
	for name, groups := range cases {
		if _, err := New(groups...); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
Asoj-15:
  - id: dashain
    name: Dashain
    name_np: दशैं
    imageUrl: https://example.org/dashain.jpg
    approx: true
Baishakh-1:
  - id: new-year
    name: New Year
`
	reg, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := reg.Get("Ashwin-15")
	if len(got) != 1 {
		t.Fatalf("expected dashain under Ashwin-15, got %v", reg.Keys())
	}
	want := Record{ID: "dashain", Name: "Dashain", LocalName: "दशैं", ImageURL: "https://example.org/dashain.jpg", Approximate: true}
	if got[0] != want {
		t.Fatalf("record = %+v", got[0])
	}
	if keys := reg.Keys(); keys[0] != "Baisakh-1" {
		t.Fatalf("keys = %v", keys)
	}

	for _, bad := range []string{"", "   ", "- a\n- b\n", "Magh-1: {id: x}\n"} {
		if _, err := ParseYAML([]byte(bad)); err == nil {
			t.Fatalf("ParseYAML(%q) should fail", bad)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "festivals.yaml")
	if err := os.WriteFile(path, []byte("Magh-1:\n  - id: maghe\n    name: Maghe Sankranti\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d", reg.Len())
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bundled, err := LoadOrDefault("")
	if err != nil || bundled.Len() != 27 {
		t.Fatalf("LoadOrDefault(\"\") = %v, %v", bundled, err)
	}
	custom, err := LoadOrDefault(path)
	if err != nil || custom.Len() != 1 {
		t.Fatalf("LoadOrDefault(path) = %v, %v", custom, err)
	}
}

func TestImageSources(t *testing.T) {
	rec := Record{ID: "bhadra-15", Image: "indra-jatra.svg", ImageURL: "https://example.org/indra.jpg"}
	if got, want := rec.ImageSources(false), []string{"indra-jatra.svg", "https://example.org/indra.jpg", DefaultImage}; !reflect.DeepEqual(got, want) {
		t.Fatalf("local first = %v, want %v", got, want)
	}
	if got, want := rec.ImageSources(true), []string{"https://example.org/indra.jpg", "indra-jatra.svg", DefaultImage}; !reflect.DeepEqual(got, want) {
		t.Fatalf("remote first = %v, want %v", got, want)
	}
	bare := Record{ID: "jestha-5"}
	if got, want := bare.ImageSources(false), []string{"jestha-5.svg", DefaultImage}; !reflect.DeepEqual(got, want) {
		t.Fatalf("id fallback = %v, want %v", got, want)
	}
	placeholder := Record{ID: "ashwin-1", Image: DefaultImage}
	if got, want := placeholder.ImageSources(false), []string{DefaultImage}; !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}
	if MonthImage(4) != "shrawan-month.svg" || MonthImage(0) != DefaultImage {
		t.Fatalf("unexpected month images")
	}
}
