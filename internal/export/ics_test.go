package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/festival"
)

func TestFestivalEventsPlacesYear(t *testing.T) {
	reg := festival.MustDefault()
	events, err := FestivalEvents(reg, 2081)
	if err != nil {
		t.Fatalf("FestivalEvents: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected events")
	}
	first := events[0]
	if first.AD != bs.NewAD(2024, 4, 13) || first.Festival.ID != "baisakh-1" {
		t.Fatalf("first event = %+v", first)
	}
	if events[1].Festival.ID != "sindur-jatra" || events[1].AD != first.AD {
		t.Fatalf("second event = %+v", events[1])
	}
	for i, ev := range events {
		got, err := bs.ToBS(ev.AD)
		if err != nil || got != ev.BS {
			t.Fatalf("event %d: %s converts to %v (%v), want %s", i, ev.AD, got, err, ev.BS)
		}
		if ev.BS.Year != 2081 {
			t.Fatalf("event %d in year %d", i, ev.BS.Year)
		}
		if i > 0 && ev.AD.Before(events[i-1].AD) {
			t.Fatalf("events out of order at %d", i)
		}
	}
}

func TestFestivalEventsSkipsMissingDays(t *testing.T) {
	reg, err := festival.New(festival.Group{
		Key:     "Shrawan-32",
		Records: []festival.Record{{ID: "long-shrawan", Name: "Long Shrawan"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for year := 2075; year <= 2085; year++ {
		events, err := FestivalEvents(reg, year)
		if err != nil {
			t.Fatalf("year %d: %v", year, err)
		}
		length, _ := bs.DaysInMonth(year, 4)
		if want := length == 32; (len(events) == 1) != want {
			t.Fatalf("year %d: shrawan has %d days but got %d events", year, length, len(events))
		}
	}
}

func TestFestivalEventsOutOfRange(t *testing.T) {
	_, err := FestivalEvents(festival.MustDefault(), 2200)
	if !bs.IsOutOfRange(err) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	var rangeErr *bs.OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *bs.OutOfRangeError")
	}
}

func TestWriteICS(t *testing.T) {
	events, err := FestivalEvents(festival.MustDefault(), 2081)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	stamp := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	if err := WriteICS(&buf, 2081, events, Options{Stamp: stamp, ReminderDays: 1}); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	body := buf.String()
	required := []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"PRODID:" + ProductID + "\r\n",
		"X-WR-CALNAME:Nepali festivals 2081 BS\r\n",
		"UID:2081-01-01-baisakh-1@patro.calendar\r\n",
		"DTSTAMP:20240401T120000Z\r\n",
		"DTSTART;VALUE=DATE:20240413\r\n",
		"DTEND;VALUE=DATE:20240414\r\n",
		"STATUS:TENTATIVE\r\n",
		"TRIGGER:-P1D\r\n",
		"END:VCALENDAR\r\n",
	}
	for _, field := range required {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing %q", strings.TrimSpace(field))
		}
	}
	if got, want := strings.Count(body, "BEGIN:VEVENT"), len(events); got != want {
		t.Fatalf("VEVENT count = %d, want %d", got, want)
	}
	for _, line := range strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n") {
		if len(line) > 75 {
			t.Fatalf("line longer than 75 octets: %q", line)
		}
		if strings.Contains(line, "\n") {
			t.Fatalf("bare newline inside %q", line)
		}
	}
}

func TestEscapeAndFold(t *testing.T) {
	if got := escapeText("a,b;c\\d\ne"); got != `a\,b\;c\\d\ne` {
		t.Fatalf("escapeText = %q", got)
	}
	long := "DESCRIPTION:" + strings.Repeat("नेपाली ", 30)
	folded := fold(long)
	var rebuilt strings.Builder
	for i, part := range strings.Split(folded, "\r\n") {
		if len(part) > 75 {
			t.Fatalf("part %d too long: %d", i, len(part))
		}
		if i > 0 {
			if !strings.HasPrefix(part, " ") {
				t.Fatalf("continuation %d does not start with a space", i)
			}
			part = part[1:]
		}
		rebuilt.WriteString(part)
	}
	if rebuilt.String() != long {
		t.Fatalf("unfolding does not restore the line")
	}
}

func TestWriteICSAttachesOnlyURLs(t *testing.T) {
	day := bs.NewAD(2024, 4, 13)
	events := []Event{
		{AD: day, BS: bs.BSDate{Year: 2081, Month: 1, Day: 1}, Festival: festival.Record{ID: "local-only", Name: "Local"}},
		{AD: day, BS: bs.BSDate{Year: 2081, Month: 1, Day: 1}, Festival: festival.Record{
			ID: "remote", Name: "Remote", Image: "remote.svg", ImageURL: "https://example.org/remote.jpg",
		}},
	}
	var buf bytes.Buffer
	if err := WriteICS(&buf, 2081, events, Options{Stamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "ATTACH:") != 1 {
		t.Fatalf("expected one attachment:\n%s", out)
	}
	if !strings.Contains(out, "ATTACH:https://example.org/remote.jpg") {
		t.Fatalf("remote image not attached:\n%s", out)
	}
	for _, bare := range []string{"ATTACH:local-only.svg", "ATTACH:remote.svg", "ATTACH:" + festival.DefaultImage} {
		if strings.Contains(out, bare) {
			t.Fatalf("bare asset name attached: %s", bare)
		}
	}
}
