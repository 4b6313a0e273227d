// Package export renders festival days as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/festival"
)

const (
	// ProductID identifies the generator in PRODID.
	ProductID = "-//patro//Nepali Festivals//EN"
	// ContentType is the MIME type of WriteICS output.
	ContentType = "text/calendar; charset=utf-8"

	uidDomain  = "patro.calendar"
	lineLimit  = 75
	stampShape = "20060102T150405Z"
	dateShape  = "20060102"
)

// Event is one festival observance placed on both calendars.
type Event struct {
	AD       bs.ADDate
	BS       bs.BSDate
	Festival festival.Record
}

// Options tune the feed.
type Options struct {
	// Stamp is written as DTSTAMP. Zero means time.Now.
	Stamp time.Time
	// ReminderDays adds a VALARM that many days before each event when > 0.
	ReminderDays int
	// PreferRemoteImages picks imageUrl over the bundled image for ATTACH.
	PreferRemoteImages bool
}

// FestivalEvents places every registry entry in BS year. Keys naming a day
// the year's month does not have (e.g. Shrawan-32 in a 31-day Shrawan) are
// skipped. Events come out in calendar order.
func FestivalEvents(reg *festival.Registry, year int) ([]Event, error) {
	if _, err := bs.DaysInYear(year); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	var events []Event
	for _, group := range reg.Groups() {
		month, day, err := festival.ParseKey(string(group.Key))
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		length, err := bs.DaysInMonth(year, month)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if day > length {
			continue
		}
		date := bs.BSDate{Year: year, Month: month, Day: day}
		ad, err := bs.ToAD(date)
		if err != nil {
			return nil, fmt.Errorf("export: place %s: %w", date, err)
		}
		for _, rec := range group.Records {
			events = append(events, Event{AD: ad, BS: date, Festival: rec})
		}
	}
	return events, nil
}

// WriteICS writes a VCALENDAR with one all-day VEVENT per event.
func WriteICS(w io.Writer, year int, events []Event, opts Options) error {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	cw := &calWriter{w: w}
	cw.line("BEGIN:VCALENDAR")
	cw.line("VERSION:2.0")
	cw.line("PRODID:" + ProductID)
	cw.line("CALSCALE:GREGORIAN")
	cw.line("METHOD:PUBLISH")
	cw.line(fmt.Sprintf("X-WR-CALNAME:Nepali festivals %d BS", year))
	cw.line("X-WR-TIMEZONE:Asia/Kathmandu")
	for _, ev := range events {
		rec := ev.Festival
		start := ev.AD.Time()
		cw.line("BEGIN:VEVENT")
		cw.line(fmt.Sprintf("UID:%s-%s@%s", ev.BS, rec.ID, uidDomain))
		cw.line("DTSTAMP:" + stamp.UTC().Format(stampShape))
		cw.line("DTSTART;VALUE=DATE:" + start.Format(dateShape))
		cw.line("DTEND;VALUE=DATE:" + start.AddDate(0, 0, 1).Format(dateShape))
		cw.line("SUMMARY:" + escapeText(rec.Name))
		cw.line("DESCRIPTION:" + escapeText(describe(ev)))
		cw.line("CATEGORIES:FESTIVAL")
		if rec.Approximate {
			cw.line("STATUS:TENTATIVE")
		} else {
			cw.line("STATUS:CONFIRMED")
		}
		if uri := attachment(rec, opts.PreferRemoteImages); uri != "" {
			cw.line("ATTACH:" + uri)
		}
		if opts.ReminderDays > 0 {
			cw.line("BEGIN:VALARM")
			cw.line("ACTION:DISPLAY")
			cw.line(fmt.Sprintf("TRIGGER:-P%dD", opts.ReminderDays))
			cw.line("DESCRIPTION:" + escapeText(fmt.Sprintf("%s in %d days", rec.Name, opts.ReminderDays)))
			cw.line("END:VALARM")
		}
		cw.line("END:VEVENT")
	}
	cw.line("END:VCALENDAR")
	return cw.err
}

// attachment returns the first image candidate that is an absolute http(s)
// URI. Local asset names are not valid ATTACH values.
func attachment(rec festival.Record, preferRemote bool) string {
	for _, src := range rec.ImageSources(preferRemote) {
		u, err := url.Parse(src)
		if err != nil || u.Host == "" {
			continue
		}
		if u.Scheme == "http" || u.Scheme == "https" {
			return src
		}
	}
	return ""
}

func describe(ev Event) string {
	parts := []string{ev.BS.Format()}
	if ev.Festival.LocalName != "" {
		parts = append(parts, ev.Festival.LocalName)
	}
	if ev.Festival.Description != "" {
		parts = append(parts, ev.Festival.Description)
	}
	if ev.Festival.Approximate {
		parts = append(parts, "Date is approximate.")
	}
	return strings.Join(parts, "\n")
}

// calWriter emits CRLF-terminated content lines folded at 75 octets and
// remembers the first write error.
type calWriter struct {
	w   io.Writer
	err error
}

func (c *calWriter) line(s string) {
	if c.err != nil {
		return
	}
	_, c.err = io.WriteString(c.w, fold(s)+"\r\n")
}

// fold splits a content line into 75-octet chunks without cutting a
// multi-byte rune; continuation lines start with a space.
func fold(s string) string {
	if len(s) <= lineLimit {
		return s
	}
	var b strings.Builder
	limit := lineLimit
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		// the leading space counts against the next line
		limit = lineLimit - 1
	}
	b.WriteString(s)
	return b.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	return r.Replace(s)
}
