// internal/grid/builder.go
//
// The month grid is always six weeks of seven days so a view never has to
// re-layout between months. Cells outside the displayed month are padding.

package grid

import (
	"fmt"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/festival"
)

const (
	// Columns is the number of weekdays per row, Sunday first.
	Columns = 7
	// Rows is the number of weeks in every grid.
	Rows = 6
	// Size is the fixed cell count of a grid.
	Size = Rows * Columns
)

// Cell is one square of the grid. AD is nil for padding. BS is nil for
// padding and for days the converter table does not cover.
type Cell struct {
	AD        *bs.ADDate
	BS        *bs.BSDate
	Festivals []festival.Record
}

// IsPadding reports whether the cell lies outside the displayed month.
func (c Cell) IsPadding() bool {
	return c.AD == nil
}

// HasFestivals reports whether at least one festival falls on the cell.
func (c Cell) HasFestivals() bool {
	return len(c.Festivals) > 0
}

// Grid is a built month.
type Grid [Size]Cell

// Lookup is the slice of the festival registry the builder needs.
type Lookup interface {
	Lookup(bs.BSDate) []festival.Record
}

// Builder lays out month grids against an injected festival registry.
type Builder struct {
	festivals Lookup
}

// NewBuilder wires a builder to a registry. A nil registry yields grids
// with no festivals.
func NewBuilder(festivals Lookup) *Builder {
	return &Builder{festivals: festivals}
}

// Build lays out the month containing monthStart. Only the year and month
// of monthStart are used.
func (b *Builder) Build(monthStart bs.ADDate) Grid {
	var g Grid
	first := monthStart.FirstOfMonth()
	lead := int(first.Weekday())
	days := bs.DaysInADMonth(first.Year, first.Month)
	for i := 0; i < days; i++ {
		ad := bs.NewAD(first.Year, first.Month, i+1)
		g[lead+i] = b.cell(ad)
	}
	return g
}

func (b *Builder) cell(ad bs.ADDate) Cell {
	cell := Cell{AD: &ad}
	date, err := bs.ToBS(ad)
	if err != nil {
		// Days past either end of the table keep their AD date only.
		return cell
	}
	cell.BS = &date
	if b != nil && b.festivals != nil {
		cell.Festivals = b.festivals.Lookup(date)
	}
	return cell
}

// LeadingPadding counts the padding cells before the first day.
func (g Grid) LeadingPadding() int {
	for i, cell := range g {
		if !cell.IsPadding() {
			return i
		}
	}
	return len(g)
}

// Days returns the non-padding cells in day order.
func (g Grid) Days() []Cell {
	out := make([]Cell, 0, 31)
	for _, cell := range g {
		if !cell.IsPadding() {
			out = append(out, cell)
		}
	}
	return out
}

// Week returns row r of the grid.
func (g Grid) Week(r int) []Cell {
	if r < 0 || r >= Rows {
		return nil
	}
	return g[r*Columns : (r+1)*Columns]
}

// MonthFestivalDays keeps the cells that carry at least one festival, in
// day order.
func MonthFestivalDays(g Grid) []Cell {
	var out []Cell
	for _, cell := range g {
		if cell.IsPadding() || !cell.HasFestivals() {
			continue
		}
		out = append(out, cell)
	}
	return out
}

// Summary describes a displayed month for headers and counters.
type Summary struct {
	ADLabel      string
	BSLabel      string
	BSLocalLabel string
	FestivalDays int
	MonthImage   string
	FirstBS      *bs.BSDate
	LastBS       *bs.BSDate
}

// Summarize derives the month headline: the Gregorian month, the BS month
// of the 1st (e.g. "Baisakh २०८१") and the festival day count.
func Summarize(g Grid) Summary {
	days := g.Days()
	s := Summary{FestivalDays: len(MonthFestivalDays(g)), MonthImage: festival.DefaultImage}
	if len(days) == 0 {
		return s
	}
	s.ADLabel = days[0].AD.Label()
	for _, cell := range days {
		if cell.BS == nil {
			continue
		}
		if s.FirstBS == nil {
			s.FirstBS = cell.BS
		}
		s.LastBS = cell.BS
	}
	if s.FirstBS != nil {
		s.BSLabel = fmt.Sprintf("%s %s", bs.MonthName(s.FirstBS.Month), bs.Devanagari(s.FirstBS.Year))
		s.BSLocalLabel = fmt.Sprintf("%s %s", bs.LocalMonthName(s.FirstBS.Month), bs.Devanagari(s.FirstBS.Year))
		s.MonthImage = festival.MonthImage(s.FirstBS.Month)
	}
	return s
}

// Span renders the BS months the grid covers, e.g. "Chaitra 2080 / Baisakh 2081".
func (s Summary) Span() string {
	if s.FirstBS == nil || s.LastBS == nil {
		return ""
	}
	first := fmt.Sprintf("%s %d", bs.MonthName(s.FirstBS.Month), s.FirstBS.Year)
	last := fmt.Sprintf("%s %d", bs.MonthName(s.LastBS.Month), s.LastBS.Year)
	if first == last {
		return first
	}
	return first + " / " + last
}
