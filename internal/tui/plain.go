package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kingrea/patro/internal/grid"
)

// WritePlain prints a month grid without styling, for pipes and files.
// Each day shows as "AD/BS" with a '*' on festival days, followed by the
// month's festival list.
func WritePlain(w io.Writer, g grid.Grid) error {
	summary := grid.Summarize(g)
	var b strings.Builder
	fmt.Fprintf(&b, "%s", summary.ADLabel)
	if span := summary.Span(); span != "" {
		fmt.Fprintf(&b, " (%s)", span)
	}
	b.WriteString("\n")
	for _, label := range weekdayLabels {
		fmt.Fprintf(&b, "%-8s", label)
	}
	b.WriteString("\n")
	for r := 0; r < grid.Rows; r++ {
		var row strings.Builder
		for _, cell := range g.Week(r) {
			fmt.Fprintf(&row, "%-8s", plainCell(cell))
		}
		line := strings.TrimRight(row.String(), " ")
		if line == "" {
			continue
		}
		b.WriteString(line + "\n")
	}
	for _, cell := range grid.MonthFestivalDays(g) {
		names := make([]string, len(cell.Festivals))
		for i, rec := range cell.Festivals {
			names[i] = rec.Name
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", cell.AD, cell.BS.Format(), strings.Join(names, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func plainCell(cell grid.Cell) string {
	if cell.IsPadding() {
		return ""
	}
	out := strconv.Itoa(cell.AD.Day)
	if cell.BS != nil {
		out += "/" + strconv.Itoa(cell.BS.Day)
	}
	if cell.HasFestivals() {
		out += "*"
	}
	return out
}

// WritePlainMonth writes the month as text. A jump target given at startup
// is applied first, skipping its animation, and the outcome is printed
// under the grid.
func (a *App) WritePlainMonth(w io.Writer) error {
	a.scheduler.immediate = true
	if a.jumpInput != "" {
		a.controller.SetJumpInput(a.jumpInput)
	}
	if err := WritePlain(w, a.controller.Grid()); err != nil {
		return err
	}
	if a.statusMsg == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s\n", a.statusMsg)
	return err
}
