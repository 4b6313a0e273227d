package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/grid"
	"github.com/kingrea/patro/internal/logbook"
	"github.com/kingrea/patro/internal/nav"
)

var weekdayLabels = [grid.Columns]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// View renders the calendar, the side panel and the footer.
func (a *App) View() string {
	if a.closed {
		return ""
	}
	state := a.controller.Snapshot()
	g := a.controller.Grid()
	summary := grid.Summarize(g)

	calendar := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(summary),
		"",
		a.renderGrid(g, state),
	)
	side := a.renderSidePanel(g, state)

	width := a.width
	if width <= 0 {
		width = 120
	}
	var body string
	if width >= grid.Columns*cellWidth+40 {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.panel.Render(calendar),
			" ",
			a.styles.panel.Width(max(30, width-grid.Columns*cellWidth-12)).Render(side),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, a.styles.panel.Render(calendar), a.styles.panel.Render(side))
	}

	sections := []string{body}
	if a.mode == modeJump {
		sections = append(sections, a.prompt.View())
	}
	if status := a.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	if logs := a.renderLogPanel(); logs != "" {
		sections = append(sections, logs)
	}
	if a.mode == modeJump {
		sections = append(sections, a.help.View(a.promptKeys))
	} else {
		sections = append(sections, a.help.View(a.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader(summary grid.Summary) string {
	title := a.styles.title.Render("पात्रो · " + summary.ADLabel)
	sub := summary.Span()
	if sub == "" {
		sub = "outside the supported Bikram Sambat range"
	} else {
		sub = fmt.Sprintf("%s · %s", sub, summary.BSLocalLabel)
	}
	if summary.FestivalDays > 0 {
		sub += fmt.Sprintf(" · %d festival days", summary.FestivalDays)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, a.styles.subtitle.Render(sub))
}

func (a *App) renderGrid(g grid.Grid, state nav.State) string {
	today := bs.FromTime(a.clock())
	header := make([]string, grid.Columns)
	for i, label := range weekdayLabels {
		style := a.styles.weekday
		if i == int(time.Saturday) {
			style = a.styles.weekend
		}
		header[i] = style.Render(label)
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for r := 0; r < grid.Rows; r++ {
		week := g.Week(r)
		cells := make([]string, len(week))
		for i, cell := range week {
			cells[i] = a.renderCell(cell, i, state, today)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if state.Transitioning {
		return a.styles.fading.Render(out)
	}
	return out
}

// renderCell draws a two-line cell: the AD day over the BS day in
// Devanagari, with a dot when festivals fall on it.
func (a *App) renderCell(cell grid.Cell, column int, state nav.State, today bs.ADDate) string {
	if cell.IsPadding() {
		return a.styles.padding.Render(" \n ")
	}
	ad := *cell.AD
	top := strconv.Itoa(ad.Day)
	if cell.HasFestivals() {
		top += " •"
	}
	bottom := ""
	if cell.BS != nil {
		bottom = bs.Devanagari(cell.BS.Day)
	}

	style := a.styles.cell
	switch {
	case state.IsHighlighted(ad):
		style = a.styles.highlight
	case state.IsSelected(ad):
		style = a.styles.selected
	case ad == today:
		style = a.styles.today
	case cell.HasFestivals():
		style = a.styles.festival
	case column == int(time.Saturday):
		style = a.styles.holiday
	}
	if ad == a.cursor {
		top = a.styles.cursor.Render(top)
	}
	return style.Render(top + "\n" + bottom)
}

func (a *App) renderSidePanel(g grid.Grid, state nav.State) string {
	var sections []string
	if state.Selected != nil {
		sections = append(sections, a.renderSelection(*state.Selected), "")
	}
	sections = append(sections, a.styles.panelHead.Render("FESTIVALS THIS MONTH"))
	days := grid.MonthFestivalDays(g)
	if len(days) == 0 {
		sections = append(sections, a.styles.muted.Render("No festivals this month."))
	}
	for _, cell := range days {
		for _, rec := range cell.Festivals {
			marker := "  "
			if *cell.AD == a.cursor {
				marker = "› "
			}
			line := fmt.Sprintf("%s%s  %s %d  %s", marker, cell.AD.String()[5:], bs.MonthName(cell.BS.Month), cell.BS.Day, rec.Name)
			if rec.Approximate {
				line += " (approx.)"
			}
			sections = append(sections, a.styles.body.Render(line))
		}
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderSelection(d bs.ADDate) string {
	lines := []string{a.styles.panelHead.Render("SELECTED · " + d.String())}
	b, err := bs.ToBS(d)
	if err != nil {
		lines = append(lines, a.styles.muted.Render("No Bikram Sambat date for this day."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, a.styles.body.Render(b.Format()+" · "+b.FormatLocal()))
	preferRemote := a.config.Project.Festivals.PreferRemoteImages
	for _, rec := range a.registry.Lookup(b) {
		name := rec.Name
		if rec.LocalName != "" {
			name += " · " + rec.LocalName
		}
		lines = append(lines, a.styles.festival.UnsetWidth().Render(name))
		if rec.Description != "" {
			lines = append(lines, a.styles.body.Render(rec.Description))
		}
		if sources := rec.ImageSources(preferRemote); len(sources) > 0 {
			lines = append(lines, a.styles.muted.Render("image: "+sources[0]))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus() string {
	if a.statusMsg == "" {
		return ""
	}
	switch a.statusLvl {
	case logbook.LevelError:
		return a.styles.statusErr.Render(a.statusMsg)
	case logbook.LevelWarn:
		return a.styles.statusWarn.Render(a.statusMsg)
	default:
		return a.styles.status.Render(a.statusMsg)
	}
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	entries := a.logbook.Recent(logPanelLines)
	if len(entries) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		style := a.styles.muted
		switch entry.Level {
		case logbook.LevelWarn:
			style = a.styles.statusWarn
		case logbook.LevelError:
			style = a.styles.statusErr
		}
		stamp := ""
		if !entry.Time.IsZero() {
			stamp = entry.Time.Local().Format("15:04:05") + " "
		}
		lines = append(lines, style.Render(stamp+entry.Message))
	}
	head := a.styles.panelHead.Render(fmt.Sprintf("LOG · %s", fileName))
	return a.styles.panel.Render(head + "\n" + strings.Join(lines, "\n"))
}
