package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/patro/internal/config"
)

const cellWidth = 8

type palette struct {
	accent    lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	border    lipgloss.Color
	holiday   lipgloss.Color
	festival  lipgloss.Color
	selected  lipgloss.Color
	highlight lipgloss.Color
	today     lipgloss.Color
	warn      lipgloss.Color
	err       lipgloss.Color
}

var (
	darkPalette = palette{
		accent:    lipgloss.Color("#5B8DEF"),
		muted:     lipgloss.Color("#888888"),
		text:      lipgloss.Color("#DDDDDD"),
		border:    lipgloss.Color("#444444"),
		holiday:   lipgloss.Color("#FF6B6B"),
		festival:  lipgloss.Color("#F4B942"),
		selected:  lipgloss.Color("#2E5AAC"),
		highlight: lipgloss.Color("#8E44AD"),
		today:     lipgloss.Color("#2ECC71"),
		warn:      lipgloss.Color("#F4B942"),
		err:       lipgloss.Color("#FF6B6B"),
	}
	lightPalette = palette{
		accent:    lipgloss.Color("#1F4FB4"),
		muted:     lipgloss.Color("#777777"),
		text:      lipgloss.Color("#222222"),
		border:    lipgloss.Color("#BBBBBB"),
		holiday:   lipgloss.Color("#C0392B"),
		festival:  lipgloss.Color("#B9770E"),
		selected:  lipgloss.Color("#AED6F1"),
		highlight: lipgloss.Color("#D7BDE2"),
		today:     lipgloss.Color("#1E8449"),
		warn:      lipgloss.Color("#B9770E"),
		err:       lipgloss.Color("#C0392B"),
	}
)

type styles struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	weekday    lipgloss.Style
	weekend    lipgloss.Style
	cell       lipgloss.Style
	padding    lipgloss.Style
	holiday    lipgloss.Style
	festival   lipgloss.Style
	today      lipgloss.Style
	selected   lipgloss.Style
	highlight  lipgloss.Style
	cursor     lipgloss.Style
	fading     lipgloss.Style
	panel      lipgloss.Style
	panelHead  lipgloss.Style
	body       lipgloss.Style
	muted      lipgloss.Style
	status     lipgloss.Style
	statusWarn lipgloss.Style
	statusErr  lipgloss.Style
}

func newStyles(theme string) styles {
	p := darkPalette
	if theme == config.ThemeLight {
		p = lightPalette
	}
	cell := lipgloss.NewStyle().Width(cellWidth).Foreground(p.text)
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.holiday),
		subtitle:   lipgloss.NewStyle().Foreground(p.accent),
		weekday:    lipgloss.NewStyle().Width(cellWidth).Bold(true).Foreground(p.muted),
		weekend:    lipgloss.NewStyle().Width(cellWidth).Bold(true).Foreground(p.holiday),
		cell:       cell,
		padding:    cell.Foreground(p.border),
		holiday:    cell.Foreground(p.holiday),
		festival:   cell.Foreground(p.festival).Bold(true),
		today:      cell.Foreground(p.today).Bold(true),
		selected:   cell.Background(p.selected).Bold(true),
		highlight:  cell.Background(p.highlight).Bold(true),
		cursor:     lipgloss.NewStyle().Underline(true),
		fading:     lipgloss.NewStyle().Faint(true),
		panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		panelHead:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		body:       lipgloss.NewStyle().Foreground(p.text),
		muted:      lipgloss.NewStyle().Foreground(p.muted),
		status:     lipgloss.NewStyle().Foreground(p.accent),
		statusWarn: lipgloss.NewStyle().Foreground(p.warn),
		statusErr:  lipgloss.NewStyle().Foreground(p.err).Bold(true),
	}
}
