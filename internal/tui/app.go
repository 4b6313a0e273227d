// internal/tui/app.go
//
// This is the terminal calendar for patro. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: the App below, wrapping the navigation controller
// 2. Update: keys and scheduled continuations become controller commands
// 3. View: the controller's grid rendered with lipgloss
//
// Controller transitions are deferred through tickScheduler, so every
// continuation comes back as a message and runs inside Update.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/config"
	"github.com/kingrea/patro/internal/festival"
	"github.com/kingrea/patro/internal/grid"
	"github.com/kingrea/patro/internal/logbook"
	"github.com/kingrea/patro/internal/nav"
)

// inputMode says whether keys drive the calendar or the jump prompt.
type inputMode int

const (
	modeCalendar inputMode = iota
	modeJump
)

const logPanelLines = 4

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClock overrides the clock used for "today".
func WithClock(clock bs.Clock) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithRegistry replaces the festival registry the config would load.
func WithRegistry(reg *festival.Registry) AppOption {
	return func(a *App) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithSelectedDate starts on the month of the given ISO date and selects
// it. Malformed values leave the selection empty.
func WithSelectedDate(raw string) AppOption {
	return func(a *App) {
		a.selectedInput = strings.TrimSpace(raw)
	}
}

// WithJumpTarget jumps to the given ISO date once the program starts.
func WithJumpTarget(raw string) AppOption {
	return func(a *App) {
		a.jumpInput = strings.TrimSpace(raw)
	}
}

// App is the main application model.
type App struct {
	config     *config.Config
	logbook    *logbook.Logbook
	registry   *festival.Registry
	controller *nav.Controller
	scheduler  *tickScheduler
	clock      bs.Clock

	selectedInput string
	jumpInput     string

	keys       keyMap
	promptKeys promptKeys
	help       help.Model
	prompt     textinput.Model
	styles     styles
	mode       inputMode

	// cursor is the day keyboard selection acts on.
	cursor    bs.ADDate
	statusMsg string
	statusLvl logbook.Level
	closed    bool

	width  int
	height int
}

// NewApp loads configuration from projectDir and builds the calendar.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.Open(cfg.LogsDir())
	if err != nil {
		return nil, err
	}

	prompt := textinput.New()
	prompt.Placeholder = "YYYY-MM-DD or bs:YYYY-MM-DD"
	prompt.Prompt = "Go to › "
	prompt.CharLimit = 32
	prompt.Cursor.SetMode(cursor.CursorStatic)

	app := &App{
		config:     cfg,
		logbook:    lb,
		scheduler:  &tickScheduler{},
		clock:      time.Now,
		keys:       defaultKeyMap(),
		promptKeys: defaultPromptKeys(),
		help:       help.New(),
		prompt:     prompt,
		styles:     newStyles(cfg.Theme()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.registry == nil {
		reg, err := festival.LoadOrDefault(cfg.FestivalsFile())
		if err != nil {
			lb.Error("Festival data unavailable: %v", err)
			return nil, err
		}
		app.registry = reg
	}

	navOpts := []nav.Option{
		nav.WithScheduler(app.scheduler),
		nav.WithClock(app.clock),
		nav.WithDelays(cfg.MonthDelay(), cfg.JumpDelay(), cfg.SettleDelay()),
		nav.WithCallbacks(nav.Callbacks{
			OnSelect:       app.handleSelect,
			OnJumpComplete: app.handleJumpComplete,
			OnJumpError:    app.handleJumpError,
			OnClose:        app.handleClose,
		}),
	}
	var initial *bs.ADDate
	if app.selectedInput != "" {
		if d, err := nav.ParseInput(app.selectedInput); err == nil {
			initial = &d
			navOpts = append(navOpts, nav.WithInitialMonth(d))
		} else {
			app.setStatus(logbook.LevelWarn, err.Error())
		}
	}
	app.controller = nav.New(grid.NewBuilder(app.registry), navOpts...)
	if app.selectedInput != "" {
		app.controller.SetSelectedInput(app.selectedInput)
	}
	if initial != nil {
		app.cursor = *initial
	} else {
		app.cursor = bs.FromTime(app.clock())
	}
	app.syncCursor()

	summary := grid.Summarize(app.controller.Grid())
	lb.Info("Calendar opened · %s · %s", summary.ADLabel, summary.Span())
	return app, nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if a.jumpInput != "" {
		a.controller.SetJumpInput(a.jumpInput)
	}
	return a.scheduler.drain()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
	case continuationMsg:
		if msg.run != nil {
			msg.run()
		}
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.mode == modeJump {
			cmd = a.updatePrompt(msg)
		} else {
			cmd = a.updateCalendar(msg)
		}
	}
	a.syncCursor()
	if a.closed {
		return a, tea.Quit
	}
	return a, batch(cmd, a.scheduler.drain())
}

func (a *App) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.controller.Close()
	case key.Matches(msg, a.keys.PrevMonth):
		a.shiftMonth(-1)
	case key.Matches(msg, a.keys.NextMonth):
		a.shiftMonth(1)
	case key.Matches(msg, a.keys.Left):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Right):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-7)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(7)
	case key.Matches(msg, a.keys.Today):
		a.controller.Today()
		a.cursor = bs.FromTime(a.clock())
		a.setStatus(logbook.LevelInfo, "Today · "+a.describe(a.cursor))
	case key.Matches(msg, a.keys.Select):
		if !a.controller.Select(a.cursor) {
			a.setStatus(logbook.LevelWarn, "Calendar is busy, try again")
		}
	case key.Matches(msg, a.keys.NextFest):
		a.focusFestival(1)
	case key.Matches(msg, a.keys.PrevFest):
		a.focusFestival(-1)
	case key.Matches(msg, a.keys.Jump):
		a.mode = modeJump
		a.prompt.SetValue("")
		return a.prompt.Focus()
	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return nil
}

func (a *App) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.promptKeys.Cancel):
		a.closePrompt()
		return nil
	case key.Matches(msg, a.promptKeys.Submit):
		raw := a.prompt.Value()
		a.closePrompt()
		a.submitJump(raw)
		return nil
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return cmd
}

func (a *App) closePrompt() {
	a.mode = modeCalendar
	a.prompt.Blur()
}

// submitJump reads the prompt value as an AD date, or as a BS date when it
// carries a "bs:" prefix, and starts a jump.
func (a *App) submitJump(raw string) {
	value := strings.TrimSpace(raw)
	var (
		target bs.ADDate
		err    error
	)
	if rest, ok := cutPrefixFold(value, "bs:"); ok {
		var d bs.BSDate
		d, err = bs.ParseBS(strings.TrimSpace(rest))
		if err == nil {
			target, err = bs.ToAD(d)
		}
	} else {
		target, err = nav.ParseInput(value)
	}
	if err != nil {
		a.handleJumpError(err.Error())
		return
	}
	a.setStatus(logbook.LevelInfo, "Jumping to "+target.String()+"…")
	a.controller.JumpTo(target, a.handleJumpComplete, a.handleJumpError)
}

// shiftMonth changes month and keeps the cursor on the same day number
// where the new month has one.
func (a *App) shiftMonth(delta int) {
	if !a.turnMonth(delta) {
		a.setStatus(logbook.LevelWarn, "Calendar is busy, try again")
		return
	}
	first := a.cursor.AddMonths(delta)
	day := a.cursor.Day
	if last := bs.DaysInADMonth(first.Year, first.Month); day > last {
		day = last
	}
	a.cursor = bs.NewAD(first.Year, first.Month, day)
}

// moveCursor walks the cursor by delta days, turning the month when the
// cursor leaves the displayed one.
func (a *App) moveCursor(delta int) {
	target := a.cursor.AddDays(delta)
	displayed := a.controller.Snapshot().DisplayedMonthStart
	if target.SameMonth(displayed) {
		a.cursor = target
		return
	}
	step := 1
	if target.Before(displayed) {
		step = -1
	}
	if a.turnMonth(step) {
		a.cursor = target
	}
}

// focusFestival moves the cursor to the next festival day of the displayed
// month after the cursor (step > 0) or before it, wrapping at the ends, and
// selects that day.
func (a *App) focusFestival(step int) {
	days := a.controller.FestivalDays()
	if len(days) == 0 {
		a.setStatus(logbook.LevelInfo, "No festivals this month")
		return
	}
	target := *days[0].AD
	if step < 0 {
		target = *days[len(days)-1].AD
	}
	for i := range days {
		cell := days[i]
		if step < 0 {
			cell = days[len(days)-1-i]
		}
		if (step > 0 && a.cursor.Before(*cell.AD)) || (step < 0 && cell.AD.Before(a.cursor)) {
			target = *cell.AD
			break
		}
	}
	if !a.controller.Snapshot().IsSelected(target) && !a.controller.Select(target) {
		a.setStatus(logbook.LevelWarn, "Calendar is busy, try again")
		return
	}
	a.cursor = target
}

func (a *App) turnMonth(step int) bool {
	if step < 0 {
		return a.controller.PreviousMonth()
	}
	return a.controller.NextMonth()
}

func (a *App) syncCursor() {
	s := a.controller.Snapshot()
	if s.Transitioning || a.cursor.SameMonth(s.DisplayedMonthStart) {
		return
	}
	for _, candidate := range []*bs.ADDate{s.Highlighted, s.Selected} {
		if candidate != nil && candidate.SameMonth(s.DisplayedMonthStart) {
			a.cursor = *candidate
			return
		}
	}
	if today := bs.FromTime(a.clock()); today.SameMonth(s.DisplayedMonthStart) {
		a.cursor = today
		return
	}
	a.cursor = s.DisplayedMonthStart
}

func (a *App) toggleTheme() {
	next := config.ThemeLight
	if a.config.Theme() == config.ThemeLight {
		next = config.ThemeDark
	}
	if err := a.config.SetTheme(next); err != nil {
		a.setStatus(logbook.LevelError, fmt.Sprintf("Theme not saved: %v", err))
		return
	}
	a.styles = newStyles(next)
	a.setStatus(logbook.LevelInfo, "Theme · "+next)
}

func (a *App) handleSelect(dateKey string) {
	if dateKey == "" {
		a.setStatus(logbook.LevelInfo, "Selection cleared")
		return
	}
	d, err := bs.ParseAD(dateKey)
	if err != nil {
		return
	}
	a.setStatus(logbook.LevelInfo, "Selected "+a.describe(d))
}

func (a *App) handleJumpComplete() {
	s := a.controller.Snapshot()
	if s.Highlighted == nil {
		return
	}
	msg := "Jumped to " + a.describe(*s.Highlighted)
	a.setStatus(logbook.LevelInfo, msg)
	a.logbook.Info("%s", msg)
}

func (a *App) handleJumpError(message string) {
	a.setStatus(logbook.LevelWarn, message)
	a.logbook.Warn("Jump failed: %s", message)
}

func (a *App) handleClose() {
	a.closed = true
	a.logbook.Info("Calendar closed")
}

func (a *App) setStatus(level logbook.Level, msg string) {
	a.statusLvl = level
	a.statusMsg = msg
}

// describe renders "2024-04-13 · 2081 Baisakh 1 · Nepali New Year".
func (a *App) describe(d bs.ADDate) string {
	parts := []string{d.String()}
	if b, err := bs.ToBS(d); err == nil {
		parts = append(parts, b.Format())
		for _, rec := range a.registry.Lookup(b) {
			parts = append(parts, rec.Name)
		}
	}
	return strings.Join(parts, " · ")
}

// Controller exposes the navigation controller for callers embedding the
// calendar.
func (a *App) Controller() *nav.Controller {
	return a.controller
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
