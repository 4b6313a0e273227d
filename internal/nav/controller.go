// internal/nav/controller.go
//
// The controller owns which month is on screen and which day is selected or
// highlighted. It has two phases:
//
//  1. Idle: every command is accepted.
//  2. Transitioning: a month change is animating. Every command except
//     Today is rejected until the pending continuation finishes. Today
//     cancels the transition outright.
//
// All state changes happen on the caller's thread or inside continuations
// the Scheduler runs on that same thread, so the controller takes no locks.

package nav

import (
	"time"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/grid"
)

const (
	// DefaultMonthDelay is the fade window for previous/next month.
	DefaultMonthDelay = 160 * time.Millisecond
	// DefaultJumpDelay is the wait before a jump swaps the month.
	DefaultJumpDelay = 160 * time.Millisecond
	// DefaultSettleDelay is the wait after a jump before it reports done.
	DefaultSettleDelay = 200 * time.Millisecond
)

// Phase names the controller's two states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
)

func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// State is a snapshot of what the calendar shows. Pointer fields are nil
// when unset; the values they point at are never modified after a snapshot
// is taken.
type State struct {
	DisplayedMonthStart bs.ADDate
	Selected            *bs.ADDate
	Highlighted         *bs.ADDate
	Transitioning       bool
}

// Phase reports the state machine phase.
func (s State) Phase() Phase {
	if s.Transitioning {
		return PhaseTransitioning
	}
	return PhaseIdle
}

// IsSelected reports whether d is the selected date.
func (s State) IsSelected(d bs.ADDate) bool {
	return s.Selected != nil && *s.Selected == d
}

// IsHighlighted reports whether d is the highlighted date.
func (s State) IsHighlighted(d bs.ADDate) bool {
	return s.Highlighted != nil && *s.Highlighted == d
}

// Callbacks are the collaborators notified by the controller. Any may be nil.
type Callbacks struct {
	// OnSelect receives the selected day as YYYY-MM-DD, or "" on deselect.
	OnSelect func(dateKey string)
	// OnJumpComplete and OnJumpError serve jumps requested through
	// SetJumpInput.
	OnJumpComplete func()
	OnJumpError    func(message string)
	OnClose        func()
	// OnChange observes every state change.
	OnChange func(State)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithScheduler overrides the scheduler that runs transition continuations.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithClock overrides the clock used for the initial month and Today.
func WithClock(clock bs.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDelays overrides the transition windows. Negative values are ignored.
func WithDelays(month, jump, settle time.Duration) Option {
	return func(c *Controller) {
		if month >= 0 {
			c.monthDelay = month
		}
		if jump >= 0 {
			c.jumpDelay = jump
		}
		if settle >= 0 {
			c.settleDelay = settle
		}
	}
}

// WithCallbacks wires the external collaborators.
func WithCallbacks(cb Callbacks) Option {
	return func(c *Controller) {
		c.callbacks = cb
	}
}

// WithInitialMonth shows the month containing d instead of the current one.
func WithInitialMonth(d bs.ADDate) Option {
	return func(c *Controller) {
		first := d.FirstOfMonth()
		c.initialMonth = &first
	}
}

// Controller drives calendar navigation.
type Controller struct {
	builder   *grid.Builder
	scheduler Scheduler
	clock     bs.Clock
	callbacks Callbacks

	monthDelay  time.Duration
	jumpDelay   time.Duration
	settleDelay time.Duration

	initialMonth *bs.ADDate
	state        State
	// generation increments whenever a transition starts or is cancelled;
	// continuations from an older generation do nothing.
	generation uint64
	lastJump   string
}

// New builds a controller showing the current month, or the month given
// through WithInitialMonth.
func New(builder *grid.Builder, opts ...Option) *Controller {
	c := &Controller{
		builder:     builder,
		scheduler:   ImmediateScheduler,
		clock:       time.Now,
		monthDelay:  DefaultMonthDelay,
		jumpDelay:   DefaultJumpDelay,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.builder == nil {
		c.builder = grid.NewBuilder(nil)
	}
	if c.initialMonth != nil {
		c.state.DisplayedMonthStart = *c.initialMonth
	} else {
		c.state.DisplayedMonthStart = c.today().FirstOfMonth()
	}
	return c
}

// Snapshot returns the current state by value.
func (c *Controller) Snapshot() State {
	return c.state
}

// Grid builds the 42-cell grid for the displayed month.
func (c *Controller) Grid() grid.Grid {
	return c.builder.Build(c.state.DisplayedMonthStart)
}

// FestivalDays lists the displayed month's festival days.
func (c *Controller) FestivalDays() []grid.Cell {
	return grid.MonthFestivalDays(c.Grid())
}

// PreviousMonth starts a transition to the previous month. It returns false
// when a transition is already running.
func (c *Controller) PreviousMonth() bool {
	return c.shiftMonth(-1)
}

// NextMonth starts a transition to the next month. It returns false when a
// transition is already running.
func (c *Controller) NextMonth() bool {
	return c.shiftMonth(1)
}

func (c *Controller) shiftMonth(delta int) bool {
	if c.state.Transitioning {
		return false
	}
	gen := c.beginTransition()
	c.scheduler.After(c.monthDelay, func() {
		if gen != c.generation {
			return
		}
		next := c.state
		next.DisplayedMonthStart = next.DisplayedMonthStart.AddMonths(delta)
		next.Highlighted = nil
		next.Transitioning = false
		c.set(next)
	})
	return true
}

// Today shows the current month and selects today's date. It is accepted in
// every phase; a running transition is cancelled and never completes.
func (c *Controller) Today() {
	now := c.today()
	c.generation++
	c.set(State{
		DisplayedMonthStart: now.FirstOfMonth(),
		Selected:            &now,
	})
}

// Select toggles the selection of date: selecting the selected date clears
// it. Any programmatic highlight is dropped. It returns false, changing
// nothing, while a transition is running.
func (c *Controller) Select(date bs.ADDate) bool {
	if c.state.Transitioning {
		return false
	}
	next := c.state
	next.Highlighted = nil
	key := ""
	if next.IsSelected(date) {
		next.Selected = nil
	} else {
		d := date
		next.Selected = &d
		key = date.String()
	}
	c.set(next)
	if c.callbacks.OnSelect != nil {
		c.callbacks.OnSelect(key)
	}
	return true
}

// JumpTo navigates to date's month and highlights and selects it, then
// reports completion through onComplete once the transition settles.
//
// Dates the converter cannot handle are reported through onError before
// JumpTo returns, leaving the state untouched. So is a jump requested while
// another transition is running (ErrBusy).
func (c *Controller) JumpTo(date bs.ADDate, onComplete func(), onError func(message string)) bool {
	if _, err := bs.ToBS(date); err != nil {
		report(onError, err)
		return false
	}
	if c.state.Transitioning {
		report(onError, ErrBusy)
		return false
	}
	gen := c.beginTransition()
	c.scheduler.After(c.jumpDelay, func() {
		if gen != c.generation {
			return
		}
		highlighted, selected := date, date
		next := c.state
		next.DisplayedMonthStart = date.FirstOfMonth()
		next.Highlighted = &highlighted
		next.Selected = &selected
		c.set(next)
		c.scheduler.After(c.settleDelay, func() {
			if gen != c.generation {
				return
			}
			done := c.state
			done.Transitioning = false
			c.set(done)
			if onComplete != nil {
				onComplete()
			}
		})
	})
	return true
}

// SetSelectedInput applies an externally controlled selection. Values that
// do not parse clear the selection. Like Select, it is ignored mid-transition.
func (c *Controller) SetSelectedInput(raw string) bool {
	if c.state.Transitioning {
		return false
	}
	next := c.state
	if date, err := ParseInput(raw); err == nil {
		next.Selected = &date
	} else {
		next.Selected = nil
	}
	c.set(next)
	return true
}

// SetJumpInput starts a jump when the externally supplied target changes.
// Unparseable targets go to OnJumpError; repeating the previous value does
// nothing. A target turned away because a transition is running is not
// remembered, so sending it again once the controller is idle jumps.
func (c *Controller) SetJumpInput(raw string) bool {
	if raw == c.lastJump {
		return false
	}
	if raw == "" {
		c.lastJump = raw
		return false
	}
	date, err := ParseInput(raw)
	if err != nil {
		c.lastJump = raw
		report(c.callbacks.OnJumpError, err)
		return false
	}
	if c.state.Transitioning {
		report(c.callbacks.OnJumpError, ErrBusy)
		return false
	}
	c.lastJump = raw
	return c.JumpTo(date, c.callbacks.OnJumpComplete, c.callbacks.OnJumpError)
}

// Close hands control back to whoever opened the calendar.
func (c *Controller) Close() {
	if c.callbacks.OnClose != nil {
		c.callbacks.OnClose()
	}
}

func (c *Controller) beginTransition() uint64 {
	c.generation++
	next := c.state
	next.Transitioning = true
	c.set(next)
	return c.generation
}

func (c *Controller) set(next State) {
	c.state = next
	if c.callbacks.OnChange != nil {
		c.callbacks.OnChange(next)
	}
}

func (c *Controller) today() bs.ADDate {
	return bs.FromTime(c.clock())
}

func report(onError func(string), err error) {
	if onError != nil {
		onError(err.Error())
	}
}
