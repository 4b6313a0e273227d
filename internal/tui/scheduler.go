package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// continuationMsg carries a deferred controller step back into Update so it
// runs on the program's event loop.
type continuationMsg struct {
	run func()
}

// tickScheduler turns controller continuations into tea.Tick commands. The
// controller queues work while Update runs; Update drains the queue into
// the command it returns. With immediate set, continuations run in place,
// which is how the plain-text output settles a jump without a program.
type tickScheduler struct {
	queued    []tea.Cmd
	immediate bool
}

func (s *tickScheduler) After(d time.Duration, fn func()) {
	if s.immediate {
		fn()
		return
	}
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return continuationMsg{run: fn}
	}))
}

func (s *tickScheduler) drain() tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return batch(cmds...)
}

// batch drops nil commands and avoids wrapping a single command.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			valid = append(valid, cmd)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
