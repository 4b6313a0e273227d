// cmd/patro/main.go
//
// Entry point for the patro calendar. Run it from any directory; settings
// and the activity log live under .patro/ in that directory.
//
// When stdout is not a terminal the current month is printed as plain text
// instead of starting the interactive calendar.

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/kingrea/patro/internal/config"
	"github.com/kingrea/patro/internal/tui"
)

func main() {
	date := flag.String("date", "", "start on this AD date (YYYY-MM-DD) and select it")
	jump := flag.String("jump", "", "jump to this AD date once the calendar opens")
	dir := flag.String("config-dir", "", "directory holding .patro/ (default: current directory)")
	flag.Parse()

	projectDir := *dir
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		projectDir = cwd
	}

	if err := config.InitDir(projectDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .patro directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(projectDir, tui.WithSelectedDate(*date), tui.WithJumpTarget(*jump))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting calendar: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := app.WritePlainMonth(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing calendar: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
