package tui

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/heistboard/internal/feed"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program   *tea.Program
	source    feed.Source
	opts      Options
	altScreen bool
	output    io.Writer
	input     io.Reader
	inputTTY  bool
}

// New creates a new TUI application showing the snapshots src produces.
// A nil source shows the empty board.
func New(src feed.Source, opts Options) *App {
	return &App{source: src, opts: opts, altScreen: true}
}

// WithAltScreen sets whether the board takes over the whole terminal.
func (a *App) WithAltScreen(on bool) *App {
	a.altScreen = on
	return a
}

// WithOutput sends the program's output to w instead of stdout.
func (a *App) WithOutput(w io.Writer) *App {
	a.output = w
	return a
}

// WithInput reads keys from r instead of stdin.
func (a *App) WithInput(r io.Reader) *App {
	a.input = r
	return a
}

// WithInputTTY reads keys from the controlling terminal. Use it when
// stdin carries the snapshots.
func (a *App) WithInputTTY() *App {
	a.inputTTY = true
	return a
}

// Run starts the feed and the TUI and blocks until the user quits, a
// signal arrives, or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := a.opts
	if a.source != nil {
		opts.Updates = feed.Pump(ctx, a.source, opts.Logger)
		if opts.Source == "" {
			opts.Source = a.source.Name()
		}
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	switch {
	case a.input != nil:
		programOpts = append(programOpts, tea.WithInput(a.input))
	case a.inputTTY:
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	if a.output != nil {
		programOpts = append(programOpts, tea.WithOutput(a.output))
	}
	a.program = tea.NewProgram(NewModel(opts), programOpts...)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-ctx.Done():
		}
	}()

	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)

	if err != nil && ctx.Err() != nil {
		// Cancelled from outside; not a failure of the board.
		return nil
	}
	return err
}
