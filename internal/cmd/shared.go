package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/heistboard/internal/config"
	apperrors "github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/tui"
	"github.com/Iron-Ham/heistboard/internal/tui/anim"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// logTarget says where a command's logs go.
type logTarget int

const (
	// logToFile is for commands that own the terminal.
	logToFile logTarget = iota
	// logToStderr is for commands whose stdout is the product.
	logToStderr
)

// newLogger builds the command's logger from cfg.
func newLogger(cfg *config.Config, target logTarget) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	level := logging.ParseLevel(cfg.Logging.Level)

	var logger *logging.Logger
	if target == logToStderr {
		logger = logging.NewWriterLogger(os.Stderr, level)
	} else {
		var err error
		logger, err = logging.NewLogger(cfg.Logging.LogDir(), level)
		if err != nil {
			return nil, err
		}
	}

	for _, err := range startupErrors {
		logger.Warn("startup problem", "error", err)
	}
	return logger, nil
}

// glyphsFor returns the icon set cfg selects.
func glyphsFor(cfg *config.Config) leaderboard.Glyphs {
	if cfg.TUI.ASCII {
		return leaderboard.ASCIIGlyphs
	}
	return leaderboard.EmojiGlyphs
}

// animOptions converts the animation section to board options.
func animOptions(cfg *config.Config) anim.Options {
	return anim.Options{
		FPS:           cfg.TUI.FPS,
		Row:           anim.Params{Stiffness: cfg.Animation.RowStiffness, Damping: cfg.Animation.RowDamping},
		Progress:      anim.Params{Stiffness: cfg.Animation.ProgressStiffness, Damping: cfg.Animation.ProgressDamping},
		SlideDistance: cfg.Animation.SlideDistance,
		Disabled:      !cfg.Animation.Enabled,
	}
}

// boardOptions builds the TUI options for a local board.
func boardOptions(cfg *config.Config, logger *logging.Logger) (tui.Options, error) {
	theme, err := styles.NewTheme(lipgloss.DefaultRenderer(), cfg.TUI.Theme)
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Theme:    theme,
		Glyphs:   glyphsFor(cfg),
		Anim:     animOptions(cfg),
		Width:    cfg.TUI.Width,
		HideHelp: !cfg.TUI.ShowHelp,
		Logger:   logger,
	}, nil
}

// resolveSource picks a feed from a command argument: "demo", "-" for
// stdin, a ws:// or wss:// URL, or a file path.
func resolveSource(arg string, cfg *config.Config, logger *logging.Logger) feed.Source {
	switch {
	case arg == "demo":
		return &feed.Demo{
			Teams:    cfg.Feed.DemoTeams,
			Interval: cfg.Feed.DemoInterval(),
			Seed:     cfg.Feed.DemoSeed,
		}
	case arg == "-":
		return &feed.Reader{R: os.Stdin, Logger: logger.WithSource("stdin")}
	case isWebSocketURL(arg):
		return &feed.WebSocket{
			URL:               arg,
			Token:             cfg.Feed.Token,
			ReconnectDelay:    cfg.Feed.ReconnectDelay(),
			MaxReconnectDelay: cfg.Feed.MaxReconnectDelay(),
			Logger:            logger.WithSource("websocket"),
		}
	default:
		return &feed.File{
			Path:     arg,
			Debounce: cfg.Feed.Debounce(),
			Logger:   logger.WithSource("file"),
		}
	}
}

// isWebSocketURL reports whether arg names a WebSocket feed.
func isWebSocketURL(arg string) bool {
	return strings.HasPrefix(arg, "ws://") || strings.HasPrefix(arg, "wss://")
}

// errUsage formats an error about how a command was invoked.
func errUsage(format string, args ...any) error {
	return apperrors.NewValidationError(fmt.Sprintf(format, args...))
}

// runBoard runs the local TUI on the feed named by arg until the user
// quits or ctx is done.
func runBoard(ctx context.Context, arg string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, logToFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	opts, err := boardOptions(cfg, logger)
	if err != nil {
		return err
	}

	src := resolveSource(arg, cfg, logger)
	logger.Info("board starting", "feed", src.Name(), "theme", cfg.TUI.Theme)

	app := tui.New(src, opts).WithAltScreen(cfg.TUI.AltScreen)
	if arg == "-" {
		// stdin carries snapshots, so keys come from the terminal.
		app = app.WithInputTTY()
	}
	return app.Run(ctx)
}
