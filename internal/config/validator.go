package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/heistboard/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "feed.reconnect_delay_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Value limits. minBoardWidth must match view.MinWidth (defined separately
// to keep config free of the rendering packages).
const (
	minBoardWidth   = 40
	maxFPS          = 240
	maxSlide        = 40
	maxDebounceMs   = 5000
	maxDemoTeams    = 50
	minDemoInterval = 50
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate TUI config
	errors = append(errors, c.validateTUI()...)

	// Validate Animation config
	errors = append(errors, c.validateAnimation()...)

	// Validate Feed config
	errors = append(errors, c.validateFeed()...)

	// Validate Serve config
	errors = append(errors, c.validateServe()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// Custom themes must be registered before validation runs.
	if c.TUI.Theme != "" && !styles.IsValidTheme(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.ValidThemes(), ", ")),
		})
	}

	// Width 0 follows the terminal.
	if c.TUI.Width < 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.width",
			Value:   c.TUI.Width,
			Message: "must be non-negative",
		})
	} else if c.TUI.Width != 0 && c.TUI.Width < minBoardWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.width",
			Value:   c.TUI.Width,
			Message: fmt.Sprintf("must be at least %d columns", minBoardWidth),
		})
	}

	if c.TUI.FPS < 1 || c.TUI.FPS > maxFPS {
		errors = append(errors, ValidationError{
			Field:   "tui.fps",
			Value:   c.TUI.FPS,
			Message: fmt.Sprintf("must be between 1 and %d", maxFPS),
		})
	}

	return errors
}

// validateAnimation validates the AnimationConfig
func (c *Config) validateAnimation() []ValidationError {
	var errors []ValidationError

	springs := []struct {
		field string
		value float64
		zero  bool
	}{
		{"animation.row_stiffness", c.Animation.RowStiffness, false},
		{"animation.row_damping", c.Animation.RowDamping, true},
		{"animation.progress_stiffness", c.Animation.ProgressStiffness, false},
		{"animation.progress_damping", c.Animation.ProgressDamping, true},
	}
	for _, s := range springs {
		switch {
		case s.zero && s.value < 0:
			errors = append(errors, ValidationError{
				Field:   s.field,
				Value:   s.value,
				Message: "must be non-negative",
			})
		case !s.zero && s.value <= 0:
			errors = append(errors, ValidationError{
				Field:   s.field,
				Value:   s.value,
				Message: "must be positive",
			})
		}
	}

	if c.Animation.SlideDistance < 0 || c.Animation.SlideDistance > maxSlide {
		errors = append(errors, ValidationError{
			Field:   "animation.slide_distance",
			Value:   c.Animation.SlideDistance,
			Message: fmt.Sprintf("must be between 0 and %d", maxSlide),
		})
	}

	return errors
}

// validateFeed validates the FeedConfig
func (c *Config) validateFeed() []ValidationError {
	var errors []ValidationError

	if c.Feed.ReconnectDelayMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "feed.reconnect_delay_ms",
			Value:   c.Feed.ReconnectDelayMs,
			Message: "must be positive (set feed.reconnect to false to disable)",
		})
	}

	if c.Feed.MaxReconnectDelayMs < c.Feed.ReconnectDelayMs {
		errors = append(errors, ValidationError{
			Field:   "feed.max_reconnect_delay_ms",
			Value:   c.Feed.MaxReconnectDelayMs,
			Message: fmt.Sprintf("must be at least feed.reconnect_delay_ms (%d)", c.Feed.ReconnectDelayMs),
		})
	}

	if c.Feed.DebounceMs < 0 || c.Feed.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "feed.debounce_ms",
			Value:   c.Feed.DebounceMs,
			Message: fmt.Sprintf("must be between 0 and %d", maxDebounceMs),
		})
	}

	if c.Feed.DemoTeams < 1 || c.Feed.DemoTeams > maxDemoTeams {
		errors = append(errors, ValidationError{
			Field:   "feed.demo_teams",
			Value:   c.Feed.DemoTeams,
			Message: fmt.Sprintf("must be between 1 and %d", maxDemoTeams),
		})
	}

	if c.Feed.DemoIntervalMs < minDemoInterval {
		errors = append(errors, ValidationError{
			Field:   "feed.demo_interval_ms",
			Value:   c.Feed.DemoIntervalMs,
			Message: fmt.Sprintf("must be at least %d", minDemoInterval),
		})
	}

	return errors
}

// validateServe validates the ServeConfig
func (c *Config) validateServe() []ValidationError {
	var errors []ValidationError

	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "serve.port",
			Value:   c.Serve.Port,
			Message: "must be between 1 and 65535",
		})
	}

	if strings.TrimSpace(c.Serve.HostKeyPath) == "" {
		errors = append(errors, ValidationError{
			Field:   "serve.host_key_path",
			Value:   c.Serve.HostKeyPath,
			Message: "must not be empty",
		})
	}

	if c.Serve.IdleTimeoutMinutes < 0 {
		errors = append(errors, ValidationError{
			Field:   "serve.idle_timeout_minutes",
			Value:   c.Serve.IdleTimeoutMinutes,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
