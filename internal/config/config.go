package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete heistboard configuration
type Config struct {
	TUI       TUIConfig       `mapstructure:"tui"`
	Animation AnimationConfig `mapstructure:"animation"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Serve     ServeConfig     `mapstructure:"serve"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme (default: "heist")
	// Options: "heist", "vault", "noir", or a custom theme name
	Theme string `mapstructure:"theme"`
	// ASCII replaces emoji badges and runners with plain text
	ASCII bool `mapstructure:"ascii"`
	// Width fixes the board width in columns (0 = follow the terminal, min: 40)
	Width int `mapstructure:"width"`
	// AltScreen runs the board in the terminal's alternate screen (default: true)
	AltScreen bool `mapstructure:"alt_screen"`
	// FPS is the animation frame rate (default: 60)
	FPS int `mapstructure:"fps"`
	// ShowHelp shows the key help line under the board (default: true)
	ShowHelp bool `mapstructure:"show_help"`
}

// AnimationConfig controls row and progress motion
type AnimationConfig struct {
	// Enabled turns spring animation on (default: true). When false every
	// change lands immediately.
	Enabled bool `mapstructure:"enabled"`
	// RowStiffness and RowDamping drive row entry, exit and reordering
	RowStiffness float64 `mapstructure:"row_stiffness"`
	RowDamping   float64 `mapstructure:"row_damping"`
	// ProgressStiffness and ProgressDamping drive the fill and the runner
	ProgressStiffness float64 `mapstructure:"progress_stiffness"`
	ProgressDamping   float64 `mapstructure:"progress_damping"`
	// SlideDistance is how far rows slide on entry and exit, in columns
	SlideDistance float64 `mapstructure:"slide_distance"`
}

// FeedConfig controls how snapshots are received
type FeedConfig struct {
	// Reconnect redials a dropped WebSocket (default: true)
	Reconnect bool `mapstructure:"reconnect"`
	// ReconnectDelayMs is the first redial delay; it doubles on each failure
	ReconnectDelayMs int `mapstructure:"reconnect_delay_ms"`
	// MaxReconnectDelayMs caps the redial delay
	MaxReconnectDelayMs int `mapstructure:"max_reconnect_delay_ms"`
	// Token is sent as a bearer token when dialing a WebSocket feed
	Token string `mapstructure:"token"`
	// DebounceMs coalesces bursts of file change events (default: 50)
	DebounceMs int `mapstructure:"debounce_ms"`
	// DemoTeams is the number of simulated teams (default: 6)
	DemoTeams int `mapstructure:"demo_teams"`
	// DemoIntervalMs is the simulated heist's update interval (default: 1000)
	DemoIntervalMs int `mapstructure:"demo_interval_ms"`
	// DemoSeed makes the simulation repeatable (0 = random)
	DemoSeed uint64 `mapstructure:"demo_seed"`
}

// ServeConfig controls the SSH spectator server
type ServeConfig struct {
	// Host is the listen address (default: "localhost")
	Host string `mapstructure:"host"`
	// Port is the listen port (default: 23234)
	Port int `mapstructure:"port"`
	// HostKeyPath is the server's private key, created if missing
	HostKeyPath string `mapstructure:"host_key_path"`
	// IdleTimeoutMinutes disconnects idle spectators (0 = disabled)
	IdleTimeoutMinutes int `mapstructure:"idle_timeout_minutes"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where heistboard.log is written (default: <config dir>/logs)
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		TUI: TUIConfig{
			Theme:     "heist",
			ASCII:     false,
			Width:     0,
			AltScreen: true,
			FPS:       60,
			ShowHelp:  true,
		},
		Animation: AnimationConfig{
			Enabled:           true,
			RowStiffness:      300,
			RowDamping:        30,
			ProgressStiffness: 50,
			ProgressDamping:   15,
			SlideDistance:     6,
		},
		Feed: FeedConfig{
			Reconnect:           true,
			ReconnectDelayMs:    1000,
			MaxReconnectDelayMs: 30000,
			DebounceMs:          50,
			DemoTeams:           6,
			DemoIntervalMs:      1000,
		},
		Serve: ServeConfig{
			Host:        "localhost",
			Port:        23234,
			HostKeyPath: filepath.Join(ConfigDir(), "ssh", "heistboard_ed25519"),
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// ReconnectDelay returns the first redial delay, or a negative duration
// when reconnecting is off.
func (c *FeedConfig) ReconnectDelay() time.Duration {
	if !c.Reconnect {
		return -1
	}
	return time.Duration(c.ReconnectDelayMs) * time.Millisecond
}

// MaxReconnectDelay returns the redial delay cap.
func (c *FeedConfig) MaxReconnectDelay() time.Duration {
	return time.Duration(c.MaxReconnectDelayMs) * time.Millisecond
}

// Debounce returns the file change debounce.
func (c *FeedConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// DemoInterval returns the simulated heist's update interval.
func (c *FeedConfig) DemoInterval() time.Duration {
	return time.Duration(c.DemoIntervalMs) * time.Millisecond
}

// IdleTimeout returns the spectator idle timeout.
func (c *ServeConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// LogDir returns the configured log directory, or <config dir>/logs.
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.ascii", defaults.TUI.ASCII)
	viper.SetDefault("tui.width", defaults.TUI.Width)
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.fps", defaults.TUI.FPS)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)

	// Animation defaults
	viper.SetDefault("animation.enabled", defaults.Animation.Enabled)
	viper.SetDefault("animation.row_stiffness", defaults.Animation.RowStiffness)
	viper.SetDefault("animation.row_damping", defaults.Animation.RowDamping)
	viper.SetDefault("animation.progress_stiffness", defaults.Animation.ProgressStiffness)
	viper.SetDefault("animation.progress_damping", defaults.Animation.ProgressDamping)
	viper.SetDefault("animation.slide_distance", defaults.Animation.SlideDistance)

	// Feed defaults
	viper.SetDefault("feed.reconnect", defaults.Feed.Reconnect)
	viper.SetDefault("feed.reconnect_delay_ms", defaults.Feed.ReconnectDelayMs)
	viper.SetDefault("feed.max_reconnect_delay_ms", defaults.Feed.MaxReconnectDelayMs)
	viper.SetDefault("feed.token", defaults.Feed.Token)
	viper.SetDefault("feed.debounce_ms", defaults.Feed.DebounceMs)
	viper.SetDefault("feed.demo_teams", defaults.Feed.DemoTeams)
	viper.SetDefault("feed.demo_interval_ms", defaults.Feed.DemoIntervalMs)
	viper.SetDefault("feed.demo_seed", defaults.Feed.DemoSeed)

	// Serve defaults
	viper.SetDefault("serve.host", defaults.Serve.Host)
	viper.SetDefault("serve.port", defaults.Serve.Port)
	viper.SetDefault("serve.host_key_path", defaults.Serve.HostKeyPath)
	viper.SetDefault("serve.idle_timeout_minutes", defaults.Serve.IdleTimeoutMinutes)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "heistboard")
	}
	// Fall back to ~/.config/heistboard
	home, err := os.UserHomeDir()
	if err != nil {
		return ".heistboard"
	}
	return filepath.Join(home, ".config", "heistboard")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir returns the directory custom theme files are discovered in
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}
