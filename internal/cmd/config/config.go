// Package config provides CLI commands for managing heistboard configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	appconfig "github.com/Iron-Ham/heistboard/internal/config"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify heistboard configuration",
	Long: `View or modify heistboard configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  heistboard config set tui.theme vault
  heistboard config set animation.enabled false
  heistboard config set serve.port 2222

Run 'heistboard config show' to see every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/heistboard/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind is how a settable key's value is parsed and checked.
type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
	kindTheme
	kindLevel
)

// settableKeys lists every key 'config set' accepts.
var settableKeys = map[string]keyKind{
	"tui.theme":                    kindTheme,
	"tui.ascii":                    kindBool,
	"tui.width":                    kindInt,
	"tui.alt_screen":               kindBool,
	"tui.fps":                      kindInt,
	"tui.show_help":                kindBool,
	"animation.enabled":            kindBool,
	"animation.row_stiffness":      kindFloat,
	"animation.row_damping":        kindFloat,
	"animation.progress_stiffness": kindFloat,
	"animation.progress_damping":   kindFloat,
	"animation.slide_distance":     kindFloat,
	"feed.reconnect":               kindBool,
	"feed.reconnect_delay_ms":      kindInt,
	"feed.max_reconnect_delay_ms":  kindInt,
	"feed.token":                   kindString,
	"feed.debounce_ms":             kindInt,
	"feed.demo_teams":              kindInt,
	"feed.demo_interval_ms":        kindInt,
	"feed.demo_seed":               kindInt,
	"serve.host":                   kindString,
	"serve.port":                   kindInt,
	"serve.host_key_path":          kindString,
	"serve.idle_timeout_minutes":   kindInt,
	"logging.enabled":              kindBool,
	"logging.level":                kindLevel,
	"logging.dir":                  kindString,
}

// shownSections are the top-level viper keys that belong to the config
// file. Flag-only keys such as "config" are left out.
var shownSections = []string{"tui", "animation", "feed", "serve", "logging"}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Config file: %s\n\n", used)
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n\n")
	}

	settings := viper.AllSettings()
	shown := make(map[string]any, len(shownSections))
	for _, section := range shownSections {
		if v, ok := settings[section]; ok {
			shown[section] = v
		}
	}
	if feed, ok := shown["feed"].(map[string]any); ok {
		if tok, _ := feed["token"].(string); tok != "" {
			feed["token"] = "********"
		}
	}

	data, err := yaml.Marshal(shown)
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// parseValue converts value for key, rejecting values the key can't hold.
func parseValue(key, value string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'heistboard config show' to see valid keys", key)
	}

	switch kind {
	case kindTheme:
		if !styles.IsValidTheme(value) {
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s",
				value, strings.Join(styles.ValidThemes(), ", "))
		}
		return value, nil
	case kindLevel:
		level := strings.ToLower(value)
		for _, valid := range appconfig.ValidLogLevels() {
			if level == valid {
				return level, nil
			}
		}
		return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
			key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected a number", key)
		}
		if f < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return f, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	// The whole config must still be valid after the change
	if _, err := appconfig.Load(); err != nil {
		return err
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigFile is written by 'config init'.
const defaultConfigFile = `# heistboard configuration

# Terminal board
tui:
  # Color theme: heist, vault, noir, or a custom theme name
  theme: heist
  # Text badges instead of emoji, for terminals without emoji fonts
  ascii: false
  # Fixed board width in columns (0 follows the terminal)
  width: 0
  # Run in the alternate screen
  alt_screen: true
  # Animation frame rate
  fps: 60
  # Show the key help line under the board
  show_help: true

# Spring motion
animation:
  enabled: true
  # Row entry, exit and reordering
  row_stiffness: 300
  row_damping: 30
  # Progress fill and runner
  progress_stiffness: 50
  progress_damping: 15
  # How far rows slide in and out, in columns
  slide_distance: 6

# Snapshot feeds
feed:
  # Redial a dropped WebSocket, doubling the delay up to the maximum
  reconnect: true
  reconnect_delay_ms: 1000
  max_reconnect_delay_ms: 30000
  # Bearer token for WebSocket feeds (or set HEISTBOARD_FEED_TOKEN)
  token: ""
  # Coalesce bursts of file writes
  debounce_ms: 50
  # Simulated heist used by 'heistboard demo'
  demo_teams: 6
  demo_interval_ms: 1000
  # Non-zero makes the simulation repeatable
  demo_seed: 0

# SSH spectator server ('heistboard serve')
serve:
  host: localhost
  port: 23234
  # Generated on first start when missing
  # (default: <config dir>/ssh/heistboard_ed25519)
  # host_key_path: /path/to/key
  # Disconnect idle spectators after this many minutes (0 = never)
  idle_timeout_minutes: 0

# Debug logging
logging:
  enabled: true
  # debug, info, warn, or error
  level: info
  # Defaults to <config dir>/logs
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'heistboard config set' to modify values", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize heistboard.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: HEISTBOARD_* (e.g., HEISTBOARD_FEED_TOKEN)")
	fmt.Fprintf(out, "Log file: %s\n", filepath.Join(appconfig.Get().Logging.LogDir(), logging.FileName))
	return nil
}
