package cmd

import (
	"errors"
	"io/fs"
	"strings"

	configcmd "github.com/Iron-Ham/heistboard/internal/cmd/config"
	"github.com/Iron-Ham/heistboard/internal/config"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "heistboard",
	Short: "Live heist leaderboard for the terminal",
	Long: `Heistboard shows a heist game's team standings as an animated
leaderboard. Snapshots come from a JSON file, stdin, a game server's
WebSocket, or the built-in simulation, and can be shared with spectators
over SSH.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// startupErrors holds startup problems (a bad .env or custom theme
// file) that commands report once their logger exists.
var startupErrors []error

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/heistboard/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading HEISTBOARD_* variables")
	rootCmd.PersistentFlags().String("theme", "", "color theme (heist, vault, noir, or a custom theme)")
	rootCmd.PersistentFlags().Bool("ascii", false, "draw text badges instead of emoji")
	rootCmd.PersistentFlags().Int("width", 0, "board width in columns (0 follows the terminal)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
	_ = viper.BindPFlag("tui.theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("tui.ascii", rootCmd.PersistentFlags().Lookup("ascii"))
	_ = viper.BindPFlag("tui.width", rootCmd.PersistentFlags().Lookup("width"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// A missing .env is normal; anything else is worth surfacing later.
	if envFile := viper.GetString("env_file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			startupErrors = append(startupErrors, err)
		}
	}

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HEISTBOARD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., HEISTBOARD_FEED_TOKEN for feed.token
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()

	// Custom themes must be registered before the config is validated.
	_, errs := styles.DiscoverCustomThemes(config.ThemesDir())
	startupErrors = append(startupErrors, errs...)
}
