package cmd

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file|->",
	Short: "Show the board for a snapshot file or stdin",
	Long: `Show the leaderboard for a JSON snapshot file, redrawing whenever the
file changes. With "-", newline-delimited snapshots are read from stdin
and keys are read from the terminal.

A snapshot is an array of entries, an object with an "entries" array, or
an envelope {"type":"leaderboard","data":...}.`,
	Example: `  heistboard watch ./standings.json
  game-server --emit-standings | heistboard watch -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd.Context(), args[0])
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <ws-url>",
	Short: "Show the board for a game server's WebSocket feed",
	Long: `Connect to a game server's WebSocket and show each snapshot it sends.
Dropped connections are redialed with a doubling delay unless
feed.reconnect is false. feed.token is sent as a bearer token.`,
	Example: `  heistboard follow ws://localhost:8080/leaderboard
  HEISTBOARD_FEED_TOKEN=abc heistboard follow wss://heist.example.com/ws`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the board for a simulated heist",
	Long: `Run a simulated heist: teams push through the entrance, signal
jammer, vault, getaway and exit, and finish in order. A new heist starts
a few seconds after the last team escapes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd.Context(), "demo")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(demoCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	if !isWebSocketURL(args[0]) {
		return errUsage("follow needs a ws:// or wss:// URL, got %q", args[0])
	}
	return runBoard(cmd.Context(), args[0])
}
