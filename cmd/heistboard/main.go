// Command heistboard shows a live heist leaderboard in the terminal.
package main

import (
	"os"

	"github.com/Iron-Ham/heistboard/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
