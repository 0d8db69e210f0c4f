package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/heistboard/internal/config"
	apperrors "github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/Iron-Ham/heistboard/internal/tui/view"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Print the board for one snapshot and exit",
	Long: `Render a snapshot once, at rest, and print it. With "-" the snapshot is
read from stdin; for newline-delimited input the last snapshot wins.

Colors follow the output: piping to a file drops them. --plain strips
them regardless.`,
	Example: `  heistboard render standings.json
  curl -s https://heist.example.com/standings | heistboard render - --width 100`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderPlain bool

func init() {
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "strip colors and styling from the output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, logToStderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	data, err := readSnapshot(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	entries, err := lastSnapshot(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := outputWidth(cfg.TUI.Width, out)
	theme, err := styles.NewTheme(lipgloss.NewRenderer(out), cfg.TUI.Theme)
	if err != nil {
		return err
	}

	board := view.NewLeaderboardView(width, theme, glyphsFor(cfg)).Render(entries)
	if renderPlain {
		board = ansi.Strip(board)
	}
	logger.Debug("rendered snapshot", "entries", len(entries), "width", width)

	_, err = fmt.Fprintln(out, board)
	return err
}

// readSnapshot reads the named file, or stdin for "-".
func readSnapshot(stdin io.Reader, name string) ([]byte, error) {
	var r io.Reader
	if name == "-" {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, apperrors.Wrapf(err, "opening snapshot")
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, feed.MaxSnapshotSize+1))
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading snapshot %s", name)
	}
	if len(data) > feed.MaxSnapshotSize {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("snapshot larger than %d bytes", feed.MaxSnapshotSize), nil, nil)
	}
	return data, nil
}

// lastSnapshot decodes data as one snapshot, falling back to the last
// line that decodes when data holds newline-delimited snapshots.
func lastSnapshot(data []byte) ([]leaderboard.Entry, error) {
	entries, err := leaderboard.Decode(data)
	if err == nil {
		return entries, nil
	}
	if apperrors.Is(err, leaderboard.ErrNotLeaderboard) {
		return nil, apperrors.NewDecodeError("payload is not a leaderboard snapshot", data, err)
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) < 2 {
		return nil, err
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if len(bytes.TrimSpace(lines[i])) == 0 {
			continue
		}
		if entries, lineErr := leaderboard.Decode(lines[i]); lineErr == nil {
			return entries, nil
		}
	}
	return nil, err
}

// outputWidth is the fixed width when set, else the terminal's width when
// w is one, else view.DefaultWidth.
func outputWidth(fixed int, w io.Writer) int {
	if fixed > 0 {
		return fixed
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return view.DefaultWidth
}
