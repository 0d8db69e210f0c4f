package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Iron-Ham/heistboard/internal/config"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the board's debug log",
	Long: `View and filter heistboard's debug log.

Examples:
  # Show the last 50 lines
  heistboard logs

  # Follow the log while a board runs in another terminal
  heistboard logs -f

  # Only warnings and errors from the WebSocket feed
  heistboard logs --level warn --grep websocket

  # Show logs from the last hour
  heistboard logs --since 1h`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsGrep   string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of lines to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
}

// logEntry is one parsed JSON log line
type logEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Source    string         `json:"source,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Extra     map[string]any `json:"-"`
}

// UnmarshalJSON keeps fields other than the known ones in Extra
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type alias logEntry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "source", "session_id"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter selects which entries are shown
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
}

func newLogFilter(level, since, grep string, now time.Time) (logFilter, error) {
	f := logFilter{minLevel: -1}
	if level != "" {
		f.minLevel = levelPriority(logging.ParseLevel(level))
	}
	if since != "" {
		d, err := time.ParseDuration(since)
		if err != nil {
			return f, fmt.Errorf("invalid duration format: %w", err)
		}
		f.since = now.Add(-d)
	}
	if grep != "" {
		re, err := regexp.Compile(grep)
		if err != nil {
			return f, fmt.Errorf("invalid grep pattern: %w", err)
		}
		f.grep = re
	}
	return f, nil
}

// passes checks an entry against every filter
func (f logFilter) passes(e *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(e.Level) < f.minLevel {
		return false
	}
	if !f.since.IsZero() && e.Time.Before(f.since) {
		return false
	}
	if f.grep != nil {
		text := e.Msg + " " + e.Source
		for _, v := range e.Extra {
			text += " " + fmt.Sprint(v)
		}
		if !f.grep.MatchString(text) {
			return false
		}
	}
	return true
}

// levelPriority orders log levels for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// logPrinter formats entries for one output
type logPrinter struct {
	out    io.Writer
	dim    lipgloss.Style
	field  lipgloss.Style
	levels map[string]lipgloss.Style
}

func newLogPrinter(out io.Writer) *logPrinter {
	r := lipgloss.NewRenderer(out)
	return &logPrinter{
		out:   out,
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
		field: r.NewStyle().Foreground(lipgloss.Color("6")),
		levels: map[string]lipgloss.Style{
			logging.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("8")),
			logging.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("4")),
			logging.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			logging.LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func (p *logPrinter) format(e *logEntry) string {
	var sb strings.Builder
	sb.WriteString(p.dim.Render("[" + e.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	level := strings.ToUpper(e.Level)
	sb.WriteString(p.levels[level].Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(e.Msg)

	if e.Source != "" {
		sb.WriteString(" " + p.field.Render("source=") + e.Source)
	}
	if e.SessionID != "" {
		sb.WriteString(" " + p.field.Render("session_id=") + e.SessionID)
	}

	keys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" " + p.field.Render(k+"=") + fmt.Sprint(e.Extra[k]))
	}
	return sb.String()
}

// line formats a raw log line, or returns ok=false when it is filtered out.
// Lines that are not JSON are shown as they are.
func (p *logPrinter) line(raw string, f logFilter) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	var e logEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return raw, true
	}
	if !f.passes(&e) {
		return "", false
	}
	return p.format(&e), true
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logPath := filepath.Join(cfg.Logging.LogDir(), logging.FileName)

	filter, err := newLogFilter(logsLevel, logsSince, logsGrep, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(logPath); os.IsNotExist(err) && !logsFollow {
		fmt.Fprintln(out, "No logs found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	p := newLogPrinter(out)
	if logsFollow {
		fmt.Fprintf(out, "Following %s... (Ctrl+C to stop)\n\n", logPath)
		return followLogs(cmd.Context(), logPath, p, filter)
	}
	return displayLogs(logPath, logsTail, p, filter)
}

// displayLogs prints the last tail matching entries of the log file
func displayLogs(logPath string, tail int, p *logPrinter, f logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if s, ok := p.line(scanner.Text(), f); ok {
			lines = append(lines, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}
	for _, s := range lines {
		fmt.Fprintln(p.out, s)
	}
	if len(lines) == 0 {
		fmt.Fprintln(p.out, "No matching log entries found.")
	}
	return nil
}

// followLogs prints entries appended to the log file until ctx is done.
// It watches the log directory, so a file created later is picked up too.
func followLogs(ctx context.Context, logPath string, p *logPrinter, f logFilter) error {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch log directory: %w", err)
	}

	var (
		file   *os.File
		reader *bufio.Reader
		offset int64
	)
	defer func() {
		if file != nil {
			_ = file.Close()
		}
	}()

	// drain prints every complete line written since the last call. A file
	// opened at startup is read from its end, one created later from the
	// start.
	drain := func(atEnd bool) error {
		if file == nil {
			var err error
			file, err = os.Open(logPath)
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			reader = bufio.NewReader(file)
			offset = 0
			if atEnd {
				if offset, err = file.Seek(0, io.SeekEnd); err != nil {
					return fmt.Errorf("failed to seek to end: %w", err)
				}
				reader.Reset(file)
				return nil
			}
		}
		for {
			raw, err := reader.ReadString('\n')
			if err == io.EOF {
				// Keep a partial line for the next write
				if _, serr := file.Seek(offset, io.SeekStart); serr != nil {
					return fmt.Errorf("failed to seek: %w", serr)
				}
				reader.Reset(file)
				return nil
			}
			if err != nil {
				return fmt.Errorf("error reading log file: %w", err)
			}
			offset += int64(len(raw))
			if s, ok := p.line(raw, f); ok {
				fmt.Fprintln(p.out, s)
			}
		}
	}

	if err := drain(true); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(logPath) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if file != nil {
					_ = file.Close()
				}
				file, reader, offset = nil, nil, 0
				continue
			}
			if err := drain(false); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching log file: %w", err)
		}
	}
}
