package feed

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
)

// MaxSnapshotSize is the largest single snapshot a stream may carry.
const MaxSnapshotSize = 4 << 20

// Reader reads newline-delimited snapshots, one JSON document per line.
type Reader struct {
	R      io.Reader
	Label  string
	Logger *logging.Logger
}

// Name returns the label, or "stdin".
func (r *Reader) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return "stdin"
}

// Run emits one update per line until EOF. Blank lines and envelopes of
// other message types are skipped; malformed lines are emitted as errors.
func (r *Reader) Run(ctx context.Context, emit Emit) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	lines := make(chan []byte)
	done := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r.R)
		sc.Buffer(make([]byte, 0, 64*1024), MaxSnapshotSize)
		for sc.Scan() {
			line := bytes.Clone(sc.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				done <- ctx.Err()
				return
			}
		}
		done <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return errors.NewFeedError("reading snapshots", err).
					WithSource(r.Name()).
					WithRetryable(false)
			}
			return nil
		case line := <-lines:
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			entries, err := leaderboard.Decode(line)
			if errors.Is(err, leaderboard.ErrNotLeaderboard) {
				continue
			}
			if err != nil {
				logger.Warn("dropping malformed snapshot", "source", r.Name(), "error", err)
				emit(failure(r.Name(), err))
				continue
			}
			emit(snapshot(r.Name(), entries))
		}
	}
}
