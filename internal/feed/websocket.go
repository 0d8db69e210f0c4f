package feed

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/gorilla/websocket"
)

// Reconnect delays for WebSocket.
const (
	DefaultReconnectDelay    = time.Second
	DefaultMaxReconnectDelay = 30 * time.Second
	handshakeTimeout         = 5 * time.Second
)

// WebSocket follows a game server's message stream. Each text frame is
// decoded as a snapshot; envelopes of other message types are ignored.
type WebSocket struct {
	URL   string
	Token string
	// ReconnectDelay is the first retry delay; it doubles up to
	// MaxReconnectDelay. A negative delay disables reconnecting.
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
	Logger            *logging.Logger

	dialer *websocket.Dialer
}

// Name returns the URL host and path.
func (w *WebSocket) Name() string {
	name := strings.TrimPrefix(strings.TrimPrefix(w.URL, "wss://"), "ws://")
	if name == "" {
		return "websocket"
	}
	return name
}

// Run dials, reads, and redials until ctx is done. Connection failures are
// emitted as updates between attempts.
func (w *WebSocket) Run(ctx context.Context, emit Emit) error {
	logger := w.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if w.dialer == nil {
		w.dialer = &websocket.Dialer{
			HandshakeTimeout:  handshakeTimeout,
			EnableCompression: true,
			Proxy:             http.ProxyFromEnvironment,
		}
	}

	delay := w.ReconnectDelay
	if delay == 0 {
		delay = DefaultReconnectDelay
	}
	maxDelay := w.MaxReconnectDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxReconnectDelay
	}

	backoff := delay
	for {
		received, err := w.session(ctx, emit, logger)
		if ctx.Err() != nil {
			return nil
		}
		if received {
			backoff = delay
		}
		if err != nil {
			emit(failure(w.Name(), err))
			if !errors.IsRetryable(err) {
				return err
			}
		}
		if delay < 0 {
			if err == nil {
				err = errors.ErrFeedClosed
			}
			return err
		}

		logger.Info("reconnecting", "url", w.URL, "delay", backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxDelay)
	}
}

// session runs one connection. It reports whether any snapshot arrived so
// the caller can reset its backoff.
func (w *WebSocket) session(ctx context.Context, emit Emit, logger *logging.Logger) (bool, error) {
	hdr := http.Header{}
	if tok := strings.TrimSpace(w.Token); tok != "" {
		hdr.Set("Authorization", "Bearer "+tok)
	}

	conn, resp, err := w.dialer.DialContext(ctx, w.URL, hdr)
	if err != nil {
		ferr := errors.NewFeedError("dial failed", err).WithSource("websocket").WithTarget(w.URL).
			WithSeverity(errors.SeverityWarning)
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			logger.Warn("websocket dial rejected", "url", w.URL, "status", resp.Status, "body", string(body))
			// Auth and routing failures will not fix themselves.
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound {
				ferr.WithRetryable(false).WithSeverity(errors.SeverityCritical)
			}
		} else {
			logger.Warn("websocket dial failed", "url", w.URL, "error", err)
		}
		return false, ferr
	}
	logger.Info("websocket connected", "url", w.URL)

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer func() {
		stop()
		_ = conn.Close()
	}()

	received := false
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return received, nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("websocket closed by server", "url", w.URL)
				return received, errors.NewFeedError("connection closed", errors.ErrFeedClosed).WithSource("websocket").WithTarget(w.URL).
					WithSeverity(errors.SeverityWarning)
			}
			return received, errors.NewFeedError("read failed", err).WithSource("websocket").WithTarget(w.URL)
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}

		entries, err := leaderboard.Decode(data)
		if errors.Is(err, leaderboard.ErrNotLeaderboard) {
			continue
		}
		if err != nil {
			logger.Warn("dropping malformed message", "url", w.URL, "error", err)
			emit(failure(w.Name(), err))
			continue
		}
		received = true
		emit(snapshot(w.Name(), entries))
	}
}
