package feed

import (
	"context"
	"sync"

	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/sourcegraph/conc/pool"
)

// Hub keeps the latest update and fans updates out to subscribers.
//
// Subscribers only ever need the newest snapshot, so each subscription
// buffers two updates and a slow reader sees the oldest one dropped rather
// than blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	latest Update
	have   bool
	// lastGood is the most recent update that carried entries.
	lastGood Update
	haveGood bool
	subs     map[int]chan Update
	nextID   int
	closed   bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Update)}
}

// Publish records u and delivers it to every subscriber.
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest, h.have = u, true
	if u.Err == nil {
		h.lastGood, h.haveGood = u, true
	}
	for _, ch := range h.subs {
		offer(ch, u)
	}
}

// offer replaces any undelivered update in ch with u.
func offer(ch chan Update, u Update) {
	select {
	case ch <- u:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- u:
	default:
	}
}

// Subscribe returns a channel of updates and a function that ends the
// subscription. A new subscriber first receives the last good snapshot
// and then, if one followed it, the latest error.
func (h *Hub) Subscribe() (<-chan Update, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Update, 2)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	if h.haveGood {
		ch <- h.lastGood
	}
	if h.have && h.latest.Err != nil {
		ch <- h.latest
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// Latest returns the most recent update and whether there has been one.
func (h *Hub) Latest() (Update, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.have
}

// LastSnapshot returns the most recent update that carried entries.
func (h *Hub) LastSnapshot() (Update, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastGood, h.haveGood
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Run drives sources into the hub until ctx is done or every source has
// returned, then closes the hub. It returns the sources' errors joined.
func (h *Hub) Run(ctx context.Context, logger *logging.Logger, sources ...Source) error {
	if logger == nil {
		logger = logging.NopLogger()
	}
	defer h.Close()

	p := pool.New().WithErrors().WithContext(ctx)
	for _, src := range sources {
		p.Go(func(ctx context.Context) error {
			logger.Info("feed started", "source", src.Name())
			err := src.Run(ctx, h.Publish)
			if err != nil {
				logger.Error("feed stopped", "source", src.Name(), "error", err)
			} else {
				logger.Info("feed finished", "source", src.Name())
			}
			return err
		})
	}
	return p.Wait()
}

// Pump runs src and forwards its updates to a channel, closing it when src
// returns. It is how a single local view consumes a feed.
func Pump(ctx context.Context, src Source, logger *logging.Logger) <-chan Update {
	if logger == nil {
		logger = logging.NopLogger()
	}
	ch := make(chan Update, 1)
	go func() {
		defer close(ch)
		err := src.Run(ctx, func(u Update) {
			select {
			case ch <- u:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Error("feed stopped", "source", src.Name(), "error", err)
			select {
			case ch <- failure(src.Name(), err):
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
