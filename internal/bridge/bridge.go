package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/luxctl/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Send pings to peer with this period to detect dead subscribers
	pingPeriod = 30 * time.Second

	// DefaultPollInterval is how often the bridge polls the controller
	// when no interval is configured.
	DefaultPollInterval = 30 * time.Second
)

// Bridge polls a controller and fans snapshots out to HTTP and WebSocket
// clients.
type Bridge struct {
	poller   Poller
	interval time.Duration
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  *Snapshot
	clients map[chan *Snapshot]struct{}
}

// New creates a bridge polling p every interval.
func New(p Poller, interval time.Duration) *Bridge {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Bridge{
		poller:   p,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Local integration surface; same-origin policy does not apply
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[chan *Snapshot]struct{}),
	}
}

// Handler returns the HTTP routes: GET /snapshot for the latest poll result
// and /ws for the push feed.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", b.handleSnapshot)
	mux.HandleFunc("/ws", b.handleWS)
	return mux
}

// Run serves the bridge on addr and polls until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: b.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Bridge listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	go b.pollLoop(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// pollLoop runs one poll immediately, then one per interval. Poll failures
// are logged and the previous snapshot stays current; the controller may
// simply be busy or rebooting.
func (b *Bridge) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.pollOnce(ctx)
		}
	}
}

func (b *Bridge) pollOnce(ctx context.Context) {
	snap, err := b.poller.Poll(ctx)
	if err != nil {
		logging.Warn("Poll failed", zap.Error(err))
		return
	}

	b.mu.Lock()
	b.latest = snap
	for ch := range b.clients {
		select {
		case ch <- snap:
		default:
			// Subscriber is not keeping up; it will catch the next snapshot
		}
	}
	b.mu.Unlock()
}

func (b *Bridge) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	b.mu.Lock()
	snap := b.latest
	b.mu.Unlock()

	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (b *Bridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	logging.LogConnection(r.RemoteAddr, "subscriber_connected")

	ch := b.subscribe()
	defer func() {
		b.unsubscribe(ch)
		_ = conn.Close()
		logging.LogConnection(r.RemoteAddr, "subscriber_closed")
	}()

	// Drain and discard client messages so close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Send the current snapshot right away, then push on every poll
	b.mu.Lock()
	latest := b.latest
	b.mu.Unlock()
	if latest != nil {
		if err := b.writeSnapshot(conn, latest); err != nil {
			return
		}
	}

	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := b.writeSnapshot(conn, snap); err != nil {
				return
			}
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (b *Bridge) writeSnapshot(conn *websocket.Conn, snap *Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}

func (b *Bridge) subscribe() chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Bridge) unsubscribe(ch chan *Snapshot) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}
