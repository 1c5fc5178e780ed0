package session

import (
	"context"
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/muurk/luxctl/internal/heatpump"
	"github.com/muurk/luxctl/internal/logging"
	"github.com/muurk/luxctl/internal/protocol"
	"go.uber.org/zap"
)

const (
	// DefaultPort is the TCP port Luxtronik controllers listen on
	DefaultPort = 8889

	// DefaultSettleDelay is how long a write cycle pauses between the write
	// phase and the read-back, giving the controller time to recompute
	// derived values. The controller's internal recompute latency is not
	// specified anywhere; one second is the value that works in practice.
	DefaultSettleDelay = 1 * time.Second
)

// Session is one connection-scoped client for a Luxtronik controller. Create
// it with New, open the connection with Connect, and Close it when done.
// All methods are safe for concurrent use; cycles are serialized internally.
type Session struct {
	host   string
	port   int
	settle time.Duration
	strict bool

	// mu guards the connection handles and serializes whole cycles.
	mu    sync.Mutex
	conn  net.Conn
	proto *protocol.Conn

	// Parameters and Calculations receive the raw vectors of each read
	// phase. Parameters also owns the pending write queue.
	Parameters   *heatpump.Parameters
	Calculations *heatpump.Calculations
	Visibilities *heatpump.Visibilities
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithPort overrides the controller TCP port (default 8889).
func WithPort(port int) Option {
	return func(s *Session) { s.port = port }
}

// WithSettleDelay overrides the pause between the write phase and the
// read-back of a write cycle.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) { s.settle = d }
}

// WithStrictEcho makes a mismatched command echo a protocol error instead of
// a tolerated, debug-logged event.
func WithStrictEcho() Option {
	return func(s *Session) { s.strict = true }
}

// WithUnsafeWrites disables safe mode on the parameter sink, allowing writes
// to any writeable parameter rather than only the whitelisted-safe ones.
func WithUnsafeWrites() Option {
	return func(s *Session) { s.Parameters = heatpump.NewParameters(false) }
}

// New creates a session for the controller at host. The connection is not
// opened until Connect.
func New(host string, opts ...Option) *Session {
	s := &Session{
		host:         host,
		port:         DefaultPort,
		settle:       DefaultSettleDelay,
		Parameters:   heatpump.NewParameters(true),
		Calculations: heatpump.NewCalculations(),
		Visibilities: heatpump.NewVisibilities(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the controller address the session targets.
func (s *Session) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Connect opens the session's single TCP connection. It makes one attempt
// and does not retry; a failure is fatal to the session. Connecting an
// already-connected session is an error.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return ErrAlreadyConnected
	}

	addr := s.Addr()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classifyDialError(addr, err)
	}

	s.conn = conn
	s.proto = protocol.NewConn(conn)
	s.proto.Strict = s.strict
	logging.LogConnection(addr, "connected")
	return nil
}

// Close shuts the connection down and clears both handles so any later cycle
// fails fast with protocol.ErrNotConnected instead of touching a stale
// descriptor. Safe to call multiple times and on a never-connected session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.proto = nil
	logging.LogConnection(s.Addr(), "closed")
	return err
}

// Read performs one read-only cycle: parameters, then calculations.
func (s *Session) Read(ctx context.Context) error {
	return s.cycle(ctx, false)
}

// Write performs one write-then-read cycle: drain the pending parameter
// writes, wait the settle delay, then read parameters and calculations.
func (s *Session) Write(ctx context.Context) error {
	return s.cycle(ctx, true)
}

// cycle runs one complete exchange under the session mutex. The lock covers
// the write phase, the settle delay, and both reads; concurrent callers
// block until it is released.
func (s *Session) cycle(ctx context.Context, write bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proto == nil {
		return protocol.ErrNotConnected
	}

	if write {
		if err := s.flushPending(); err != nil {
			return err
		}
		if err := s.settleWait(ctx); err != nil {
			return err
		}
	}

	if err := s.readParameters(); err != nil {
		return err
	}
	return s.readCalculations()
}

// ReadVisibilities performs the third array read (command 3005), whose
// elements are signed bytes. It runs under the same cycle mutex.
func (s *Session) ReadVisibilities(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proto == nil {
		return protocol.ErrNotConnected
	}
	data, err := s.proto.ReadInt8Array(protocol.CmdReadVisibilities)
	if err != nil {
		return err
	}
	logging.Info("Read visibilities",
		zap.String("host", s.host),
		zap.Int("count", len(data)),
	)
	s.Visibilities.Parse(data)
	return nil
}

// flushPending sends one (3002, index, value) round-trip per queued write,
// in ascending index order. Entries outside the signed 32-bit range are
// skipped with a warning; they indicate corrupted caller data, not a reason
// to abort the cycle. The queue is cleared no matter how the phase ends;
// there is no partial retry.
func (s *Session) flushPending() error {
	defer s.Parameters.ClearPending()

	for _, w := range s.Parameters.PendingWrites() {
		if !fitsInt32(w.Index) || !fitsInt32(w.Value) {
			logging.Warn("Parameter write skipped",
				zap.String("host", s.host),
				zap.Int("index", w.Index),
				zap.Int("value", w.Value),
			)
			continue
		}
		logging.Info("Writing parameter",
			zap.String("host", s.host),
			zap.Int("index", w.Index),
			zap.Int("value", w.Value),
		)
		if err := s.proto.SendInts(protocol.CmdWriteParameter, int32(w.Index), int32(w.Value)); err != nil {
			return err
		}
		// The controller echoes a status int and the written value. Reading
		// them keeps the exchange synchronous; their content is not
		// validated.
		stat, err := s.proto.RecvInt()
		if err != nil {
			return err
		}
		val, err := s.proto.RecvInt()
		if err != nil {
			return err
		}
		logging.Debug("Write acknowledged",
			zap.String("host", s.host),
			zap.Int32("stat", stat),
			zap.Int32("value", val),
		)
	}
	return nil
}

// settleWait pauses for the settle delay, honoring context cancellation.
func (s *Session) settleWait(ctx context.Context) error {
	t := time.NewTimer(s.settle)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) readParameters() error {
	data, err := s.proto.ReadInt32Array(protocol.CmdReadParameters, false)
	if err != nil {
		return err
	}
	logging.Info("Read parameters",
		zap.String("host", s.host),
		zap.Int("count", len(data)),
	)
	s.Parameters.Parse(data)
	return nil
}

func (s *Session) readCalculations() error {
	data, err := s.proto.ReadInt32Array(protocol.CmdReadCalculations, true)
	if err != nil {
		return err
	}
	logging.Info("Read calculations",
		zap.String("host", s.host),
		zap.Int("count", len(data)),
	)
	s.Calculations.Parse(data)
	return nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
