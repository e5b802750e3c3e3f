package respserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/memkv-go/internal/protocol/resp"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address (host:port).
	Addr string

	// IdleTimeout closes connections with no inbound command for this
	// long (default: 5m).
	IdleTimeout time.Duration

	// ReadTimeout bounds reading the remainder of a command once its
	// first byte has arrived (default: 30s). Slowloris protection.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing one reply (default: 30s).
	WriteTimeout time.Duration

	// MaxConns caps concurrently served connections. Zero means no cap.
	MaxConns int

	// RatePerIP is the sustained new-connection rate allowed per client
	// IP, in connections per second. Zero disables rate limiting.
	RatePerIP float64

	// BurstPerIP is the burst size of the per-IP limiter.
	BurstPerIP int

	// SweepInterval is the janitor sweep period. Zero disables the
	// janitor; per-request sweeps still run.
	SweepInterval time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:          "127.0.0.1:6379",
		IdleTimeout:   5 * time.Minute,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		MaxConns:      1024,
		RatePerIP:     50,
		BurstPerIP:    100,
		SweepInterval: time.Second,
	}
}

// Server accepts client connections and serves the memkv protocol.
type Server struct {
	cfg        *Config
	store      *memory.Store
	dispatcher *Dispatcher
	log        logger.Logger
	metrics    *metric.Registry
	limiters   *limiterRegistry

	ln      net.Listener
	running atomic.Bool
	open    atomic.Int64
	wg      sync.WaitGroup
	stop    chan struct{}
}

// Conn is one client connection. One goroutine owns it end to end, so
// the reader and writer need no locking.
type Conn struct {
	id      string
	netConn net.Conn
	r       *resp.Reader
	w       *resp.Writer
	closed  atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		id:      ulid.Make().String(),
		netConn: c,
		r:       resp.NewReader(c),
		w:       resp.NewWriter(c),
	}
}

// ID returns the connection identifier used for log correlation.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// Close closes the underlying connection. Safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// New creates a RESP server over the given store.
func New(cfg *Config, store *memory.Store, log logger.Logger, metrics *metric.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}

	return &Server{
		cfg:        cfg,
		store:      store,
		dispatcher: NewDispatcher(store, log, metrics),
		log:        log,
		metrics:    metrics,
		limiters:   newLimiterRegistry(cfg.RatePerIP, cfg.BurstPerIP),
		stop:       make(chan struct{}),
	}
}

// Start binds the listener and begins accepting connections. It returns
// once the listener is bound; accepting and serving happen on background
// goroutines until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)

	s.log.Info("resp server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx); err != nil && s.running.Load() {
			s.log.Error("resp server accept loop failed", "error", err)
		}
	}()

	if s.cfg.SweepInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.janitor(ctx)
		}()
	}

	return nil
}

// Addr returns the bound listener address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes the listener, and waits for in-flight
// connection handlers to drain or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	close(s.stop)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		nc, err := s.ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		if !s.admit(nc) {
			continue
		}

		c := newConn(nc)
		s.metrics.ConnOpened()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.metrics.ConnClosed()
			s.serveConn(c)
		}()
	}
}

// admit applies connection-level limits before a handler goroutine is
// spawned. Rejected connections get a one-line error reply and are
// closed; admit reports whether the connection may be served.
func (s *Server) admit(nc net.Conn) bool {
	if s.cfg.MaxConns > 0 && s.open.Load() >= int64(s.cfg.MaxConns) {
		s.metrics.RecordRejection("max_conns")
		s.log.Warn("connection rejected, server at capacity",
			"remote", nc.RemoteAddr().String(), "max_conns", s.cfg.MaxConns)
		s.reject(nc, "ERR max number of clients reached")
		return false
	}

	if !s.limiters.Allow(nc.RemoteAddr()) {
		s.metrics.RecordRejection("rate_limited")
		s.log.Warn("connection rejected, rate limited",
			"remote", nc.RemoteAddr().String())
		s.reject(nc, "ERR connection rate limit exceeded")
		return false
	}

	return true
}

func (s *Server) reject(nc net.Conn, msg string) {
	_ = nc.SetWriteDeadline(time.Now().Add(s.writeTimeout()))
	_, _ = nc.Write([]byte("-" + msg + "\r\n"))
	_ = nc.Close()
}

func (s *Server) serveConn(c *Conn) {
	s.open.Add(1)
	defer s.open.Add(-1)
	defer c.Close()

	log := s.log.With("conn", c.ID(), "remote", c.RemoteAddr().String())
	log.Debug("connection opened")
	defer log.Debug("connection closed")

	for {
		// First byte under the idle deadline: connections may sit quiet
		// between commands.
		if err := c.netConn.SetReadDeadline(time.Now().Add(s.idleTimeout())); err != nil {
			return
		}
		if _, err := c.r.Peek(1); err != nil {
			if !errors.Is(err, io.EOF) && !isTimeout(err) {
				log.Debug("connection read failed", "error", err)
			}
			return
		}

		// A command has started: tighten to the per-command read deadline.
		if err := c.netConn.SetReadDeadline(time.Now().Add(s.readTimeout())); err != nil {
			return
		}

		req, err := c.r.ReadValue()
		if err != nil {
			if errors.Is(err, io.EOF) || isTimeout(err) {
				return
			}
			if errors.Is(err, resp.ErrLimitExceeded) {
				log.Warn("protocol limit exceeded", "error", err)
				s.replyError(c, "ERR protocol limit exceeded")
				return
			}
			if resp.Recoverable(err) {
				// The reader is still at a value boundary; answer and
				// keep the connection.
				log.Debug("malformed request", "error", err)
				if !s.replyError(c, "ERR protocol error: malformed input") {
					return
				}
				continue
			}
			log.Debug("connection desynchronized", "error", err)
			s.replyError(c, "ERR protocol error: malformed input")
			return
		}

		// Bound memory held by dead entries before serving the request.
		if n := s.store.SweepExpired(); n > 0 {
			s.metrics.AddKeysExpired(n)
		}

		reply, closeAfter := s.dispatcher.Dispatch(req)

		if err := c.netConn.SetWriteDeadline(time.Now().Add(s.writeTimeout())); err != nil {
			return
		}
		if err := c.w.WriteValue(reply); err != nil {
			log.Debug("reply write failed", "error", err)
			return
		}
		if err := c.w.Flush(); err != nil {
			log.Debug("reply flush failed", "error", err)
			return
		}

		if closeAfter {
			return
		}
	}
}

// replyError writes a one-off error reply. Returns whether the write
// succeeded, meaning the connection is still usable.
func (s *Server) replyError(c *Conn, msg string) bool {
	_ = c.netConn.SetWriteDeadline(time.Now().Add(s.writeTimeout()))
	if err := c.w.WriteValue(resp.NewError(msg)); err != nil {
		return false
	}
	return c.w.Flush() == nil
}

// janitor periodically sweeps expired entries and prunes idle rate
// limiters, so memory is reclaimed even while every connection is idle.
func (s *Server) janitor(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.store.SweepExpired(); n > 0 {
				s.metrics.AddKeysExpired(n)
				s.log.Debug("janitor sweep", "expired", n)
			}
			s.limiters.PruneStale(10 * time.Minute)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) idleTimeout() time.Duration {
	if s.cfg.IdleTimeout > 0 {
		return s.cfg.IdleTimeout
	}
	return 5 * time.Minute
}

func (s *Server) readTimeout() time.Duration {
	if s.cfg.ReadTimeout > 0 {
		return s.cfg.ReadTimeout
	}
	return 30 * time.Second
}

func (s *Server) writeTimeout() time.Duration {
	if s.cfg.WriteTimeout > 0 {
		return s.cfg.WriteTimeout
	}
	return 30 * time.Second
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
