package respserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/memkv-go/internal/protocol/resp"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// countKeysExpired scrapes the registry and returns the expired-keys
// counter value.
func countKeysExpired(metrics *metric.Registry) int {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, req)

	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "memkv_store_keys_expired_total ") {
			continue
		}
		n, err := strconv.ParseFloat(strings.Fields(line)[1], 64)
		if err != nil {
			return -1
		}
		return int(n)
	}
	return 0
}

func startTestServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.SweepInterval = 10 * time.Millisecond
	if mutate != nil {
		mutate(cfg)
	}

	srv := New(cfg, memory.New(), nil, nil)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	return srv
}

// testClient speaks the wire protocol over a raw TCP connection.
type testClient struct {
	conn net.Conn
	r    *resp.Reader
	w    *resp.Writer
}

func dialTest(t *testing.T, srv *Server) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{conn: conn, r: resp.NewReader(conn), w: resp.NewWriter(conn)}
}

func (c *testClient) roundTrip(t *testing.T, args ...string) resp.Value {
	t.Helper()
	if err := c.w.WriteValue(command(args...)); err != nil {
		t.Fatalf("write %v: %v", args, err)
	}
	if err := c.w.Flush(); err != nil {
		t.Fatalf("flush %v: %v", args, err)
	}
	reply, err := c.r.ReadValue()
	if err != nil {
		t.Fatalf("read reply for %v: %v", args, err)
	}
	return reply
}

func (c *testClient) sendRaw(t *testing.T, raw string) {
	t.Helper()
	if _, err := c.conn.Write([]byte(raw)); err != nil {
		t.Fatalf("raw write: %v", err)
	}
}

func (c *testClient) expectEOF(t *testing.T) {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := c.r.ReadValue(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected connection close, read error = %v", err)
	}
}

func TestServer_PingPong(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	assertEqual(t, c.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))
	assertEqual(t, c.roundTrip(t, "ECHO", "hello"), resp.NewBulkString("hello"))
}

func TestServer_SetPXScenario(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	assertEqual(t, c.roundTrip(t, "SET", "foo", "bar", "PX", "50"), resp.NewSimpleString("OK"))
	assertEqual(t, c.roundTrip(t, "GET", "foo"), resp.NewBulkString("bar"))

	time.Sleep(60 * time.Millisecond)
	assertEqual(t, c.roundTrip(t, "GET", "foo"), resp.NewNull())
}

func TestServer_UnknownCommandKeepsConnection(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	reply := c.roundTrip(t, "FOO")
	if reply.Type != resp.TypeError {
		t.Fatalf("reply = %+v, want error reply", reply)
	}

	// Connection survives: the next command succeeds normally.
	assertEqual(t, c.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))
}

func TestServer_RecoverableProtocolError(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	// Bad top-level header: the reader stays at a value boundary, so the
	// server answers an error and keeps the connection.
	c.sendRaw(t, "*abc\r\n")
	reply, err := c.r.ReadValue()
	if err != nil {
		t.Fatalf("read error reply: %v", err)
	}
	if reply.Type != resp.TypeError {
		t.Fatalf("reply = %+v, want error reply", reply)
	}

	assertEqual(t, c.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))
}

func TestServer_LimitViolationClosesConnection(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	c.sendRaw(t, fmt.Sprintf("*%d\r\n", resp.MaxArrayLen+1))
	reply, err := c.r.ReadValue()
	if err != nil {
		t.Fatalf("read error reply: %v", err)
	}
	if reply.Type != resp.TypeError {
		t.Fatalf("reply = %+v, want error reply", reply)
	}
	c.expectEOF(t)
}

func TestServer_Quit(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	assertEqual(t, c.roundTrip(t, "QUIT"), resp.NewSimpleString("OK"))
	c.expectEOF(t)
}

func TestServer_InlineCommand(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	c.sendRaw(t, "PING\r\n")
	reply, err := c.r.ReadValue()
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	assertEqual(t, reply, resp.NewSimpleString("PONG"))
}

func TestServer_Pipelining(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)

	// Three commands in one write; replies must come back in order.
	c.sendRaw(t, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n*2\r\n$3\r\nGET\r\n$1\r\nk\r\n*1\r\n$4\r\nPING\r\n")

	wants := []resp.Value{
		resp.NewSimpleString("OK"),
		resp.NewBulkString("v"),
		resp.NewSimpleString("PONG"),
	}
	for i, want := range wants {
		got, err := c.r.ReadValue()
		if err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
		assertEqual(t, got, want)
	}
}

func TestServer_MaxConns(t *testing.T) {
	srv := startTestServer(t, func(cfg *Config) {
		cfg.MaxConns = 1
	})

	first := dialTest(t, srv)
	// Ensure the first handler is running before dialing again.
	assertEqual(t, first.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))

	second := dialTest(t, srv)
	_ = second.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reply, err := second.r.ReadValue()
	if err != nil {
		t.Fatalf("read rejection: %v", err)
	}
	if reply.Type != resp.TypeError {
		t.Fatalf("reply = %+v, want error reply", reply)
	}
	second.expectEOF(t)

	// The admitted connection is unaffected.
	assertEqual(t, first.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))
}

func TestServer_ConnectionRateLimit(t *testing.T) {
	srv := startTestServer(t, func(cfg *Config) {
		cfg.RatePerIP = 0.001
		cfg.BurstPerIP = 1
	})

	first := dialTest(t, srv)
	assertEqual(t, first.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))

	second := dialTest(t, srv)
	_ = second.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reply, err := second.r.ReadValue()
	if err != nil {
		t.Fatalf("read rejection: %v", err)
	}
	if reply.Type != resp.TypeError {
		t.Fatalf("reply = %+v, want error reply", reply)
	}
	second.expectEOF(t)
}

func TestServer_ConcurrentClients(t *testing.T) {
	srv := startTestServer(t, nil)

	const clients = 8
	const rounds = 25

	var wg sync.WaitGroup
	errCh := make(chan error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			conn, err := net.Dial("tcp", srv.Addr().String())
			if err != nil {
				errCh <- err
				return
			}
			defer conn.Close()

			r := resp.NewReader(conn)
			w := resp.NewWriter(conn)
			for j := 0; j < rounds; j++ {
				key := fmt.Sprintf("client:%d:%d", id, j)
				value := fmt.Sprintf("v%d", j)

				if err := w.WriteValue(command("SET", key, value)); err != nil {
					errCh <- err
					return
				}
				if err := w.Flush(); err != nil {
					errCh <- err
					return
				}
				if reply, err := r.ReadValue(); err != nil || !reply.Equal(resp.NewSimpleString("OK")) {
					errCh <- fmt.Errorf("SET %s reply %+v err %v", key, reply, err)
					return
				}

				if err := w.WriteValue(command("GET", key)); err != nil {
					errCh <- err
					return
				}
				if err := w.Flush(); err != nil {
					errCh <- err
					return
				}
				if reply, err := r.ReadValue(); err != nil || !reply.Equal(resp.NewBulkString(value)) {
					errCh <- fmt.Errorf("GET %s reply %+v err %v", key, reply, err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}
}

func TestServer_JanitorSweeps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.SweepInterval = 10 * time.Millisecond

	metrics := metric.NewRegistry()
	srv := New(cfg, memory.New(), nil, metrics)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	c := dialTest(t, srv)
	assertEqual(t, c.roundTrip(t, "SET", "doomed", "v", "PX", "20"), resp.NewSimpleString("OK"))

	// With no further traffic, only the janitor can reclaim the entry.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		time.Sleep(30 * time.Millisecond)
		if srv.store.Len() == 0 && countKeysExpired(metrics) == 1 {
			return
		}
	}
	t.Fatal("janitor never swept the expired entry")
}

func TestServer_Shutdown(t *testing.T) {
	srv := startTestServer(t, nil)
	c := dialTest(t, srv)
	assertEqual(t, c.roundTrip(t, "PING"), resp.NewSimpleString("PONG"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := net.DialTimeout("tcp", srv.Addr().String(), 200*time.Millisecond); err == nil {
		t.Fatal("listener should be closed after Shutdown")
	}
}
