// Package client provides a synchronous wire-protocol client used by
// memkv-cli. It speaks the same RESP-style framing as the server: each
// request is an array of bulk strings, each reply a single value.
package client

import (
	"fmt"
	"net"
	"time"

	"github.com/yndnr/memkv-go/internal/protocol/resp"
)

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// Client is a single connection to a memkv server. It is not safe for
// concurrent use; the CLI issues one request at a time.
type Client struct {
	conn    net.Conn
	r       *resp.Reader
	w       *resp.Writer
	timeout time.Duration
}

// Dial connects to the server at addr. A zero timeout falls back to
// DefaultTimeout.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	return &Client{
		conn:    conn,
		r:       resp.NewReader(conn),
		w:       resp.NewWriter(conn),
		timeout: timeout,
	}, nil
}

// Do sends one command and returns the server's reply. Error replies
// come back as a value of TypeError, not as a Go error; a Go error
// means the connection itself failed.
func (c *Client) Do(args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, fmt.Errorf("empty command")
	}

	elems := make([]resp.Value, len(args))
	for i, arg := range args {
		elems[i] = resp.NewBulkString(arg)
	}

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	defer c.conn.SetDeadline(time.Time{})

	if err := c.w.WriteValue(resp.NewArray(elems...)); err != nil {
		return resp.Value{}, fmt.Errorf("write command: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return resp.Value{}, fmt.Errorf("flush command: %w", err)
	}

	reply, err := c.r.ReadValue()
	if err != nil {
		return resp.Value{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}

// Addr returns the remote server address.
func (c *Client) Addr() string {
	return c.conn.RemoteAddr().String()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
