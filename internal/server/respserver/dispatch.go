package respserver

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/internal/protocol/resp"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// Dispatcher interprets decoded requests and invokes the store.
//
// The store's own locking serializes each operation; the dispatcher
// itself is stateless and safe for concurrent use by all connections.
type Dispatcher struct {
	store   *memory.Store
	log     logger.Logger
	metrics *metric.Registry
}

// NewDispatcher creates a dispatcher over the given store.
func NewDispatcher(store *memory.Store, log logger.Logger, metrics *metric.Registry) *Dispatcher {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}
	return &Dispatcher{
		store:   store,
		log:     log,
		metrics: metrics,
	}
}

// Dispatch maps one request to one reply. closeConn reports that the
// connection should be closed after the reply is written (QUIT).
//
// Every failure mode is answered with an error reply; a bad request
// never terminates the connection and never mutates the store.
func (d *Dispatcher) Dispatch(req resp.Value) (reply resp.Value, closeConn bool) {
	name, args, err := splitCommand(req)
	if err != nil {
		return d.errorReply(err), false
	}

	start := time.Now()
	reply, closeConn = d.invoke(name, args)
	d.metrics.RecordCommand(name)
	d.metrics.ObserveCommandDuration(name, time.Since(start).Seconds())

	return reply, closeConn
}

// splitCommand extracts the command name and arguments from a request.
// Resolution is case-insensitive. A Null first element reads as the
// empty name, which resolves to nothing.
func splitCommand(req resp.Value) (string, []resp.Value, error) {
	if req.Type != resp.TypeArray {
		return "", nil, domain.ErrInvalidCommand.WithDetails("request is not an array")
	}
	if len(req.Array) == 0 {
		return "", nil, domain.ErrInvalidCommand.WithDetails("empty command")
	}

	first := req.Array[0]
	var name string
	switch first.Type {
	case resp.TypeBulkString:
		name = string(first.Bulk)
	case resp.TypeNull:
		name = ""
	default:
		return "", nil, domain.ErrInvalidCommand.WithDetails("command name is not a string")
	}

	return strings.ToUpper(name), req.Array[1:], nil
}

func (d *Dispatcher) invoke(name string, args []resp.Value) (resp.Value, bool) {
	switch name {
	case "PING":
		return d.ping(args), false
	case "ECHO":
		return d.echo(args), false
	case "QUIT":
		return resp.NewSimpleString("OK"), true
	case "GET":
		return d.get(args), false
	case "SET":
		return d.set(args), false
	case "DEL":
		return d.del(args), false
	case "EXISTS":
		return d.exists(args), false
	case "EXPIRE":
		return d.expire(name, args, time.Second), false
	case "PEXPIRE":
		return d.expire(name, args, time.Millisecond), false
	case "TTL":
		return d.ttl(name, args, time.Second), false
	case "PTTL":
		return d.ttl(name, args, time.Millisecond), false
	case "KEYS":
		return d.keys(args), false
	case "DBSIZE":
		return resp.NewInteger(int64(d.store.Len())), false
	case "FLUSHALL":
		d.store.Clear()
		return resp.NewSimpleString("OK"), false
	default:
		return d.errorReply(domain.ErrUnknownCommand.WithDetails("'" + name + "'")), false
	}
}

// PING [message]
func (d *Dispatcher) ping(args []resp.Value) resp.Value {
	switch len(args) {
	case 0:
		return resp.NewSimpleString("PONG")
	case 1:
		return resp.NewBulk(argBytes(args[0]))
	default:
		return d.arityError("PING")
	}
}

// ECHO [message]
//
// A missing argument answers Null rather than an arity error.
func (d *Dispatcher) echo(args []resp.Value) resp.Value {
	switch len(args) {
	case 0:
		return resp.NewNull()
	case 1:
		return resp.NewBulk(argBytes(args[0]))
	default:
		return d.arityError("ECHO")
	}
}

// GET key
func (d *Dispatcher) get(args []resp.Value) resp.Value {
	if len(args) != 1 {
		return d.arityError("GET")
	}

	value, ok := d.store.Get(argString(args[0]))
	if !ok {
		return resp.NewNull()
	}
	return resp.NewBulk(value)
}

// SET key value [PX milliseconds] [EX seconds]
func (d *Dispatcher) set(args []resp.Value) resp.Value {
	if len(args) < 2 {
		return d.arityError("SET")
	}

	key := argString(args[0])
	value := argBytes(args[1])
	ttl := parseExpiry(args[2:])

	d.store.Set(key, value, ttl)
	return resp.NewSimpleString("OK")
}

// parseExpiry scans SET option arguments for an expiry, matched
// case-insensitively. An unparsable or negative operand falls back to
// no expiry; an option missing its operand is ignored.
func parseExpiry(opts []resp.Value) time.Duration {
	for i := 0; i < len(opts); i++ {
		var unit time.Duration
		switch strings.ToUpper(argString(opts[i])) {
		case "PX":
			unit = time.Millisecond
		case "EX":
			unit = time.Second
		default:
			continue
		}

		if i+1 >= len(opts) {
			return 0
		}
		n, err := strconv.ParseInt(argString(opts[i+1]), 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		return time.Duration(n) * unit
	}
	return 0
}

// DEL key [key ...]
func (d *Dispatcher) del(args []resp.Value) resp.Value {
	if len(args) == 0 {
		return d.arityError("DEL")
	}

	removed := 0
	for _, arg := range args {
		if d.store.Delete(argString(arg)) {
			removed++
		}
	}
	return resp.NewInteger(int64(removed))
}

// EXISTS key [key ...]
func (d *Dispatcher) exists(args []resp.Value) resp.Value {
	if len(args) == 0 {
		return d.arityError("EXISTS")
	}

	count := 0
	for _, arg := range args {
		if d.store.Exists(argString(arg)) {
			count++
		}
	}
	return resp.NewInteger(int64(count))
}

// EXPIRE key seconds / PEXPIRE key milliseconds
func (d *Dispatcher) expire(name string, args []resp.Value, unit time.Duration) resp.Value {
	if len(args) != 2 {
		return d.arityError(name)
	}

	n, err := strconv.ParseInt(argString(args[1]), 10, 64)
	if err != nil || n < 0 {
		return d.errorReply(domain.ErrInvalidArgument.WithDetails("value is not a non-negative integer"))
	}

	if d.store.Expire(argString(args[0]), time.Duration(n)*unit) {
		return resp.NewInteger(1)
	}
	return resp.NewInteger(0)
}

// TTL key / PTTL key
//
// Replies -2 when the key is absent or expired, -1 when it has no
// expiry, otherwise the remaining lifetime rounded up to whole units.
func (d *Dispatcher) ttl(name string, args []resp.Value, unit time.Duration) resp.Value {
	if len(args) != 1 {
		return d.arityError(name)
	}

	remaining, hasExpiry, exists := d.store.TTL(argString(args[0]))
	switch {
	case !exists:
		return resp.NewInteger(-2)
	case !hasExpiry:
		return resp.NewInteger(-1)
	default:
		return resp.NewInteger(int64((remaining + unit - 1) / unit))
	}
}

// KEYS pattern
func (d *Dispatcher) keys(args []resp.Value) resp.Value {
	if len(args) != 1 {
		return d.arityError("KEYS")
	}

	pattern := argString(args[0])
	keys := d.store.Keys()
	sort.Strings(keys)

	elems := make([]resp.Value, 0, len(keys))
	for _, key := range keys {
		if Match(pattern, key) {
			elems = append(elems, resp.NewBulkString(key))
		}
	}
	return resp.NewArray(elems...)
}

func (d *Dispatcher) arityError(name string) resp.Value {
	return d.errorReply(domain.ErrMissingArgument.WithDetails(
		"wrong number of arguments for '" + name + "'"))
}

// errorReply formats a domain error as a wire error reply and records
// it, keeping the MK-* code visible to clients and metrics alike.
func (d *Dispatcher) errorReply(err error) resp.Value {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		d.metrics.RecordCommandError("internal")
		return resp.NewError("ERR " + err.Error())
	}

	d.metrics.RecordCommandError(de.Code)

	msg := "ERR " + de.Code + " " + de.Message
	if de.Details != "" {
		msg += " " + de.Details
	}
	return resp.NewError(msg)
}

// argBytes returns the payload of a command argument. Null reads as an
// empty string, matching the command-name contract.
func argBytes(v resp.Value) []byte {
	switch v.Type {
	case resp.TypeBulkString:
		return v.Bulk
	case resp.TypeSimpleString:
		return []byte(v.Str)
	default:
		return nil
	}
}

func argString(v resp.Value) string {
	return string(argBytes(v))
}
