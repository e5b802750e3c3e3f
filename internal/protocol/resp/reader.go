package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protocol limits to prevent DoS attacks.
const (
	// MaxArrayLen limits the number of elements in an array.
	// Commands have <20 args; this provides ample headroom.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxInlineLen limits inline command line length (4KB).
	MaxInlineLen = 4 * 1024

	// MaxArrayDepth limits array nesting.
	MaxArrayDepth = 32

	// maxHeaderLen bounds length-prefix lines: "$<number>\r\n".
	maxHeaderLen = 64
)

// Reader decodes values from a byte stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader wrapping r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Peek returns the next n bytes without consuming them, blocking until
// they are available. The serve loop uses it to wait for activity under
// an idle deadline before committing to a read deadline.
func (r *Reader) Peek(n int) ([]byte, error) {
	return r.br.Peek(n)
}

// ReadValue consumes exactly one encoded value from the stream.
//
// A stream that closes cleanly between values yields io.EOF; a close
// mid-value yields a malformed-input error. A line not starting with a
// type tag is interpreted as an inline command and returned as an array
// of bulk strings.
func (r *Reader) ReadValue() (Value, error) {
	b, err := r.br.Peek(1)
	if err != nil {
		return Value{}, err
	}

	switch b[0] {
	case '+', '-', ':', '$', '*':
		return r.readValue(0)
	default:
		return r.readInline()
	}
}

func (r *Reader) readValue(depth int) (Value, error) {
	tag, err := r.br.ReadByte()
	if err != nil {
		return Value{}, midStream(err)
	}

	switch tag {
	case '+':
		line, err := r.readLine(MaxInlineLen)
		if err != nil {
			return Value{}, err
		}
		return NewSimpleString(line), nil

	case '-':
		line, err := r.readLine(MaxInlineLen)
		if err != nil {
			return Value{}, err
		}
		return NewError(line), nil

	case ':':
		line, err := r.readLine(maxHeaderLen)
		if err != nil {
			return Value{}, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return Value{}, malformed(true, "invalid integer %q", line)
		}
		return NewInteger(n), nil

	case '$':
		return r.readBulk()

	case '*':
		return r.readArray(depth)

	default:
		// Only reachable for array elements; the stream holds arbitrary
		// bytes we cannot reframe.
		return Value{}, malformed(false, "invalid type tag %q", tag)
	}
}

func (r *Reader) readBulk() (Value, error) {
	line, err := r.readLine(maxHeaderLen)
	if err != nil {
		return Value{}, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Value{}, malformed(true, "invalid bulk length %q", line)
	}
	if n == -1 {
		return NewNull(), nil
	}
	if n < 0 {
		return Value{}, malformed(true, "invalid bulk length %d", n)
	}
	if n > MaxBulkLen {
		return Value{}, fmt.Errorf("%w: bulk length %d exceeds limit %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return Value{}, midStream(err)
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return Value{}, malformed(false, "invalid bulk terminator")
	}
	return NewBulk(buf[:n]), nil
}

func (r *Reader) readArray(depth int) (Value, error) {
	if depth >= MaxArrayDepth {
		return Value{}, fmt.Errorf("%w: array nesting exceeds depth %d", ErrLimitExceeded, MaxArrayDepth)
	}

	line, err := r.readLine(maxHeaderLen)
	if err != nil {
		return Value{}, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Value{}, malformed(true, "invalid array length %q", line)
	}
	if n == -1 {
		return NewNull(), nil
	}
	if n < 0 {
		return Value{}, malformed(true, "invalid array length %d", n)
	}
	if n > MaxArrayLen {
		return Value{}, fmt.Errorf("%w: array length %d exceeds limit %d", ErrLimitExceeded, n, MaxArrayLen)
	}

	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := r.readValue(depth + 1)
		if err != nil {
			return Value{}, insideArray(err)
		}
		elems = append(elems, v)
	}
	return Value{Type: TypeArray, Array: elems}, nil
}

// readInline parses a bare command line: "PING\r\n". Used by telnet-style
// clients; the result has the same shape as a framed command array.
func (r *Reader) readInline() (Value, error) {
	line, err := r.readLine(MaxInlineLen)
	if err != nil {
		return Value{}, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return Value{Type: TypeArray, Array: []Value{}}, nil
	}

	parts := strings.Fields(line)
	elems := make([]Value, 0, len(parts))
	for _, p := range parts {
		elems = append(elems, NewBulkString(p))
	}
	return Value{Type: TypeArray, Array: elems}, nil
}

// readLine reads a CRLF-terminated line and returns it without the
// terminator. maxLen bounds the whole line including CRLF.
func (r *Reader) readLine(maxLen int) (string, error) {
	var buf []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return "", fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, maxLen)
			}
			continue
		}
		return "", midStream(err)
	}

	if len(buf) > maxLen {
		return "", fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, maxLen)
	}
	if len(buf) < 2 || !bytes.HasSuffix(buf, []byte("\r\n")) {
		return "", malformed(true, "missing CRLF")
	}

	return string(buf[:len(buf)-2]), nil
}

// midStream converts an I/O error inside a value into a fatal framing
// error, keeping the cause in the chain for timeout inspection.
func midStream(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &frameError{
		err:        fmt.Errorf("%w: %w", ErrMalformedInput, err),
		atBoundary: false,
	}
}

// insideArray demotes boundary errors raised while reading array
// elements: a partially consumed array never leaves the stream at a
// value boundary.
func insideArray(err error) error {
	var fe *frameError
	if errors.As(err, &fe) && fe.atBoundary {
		return &frameError{err: fe.err, atBoundary: false}
	}
	return err
}
