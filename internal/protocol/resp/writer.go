package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer encodes values onto a byte stream.
//
// Writes are buffered; callers flush once per reply. A connection has a
// single writer goroutine, so encoded values are never interleaved.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a Writer wrapping w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteValue serializes one value. The bytes reach the stream on Flush.
func (w *Writer) WriteValue(v Value) error {
	switch v.Type {
	case TypeNull:
		_, err := w.bw.WriteString("$-1\r\n")
		return err

	case TypeSimpleString:
		if strings.ContainsAny(v.Str, "\r\n") {
			return fmt.Errorf("resp: simple string contains line break")
		}
		_, err := w.bw.WriteString("+" + v.Str + "\r\n")
		return err

	case TypeError:
		if strings.ContainsAny(v.Str, "\r\n") {
			return fmt.Errorf("resp: error string contains line break")
		}
		_, err := w.bw.WriteString("-" + v.Str + "\r\n")
		return err

	case TypeInteger:
		_, err := w.bw.WriteString(":" + strconv.FormatInt(v.Num, 10) + "\r\n")
		return err

	case TypeBulkString:
		if _, err := w.bw.WriteString("$" + strconv.Itoa(len(v.Bulk)) + "\r\n"); err != nil {
			return err
		}
		if _, err := w.bw.Write(v.Bulk); err != nil {
			return err
		}
		_, err := w.bw.WriteString("\r\n")
		return err

	case TypeArray:
		if _, err := w.bw.WriteString("*" + strconv.Itoa(len(v.Array)) + "\r\n"); err != nil {
			return err
		}
		for _, elem := range v.Array {
			if err := w.WriteValue(elem); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("resp: unsupported value type %s", v.Type)
	}
}

// Flush writes buffered bytes to the underlying stream.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
