package resp

import (
	"bytes"
	"strings"
	"testing"
)

// ============================================================
// WriteValue Tests - Byte-Exact Encodings
// ============================================================

func TestWriteValue_Encodings(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"simple string", NewSimpleString("OK"), "+OK\r\n"},
		{"PONG", NewSimpleString("PONG"), "+PONG\r\n"},
		{"error", NewError("ERR unknown command 'FOO'"), "-ERR unknown command 'FOO'\r\n"},
		{"integer zero", NewInteger(0), ":0\r\n"},
		{"integer positive", NewInteger(3600), ":3600\r\n"},
		{"integer negative", NewInteger(-2), ":-2\r\n"},
		{"bulk string", NewBulkString("hello"), "$5\r\nhello\r\n"},
		{"empty bulk string", NewBulkString(""), "$0\r\n\r\n"},
		{"nil bulk slice is empty not null", NewBulk(nil), "$0\r\n\r\n"},
		{"binary bulk", NewBulk([]byte{0x00, 0x01, 0x02}), "$3\r\n\x00\x01\x02\r\n"},
		{"null", NewNull(), "$-1\r\n"},
		{"empty array", NewArray(), "*0\r\n"},
		{
			name:  "flat array",
			value: NewArray(NewBulkString("GET"), NewBulkString("key")),
			want:  "*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n",
		},
		{
			name:  "nested array",
			value: NewArray(NewInteger(1), NewArray(NewSimpleString("a"))),
			want:  "*2\r\n:1\r\n*1\r\n+a\r\n",
		},
		{
			name:  "array with null element",
			value: NewArray(NewBulkString("GET"), NewNull()),
			want:  "*2\r\n$3\r\nGET\r\n$-1\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)

			if err := w.WriteValue(tt.value); err != nil {
				t.Fatalf("WriteValue error: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// ============================================================
// WriteValue Tests - Rejected Values
// ============================================================

func TestWriteValue_RejectsLineBreaks(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"simple string with CR", NewSimpleString("bad\rvalue")},
		{"simple string with LF", NewSimpleString("bad\nvalue")},
		{"error with CRLF", NewError("bad\r\nvalue")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)

			if err := w.WriteValue(tt.value); err == nil {
				t.Error("expected error for line break in line-oriented value")
			}
		})
	}
}

// ============================================================
// Round-Trip Tests
// ============================================================

func TestRoundTrip(t *testing.T) {
	values := []Value{
		NewNull(),
		NewSimpleString(""),
		NewSimpleString("OK"),
		NewSimpleString("PONG"),
		NewError("ERR wrong number of arguments for 'SET' command"),
		NewInteger(0),
		NewInteger(-1),
		NewInteger(9223372036854775807),
		NewInteger(-9223372036854775808),
		NewBulkString(""),
		NewBulkString("hello"),
		NewBulk([]byte{0, 1, 2, 3, 255}),
		NewBulk([]byte("payload\r\nwith\r\nterminators")),
		NewArray(),
		NewArray(NewBulkString("PING")),
		NewArray(NewBulkString("SET"), NewBulkString("foo"), NewBulkString("bar"),
			NewBulkString("PX"), NewBulkString("50")),
		NewArray(NewNull(), NewInteger(5), NewSimpleString("x")),
		NewArray(NewArray(NewArray(NewBulkString("deep")))),
	}

	for _, v := range values {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		if err := w.WriteValue(v); err != nil {
			t.Fatalf("encode %+v: %v", v, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("flush %+v: %v", v, err)
		}

		r := NewReader(strings.NewReader(buf.String()))
		got, err := r.ReadValue()
		if err != nil {
			t.Fatalf("decode %q: %v", buf.String(), err)
		}

		if !got.Equal(v) {
			t.Errorf("round trip of %+v gave %+v (wire %q)", v, got, buf.String())
		}
	}
}
