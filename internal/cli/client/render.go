package client

import (
	"strconv"
	"strings"

	"github.com/yndnr/memkv-go/internal/protocol/resp"
)

// Render formats a server reply for an interactive user:
//
//	OK                  simple string, printed bare
//	(error) ERR ...     error reply
//	(integer) 42        integer reply
//	"some bytes"        bulk string, quoted
//	(nil)               null reply
//	1) "a"              arrays, numbered and indented
//	2) "b"
func Render(v resp.Value) string {
	var b strings.Builder
	render(&b, v, "")
	return b.String()
}

func render(b *strings.Builder, v resp.Value, indent string) {
	switch v.Type {
	case resp.TypeSimpleString:
		b.WriteString(v.Str)
	case resp.TypeError:
		b.WriteString("(error) ")
		b.WriteString(v.Str)
	case resp.TypeInteger:
		b.WriteString("(integer) ")
		b.WriteString(strconv.FormatInt(v.Num, 10))
	case resp.TypeBulkString:
		b.WriteString(strconv.Quote(string(v.Bulk)))
	case resp.TypeNull:
		b.WriteString("(nil)")
	case resp.TypeArray:
		if len(v.Array) == 0 {
			b.WriteString("(empty array)")
			return
		}
		// Nested arrays indent under their index, matching the width of
		// the "N) " prefix.
		for i, elem := range v.Array {
			if i > 0 {
				b.WriteByte('\n')
				b.WriteString(indent)
			}
			prefix := strconv.Itoa(i+1) + ") "
			b.WriteString(prefix)
			render(b, elem, indent+strings.Repeat(" ", len(prefix)))
		}
	}
}
