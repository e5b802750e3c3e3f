// Package resp implements the memkv wire protocol.
//
// The protocol is a RESP-style symmetric encoding: requests and replies
// are both Values, a tagged union of simple strings, errors, integers,
// bulk strings, arrays, and null. A well-formed request is always an
// array of bulk strings (command name plus arguments); a reply may be
// any variant.
//
// Wire format:
//
//	+OK\r\n                  simple string
//	-ERR message\r\n         error
//	:1000\r\n                integer
//	$5\r\nhello\r\n          bulk string (length-prefixed, binary safe)
//	*2\r\n<value><value>     array (recursive)
//	$-1\r\n                  null
//
// Reader and Writer wrap a byte stream and convert between Values and
// bytes. Both are used by the server and by the CLI client; the codec
// carries no command semantics.
//
// Malformed input is reported as an error wrapping ErrMalformedInput.
// Recoverable reports whether the reader is still positioned at a value
// boundary, which decides whether a connection can survive the error.
package resp
