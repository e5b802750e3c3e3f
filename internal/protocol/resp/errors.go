package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports a wire framing violation: bad type tag,
	// non-numeric or negative length, missing terminator, or a stream
	// closed in the middle of a value.
	ErrMalformedInput = errors.New("resp: malformed input")

	// ErrLimitExceeded reports input that violates a protocol limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// frameError carries boundary information alongside a framing violation.
// atBoundary is true when the offending bytes were fully consumed as a
// CRLF-terminated line, leaving the reader at the start of the next value.
type frameError struct {
	err        error
	atBoundary bool
}

func (e *frameError) Error() string { return e.err.Error() }

func (e *frameError) Unwrap() error { return e.err }

// Recoverable reports whether the reader is still positioned at a value
// boundary after err. A recoverable malformed request can be answered
// with an error reply and the connection kept; anything else has
// desynchronized the stream and the connection must be torn down.
func Recoverable(err error) bool {
	var fe *frameError
	return errors.As(err, &fe) && fe.atBoundary
}

// malformed builds a framing violation error. atBoundary follows the
// frameError contract above.
func malformed(atBoundary bool, format string, args ...any) error {
	return &frameError{
		err:        fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...)),
		atBoundary: atBoundary,
	}
}
