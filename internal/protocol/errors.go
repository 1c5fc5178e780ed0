package protocol

import (
	"errors"
	"fmt"
	"io"
)

// ErrNotConnected is returned when a read or write is attempted on a
// connection whose handles have already been cleared by Close.
var ErrNotConnected = errors.New("not connected to controller")

// FramingError indicates the stream ended before a complete fixed-width
// field could be decoded. Inside an array read it ends the array early;
// anywhere else it is fatal to the exchange.
type FramingError struct {
	Field string // which field was being decoded ("int32", "int8", "command echo", ...)
	Want  int    // bytes needed
	Got   int    // bytes actually read before the stream ended
	Err   error  // underlying error (io.EOF or io.ErrUnexpectedEOF)
}

// Error implements the error interface
func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: stream ended after %d of %d bytes reading %s", e.Got, e.Want, e.Field)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FramingError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates a structurally invalid response, such as a
// negative declared array length. Always fatal.
type ProtocolError struct {
	Command int32  // command the response belongs to
	Message string // human-readable description
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on command %d: %s", e.Command, e.Message)
}

// IsFraming reports whether err is (or wraps) a FramingError.
func IsFraming(err error) bool {
	var fe *FramingError
	return errors.As(err, &fe)
}

// framingOrIO converts the result of an exact read into the package error
// taxonomy: end-of-stream becomes a FramingError carrying the byte counts,
// any other I/O error passes through unchanged.
func framingOrIO(field string, want, got int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FramingError{Field: field, Want: want, Got: got, Err: err}
	}
	return err
}
