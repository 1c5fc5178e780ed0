// Package protocol implements the Luxtronik heat-pump controller wire protocol.
//
// This package handles framing, encoding, and decoding of the binary protocol
// spoken by Luxtronik 2.0/2.1 controllers on TCP port 8889. The protocol has
// no delimiters: every field is a fixed-width big-endian value, so framing is
// purely arithmetic and the only framing failure mode is premature stream
// termination.
//
// # Protocol Overview
//
// A request is a command identifier followed by zero or more arguments, all
// signed 32-bit big-endian integers with no length prefix (the controller
// infers the argument count from the command):
//   - 3002 (index, value): write one parameter, echoes two ints back
//   - 3003 (0): read all parameters as a length-prefixed int32 array
//   - 3004 (0): read all calculations; response carries an extra status int
//     between the command echo and the length
//   - 3005 (0): read all visibilities as a length-prefixed int8 array
//
// # Array Reads
//
// A length-prefixed array response is: command echo, optional status word,
// declared length, then the elements. The declared length is authoritative
// but occasionally overstates the data the controller actually delivers, so
// a short read while decoding an element ends the array early and returns
// the partial result rather than an error. A negative declared length is a
// structural protocol error and is always fatal.
//
// By default a mismatched command echo is logged and tolerated, matching
// observed controller behavior. Strict validation can be enabled per
// connection for callers that prefer to fail fast.
//
// # Error Handling
//
// The package distinguishes between:
//   - Framing errors: the stream ended before a fixed-width field completed
//   - Protocol errors: structurally invalid responses (negative length,
//     mismatched echo under strict validation)
//   - I/O errors: everything else, passed through unchanged
//
// All errors are wrapped with context for debugging.
//
// # Thread Safety
//
// A Conn is not safe for concurrent use; serialization is the session's
// responsibility (see internal/session).
package protocol
