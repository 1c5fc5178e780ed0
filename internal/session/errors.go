package session

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// ErrAlreadyConnected is returned by Connect when the session already holds
// a live connection. Sessions are single-use per connection; reconnecting
// requires Close first.
var ErrAlreadyConnected = errors.New("session already connected")

// ConnectKind classifies why a connection attempt failed.
type ConnectKind int

const (
	ConnectFailed  ConnectKind = iota // generic dial failure
	ConnectRefused                    // controller refused the connection
	ConnectTimeout                    // dial timed out
	ConnectDNS                        // hostname did not resolve
)

// String returns a human-readable name for the failure kind
func (k ConnectKind) String() string {
	switch k {
	case ConnectRefused:
		return "connection refused"
	case ConnectTimeout:
		return "connection timed out"
	case ConnectDNS:
		return "DNS resolution failed"
	default:
		return "connection failed"
	}
}

// ConnectionError reports a failed connection attempt. The session makes a
// single attempt per lifetime; it never retries internally.
type ConnectionError struct {
	Addr string
	Kind ConnectKind
	Err  error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Addr, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// classifyDialError wraps a dial failure with its cause category.
func classifyDialError(addr string, err error) *ConnectionError {
	kind := ConnectFailed

	var dnsErr *net.DNSError
	switch {
	case os.IsTimeout(err):
		kind = ConnectTimeout
	case errors.As(err, &dnsErr):
		kind = ConnectDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = ConnectRefused
	}

	return &ConnectionError{Addr: addr, Kind: kind, Err: err}
}
