package protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/muurk/luxctl/internal/logging"
	"go.uber.org/zap"
)

// Luxtronik command identifiers
const (
	CmdWriteParameter   int32 = 3002
	CmdReadParameters   int32 = 3003
	CmdReadCalculations int32 = 3004
	CmdReadVisibilities int32 = 3005
)

// Conn wraps one side of a controller connection with buffered I/O and the
// big-endian integer codec. It is created by the session when the TCP
// connection is established and discarded on close.
type Conn struct {
	r *bufio.Reader
	w *bufio.Writer

	// Strict makes a mismatched command echo a ProtocolError instead of a
	// logged-and-tolerated event. Off by default; controller echo semantics
	// are not reliable enough to validate unconditionally.
	Strict bool
}

// NewConn wraps rw in a buffered protocol connection.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{
		r: bufio.NewReader(rw),
		w: bufio.NewWriter(rw),
	}
}

// SendInts packs the command and arguments into a single big-endian buffer,
// writes it, and flushes so the bytes have been handed to the transport
// before it returns.
func (c *Conn) SendInts(cmd int32, args ...int32) error {
	if c == nil {
		return ErrNotConnected
	}
	buf := make([]byte, 0, 4*(1+len(args)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(cmd))
	for _, a := range args {
		buf = binary.BigEndian.AppendUint32(buf, uint32(a))
	}
	logging.LogFrame("send", cmd, buf)
	if _, err := c.w.Write(buf); err != nil {
		return err
	}
	return c.w.Flush()
}

// RecvInt reads exactly 4 bytes and decodes one big-endian signed 32-bit
// integer. A short read is a FramingError.
func (c *Conn) RecvInt() (int32, error) {
	if c == nil {
		return 0, ErrNotConnected
	}
	var buf [4]byte
	n, err := io.ReadFull(c.r, buf[:])
	if err != nil {
		return 0, framingOrIO("int32", 4, n, err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// RecvByte reads exactly 1 byte and decodes one signed byte. Used by the
// visibilities response, whose elements are int8 rather than int32.
func (c *Conn) RecvByte() (int8, error) {
	if c == nil {
		return 0, ErrNotConnected
	}
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, framingOrIO("int8", 1, 0, err)
	}
	return int8(b), nil
}

// checkEcho reads the command echo at the head of a response. A mismatch is
// tolerated (debug-logged) unless Strict is set.
func (c *Conn) checkEcho(cmd int32) error {
	echo, err := c.RecvInt()
	if err != nil {
		return err
	}
	if echo != cmd {
		if c.Strict {
			return &ProtocolError{
				Command: cmd,
				Message: fmt.Sprintf("unexpected command echo %d", echo),
			}
		}
		logging.Debug("Command echo mismatch",
			zap.Int32("sent", cmd),
			zap.Int32("echo", echo),
		)
	}
	return nil
}
