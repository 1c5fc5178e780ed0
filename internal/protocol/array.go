package protocol

import (
	"fmt"

	"github.com/muurk/luxctl/internal/logging"
	"go.uber.org/zap"
)

// ReadInt32Array performs one length-prefixed array read: it sends
// (cmd, 0), consumes the command echo (plus a status word when withStatus is
// set), reads the declared length, then collects up to that many int32
// elements.
//
// The declared length occasionally overstates what the controller actually
// delivers, so a framing error while decoding an element ends the array early
// and the partial result is returned without error. Treating it as fatal
// would break every read cycle against real hardware. Any other error
// propagates unchanged.
func (c *Conn) ReadInt32Array(cmd int32, withStatus bool) ([]int32, error) {
	if err := c.SendInts(cmd, 0); err != nil {
		return nil, err
	}
	if err := c.checkEcho(cmd); err != nil {
		return nil, err
	}
	if withStatus {
		stat, err := c.RecvInt()
		if err != nil {
			return nil, err
		}
		logging.Debug("Response status", zap.Int32("cmd", cmd), zap.Int32("stat", stat))
	}
	length, err := c.recvLength(cmd)
	if err != nil {
		return nil, err
	}

	data := make([]int32, 0, length)
	for i := int32(0); i < length; i++ {
		val, err := c.RecvInt()
		if err != nil {
			if IsFraming(err) {
				logging.Debug("Short array read",
					zap.Int32("cmd", cmd),
					zap.Int32("declared", length),
					zap.Int("received", len(data)),
				)
				break
			}
			return nil, err
		}
		data = append(data, val)
	}
	return data, nil
}

// ReadInt8Array is the int8-element variant of ReadInt32Array, used by the
// visibilities command (3005). Same header layout without a status word,
// same short-read tolerance.
func (c *Conn) ReadInt8Array(cmd int32) ([]int8, error) {
	if err := c.SendInts(cmd, 0); err != nil {
		return nil, err
	}
	if err := c.checkEcho(cmd); err != nil {
		return nil, err
	}
	length, err := c.recvLength(cmd)
	if err != nil {
		return nil, err
	}

	data := make([]int8, 0, length)
	for i := int32(0); i < length; i++ {
		val, err := c.RecvByte()
		if err != nil {
			if IsFraming(err) {
				logging.Debug("Short array read",
					zap.Int32("cmd", cmd),
					zap.Int32("declared", length),
					zap.Int("received", len(data)),
				)
				break
			}
			return nil, err
		}
		data = append(data, val)
	}
	return data, nil
}

// recvLength reads and validates the declared element count.
func (c *Conn) recvLength(cmd int32) (int32, error) {
	length, err := c.RecvInt()
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, &ProtocolError{
			Command: cmd,
			Message: fmt.Sprintf("negative declared length %d", length),
		}
	}
	return length, nil
}
