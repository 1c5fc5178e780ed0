package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// packInts builds a big-endian reply stream from int32 values.
func packInts(vals ...int32) []byte {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = binary.BigEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func TestReadInt32Array(t *testing.T) {
	tests := []struct {
		name       string
		cmd        int32
		withStatus bool
		strict     bool
		reply      []byte
		want       []int32
		wantErr    bool
	}{
		{
			name:  "parameters response",
			cmd:   3003,
			reply: packInts(3003, 3, 42, 43, -7),
			want:  []int32{42, 43, -7},
		},
		{
			name:       "calculations response carries a status word",
			cmd:        3004,
			withStatus: true,
			reply:      packInts(3004, 0, 2, 99, 100),
			want:       []int32{99, 100},
		},
		{
			name:  "declared length overstates available data",
			cmd:   3003,
			reply: packInts(3003, 5, 1, 2, 3),
			want:  []int32{1, 2, 3},
		},
		{
			name:  "zero length returns empty array",
			cmd:   3003,
			reply: packInts(3003, 0),
			want:  []int32{},
		},
		{
			name:    "negative declared length is a protocol error",
			cmd:     3003,
			reply:   packInts(3003, -1),
			wantErr: true,
		},
		{
			name:  "mismatched echo tolerated by default",
			cmd:   3003,
			reply: packInts(9999, 1, 5),
			want:  []int32{5},
		},
		{
			name:    "mismatched echo fatal in strict mode",
			cmd:     3003,
			strict:  true,
			reply:   packInts(9999, 1, 5),
			wantErr: true,
		},
		{
			name:    "stream ends before echo",
			cmd:     3003,
			reply:   nil,
			wantErr: true,
		},
		{
			name:    "stream ends before length",
			cmd:     3003,
			reply:   packInts(3003),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sent := newTestConn(tt.reply)
			c.Strict = tt.strict

			got, err := c.ReadInt32Array(tt.cmd, tt.withStatus)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadInt32Array() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadInt32Array() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ReadInt32Array() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d = %d, want %d", i, got[i], tt.want[i])
				}
			}

			// Every array read opens with exactly (cmd, 0)
			wantSent := packInts(tt.cmd, 0)
			if !bytes.Equal(sent.Bytes(), wantSent) {
				t.Errorf("request bytes = % X, want % X", sent.Bytes(), wantSent)
			}
		})
	}
}

func TestReadInt32ArrayNegativeLengthError(t *testing.T) {
	c, _ := newTestConn(packInts(3003, -5))
	_, err := c.ReadInt32Array(3003, false)

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if pe.Command != 3003 {
		t.Errorf("ProtocolError.Command = %d, want 3003", pe.Command)
	}
}

func TestReadInt32ArrayZeroLengthConsumesNothing(t *testing.T) {
	// Trailing bytes after the header must remain unread when length is 0.
	reply := append(packInts(3003, 0), 0xDE, 0xAD, 0xBE, 0xEF)
	r := bytes.NewReader(reply)
	var sent bytes.Buffer
	c := NewConn(readWriter{r, &sent})

	got, err := c.ReadInt32Array(3003, false)
	if err != nil {
		t.Fatalf("ReadInt32Array() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadInt32Array() = %v, want empty", got)
	}
	// The buffered reader may have prefetched, but the next decode must
	// still see the untouched trailing bytes.
	next, err := c.RecvInt()
	if err != nil {
		t.Fatalf("RecvInt() after empty array error = %v", err)
	}
	if uint32(next) != 0xDEADBEEF {
		t.Errorf("next int = %08X, want DEADBEEF", uint32(next))
	}
}

func TestReadInt8Array(t *testing.T) {
	tests := []struct {
		name    string
		reply   []byte
		want    []int8
		wantErr bool
	}{
		{
			name:  "visibilities response",
			reply: append(packInts(3005, 4), 0x01, 0x00, 0x01, 0xFF),
			want:  []int8{1, 0, 1, -1},
		},
		{
			name:  "short element stream returns partial array",
			reply: append(packInts(3005, 10), 0x01, 0x01),
			want:  []int8{1, 1},
		},
		{
			name:    "negative length is a protocol error",
			reply:   packInts(3005, -2),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConn(tt.reply)
			got, err := c.ReadInt8Array(3005)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadInt8Array() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadInt8Array() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ReadInt8Array() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}
