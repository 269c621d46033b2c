package protocol

import (
	"github.com/faxui/fax/internal/errors"
)

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FrameEvent     FrameType = 0x01 // Client → Server host events
	FrameMutations FrameType = 0x02 // Server → Client mutation batch
	FrameControl   FrameType = 0x03 // Ping and other control messages
)

// String returns a readable name for the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameEvent:
		return "Event"
	case FrameMutations:
		return "Mutations"
	case FrameControl:
		return "Control"
	default:
		return "Unknown"
	}
}

// MaxFrameSize is the largest accepted encoded frame.
const MaxFrameSize = 1 << 20

// Frame is one protocol message: a type byte, a varint sequence
// number, and a type-specific payload filling the rest of the buffer.
type Frame struct {
	Type    FrameType
	Seq     uint64
	Payload []byte
}

// Encode serializes the frame.
func (f *Frame) Encode() []byte {
	e := NewEncoder()
	e.WriteByte(byte(f.Type))
	e.WriteUvarint(f.Seq)
	e.buf = append(e.buf, f.Payload...)
	return e.Bytes()
}

// DecodeFrame parses a frame from a complete message buffer, as
// delivered by a websocket read.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) > MaxFrameSize {
		return nil, errors.New(errors.CodeFrameTooLarge).
			WithDetail("%d bytes", len(data))
	}
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	return &Frame{
		Type:    FrameType(t),
		Seq:     seq,
		Payload: data[len(data)-d.Remaining():],
	}, nil
}
