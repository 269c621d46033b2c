package protocol

import (
	"github.com/faxui/fax/internal/errors"
	"github.com/faxui/fax/pkg/fdom"
)

// EncodeEvent packs a host event into an Event frame with the given
// sequence number.
func EncodeEvent(ev fdom.Event, seq uint64) []byte {
	e := NewEncoder()
	e.WriteByte(byte(FrameEvent))
	e.WriteUvarint(seq)
	e.WriteString(ev.NodeID)
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)
	e.WriteBool(ev.Checked)
	e.WriteString(ev.Key)
	return e.Bytes()
}

// DecodeEvent unpacks an Event frame payload.
func DecodeEvent(f *Frame) (fdom.Event, error) {
	var ev fdom.Event
	if f.Type != FrameEvent {
		return ev, errors.New(errors.CodeFrameDecode).
			WithDetail("expected Event frame, got %s", f.Type)
	}
	d := NewDecoder(f.Payload)
	var err error
	if ev.NodeID, err = d.ReadString(); err != nil {
		return ev, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return ev, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return ev, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	if ev.Checked, err = d.ReadBool(); err != nil {
		return ev, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	if ev.Key, err = d.ReadString(); err != nil {
		return ev, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	return ev, nil
}
