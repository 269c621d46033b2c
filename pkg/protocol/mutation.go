package protocol

import (
	"github.com/faxui/fax/internal/errors"
	"github.com/faxui/fax/pkg/fdom"
)

// EncodeMutations packs a reconciliation pass's mutation record into a
// Mutations frame with the given sequence number.
func EncodeMutations(muts []fdom.Mutation, seq uint64) []byte {
	e := NewEncoder()
	e.WriteByte(byte(FrameMutations))
	e.WriteUvarint(seq)
	e.WriteUvarint(uint64(len(muts)))
	for _, m := range muts {
		e.WriteByte(byte(m.Op))
		e.WriteString(m.NodeID)
		e.WriteString(m.ParentID)
		e.WriteString(m.Name)
		e.WriteString(m.Value)
		e.WriteSvarint(int64(m.Index))
	}
	return e.Bytes()
}

// DecodeMutations unpacks a Mutations frame payload.
func DecodeMutations(f *Frame) ([]fdom.Mutation, error) {
	if f.Type != FrameMutations {
		return nil, errors.New(errors.CodeFrameDecode).
			WithDetail("expected Mutations frame, got %s", f.Type)
	}
	d := NewDecoder(f.Payload)
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
	}
	muts := make([]fdom.Mutation, 0, count)
	for i := 0; i < count; i++ {
		var m fdom.Mutation
		op, err := d.ReadByte()
		if err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		m.Op = fdom.MutationOp(op)
		if m.NodeID, err = d.ReadString(); err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		if m.ParentID, err = d.ReadString(); err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		if m.Name, err = d.ReadString(); err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		if m.Value, err = d.ReadString(); err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		idx, err := d.ReadSvarint()
		if err != nil {
			return nil, errors.New(errors.CodeFrameDecode).Wrap(err)
		}
		m.Index = int(idx)
		muts = append(muts, m)
	}
	return muts, nil
}
