package protocol

import (
	"io"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, ^uint64(0)}
	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d", v, got)
		}
		if !d.EOF() {
			t.Errorf("trailing bytes after %d", v)
		}
	}
}

func TestSvarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 63, -64, 1 << 30, -(1 << 30), 1<<62 - 1, -(1 << 62)}
	for _, v := range values {
		e := NewEncoder()
		e.WriteSvarint(v)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadSvarint()
		if err != nil {
			t.Fatalf("ReadSvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d", v, got)
		}
	}
}

func TestSmallValuesEncodeCompactly(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(100)
	if e.Len() != 1 {
		t.Errorf("100 encoded in %d bytes, want 1", e.Len())
	}
	e.Reset()
	e.WriteSvarint(-1)
	if e.Len() != 1 {
		t.Errorf("-1 encoded in %d bytes, want 1", e.Len())
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", ".r.list.42", "unicode ✓ ок"} {
		e := NewEncoder()
		e.WriteString(s)
		d := NewDecoder(e.Bytes())
		got, err := d.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) error = %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello")
	data := e.Bytes()

	d := NewDecoder(data[:len(data)-2])
	if _, err := d.ReadString(); err != io.ErrUnexpectedEOF {
		t.Errorf("truncated string: error = %v, want ErrUnexpectedEOF", err)
	}

	d = NewDecoder(nil)
	if _, err := d.ReadByte(); err != io.ErrUnexpectedEOF {
		t.Errorf("empty buffer: error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestVarintOverflow(t *testing.T) {
	// Eleven continuation bytes exceed the 64-bit range.
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0xFF
	}
	d := NewDecoder(buf)
	if _, err := d.ReadUvarint(); err != ErrVarintOverflow {
		t.Errorf("error = %v, want ErrVarintOverflow", err)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteBool(true)
	e.WriteBool(false)
	d := NewDecoder(e.Bytes())
	if v, err := d.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool() = %v, %v, want true", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v {
		t.Errorf("ReadBool() = %v, %v, want false", v, err)
	}
}
