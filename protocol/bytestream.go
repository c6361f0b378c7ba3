// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	"encoding/binary"

	"github.com/openrgb-go/orgbclient/support/byteslicereader"
)

// Writer is an append-only output cursor over a byte buffer.
//
// The caller is expected to size Buffer ahead of time (generally via a
// record's calcSize method); Writer never fails.
type Writer struct {
	// Buffer accumulates the serialised bytes.
	Buffer []byte
}

// NewWriter returns a Writer with its buffer pre-allocated to size.
func NewWriter(size int) *Writer {
	return &Writer{Buffer: make([]byte, 0, size)}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte { return w.Buffer }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.Buffer) }

// PutU8 appends a single byte.
func (w *Writer) PutU8(v uint8) { w.Buffer = append(w.Buffer, v) }

// PutU16 appends a little-endian uint16.
func (w *Writer) PutU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Buffer = append(w.Buffer, b[:]...)
}

// PutU32 appends a little-endian uint32.
func (w *Writer) PutU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Buffer = append(w.Buffer, b[:]...)
}

// PutBytes appends a raw byte slice verbatim.
func (w *Writer) PutBytes(v []byte) { w.Buffer = append(w.Buffer, v...) }

// PutColor appends a Color as {R,G,B,0}.
func (w *Writer) PutColor(c Color) {
	w.Buffer = append(w.Buffer, c.R, c.G, c.B, 0)
}

// PutString appends a length-prefixed string: a 16-bit length L followed by
// exactly L bytes whose final byte is a zero terminator. L counts the
// terminator.
func (w *Writer) PutString(s string) {
	w.PutU16(uint16(len(s) + 1))
	w.Buffer = append(w.Buffer, s...)
	w.Buffer = append(w.Buffer, 0)
}

// StringSize returns the number of bytes PutString(s) would write.
func StringSize(s string) int { return 2 + len(s) + 1 }

// Reader is a bounded input cursor over a byte buffer.
//
// Reader embeds byteslicereader.R, adapted from a zero-copy slice reader, to
// get its Peek/Next/ReadByte primitives; every Get* method here translates a
// short read into a KindTruncated *Error instead of io.EOF.
type Reader struct {
	byteslicereader.R
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{R: byteslicereader.R{Buffer: buf}}
}

func (r *Reader) truncated(field string) error {
	return Errorf(KindTruncated, "truncated reading %s (%d bytes remaining)", field, r.Remaining())
}

// GetU8 reads a single byte.
func (r *Reader) GetU8() (uint8, error) {
	v, err := r.ReadByte()
	if err != nil {
		return 0, r.truncated("u8")
	}
	return v, nil
}

// GetU16 reads a little-endian uint16.
func (r *Reader) GetU16() (uint16, error) {
	b, _ := r.Next(2)
	if len(b) < 2 {
		return 0, r.truncated("u16")
	}
	return binary.LittleEndian.Uint16(b), nil
}

// GetU32 reads a little-endian uint32.
func (r *Reader) GetU32() (uint32, error) {
	b, _ := r.Next(4)
	if len(b) < 4 {
		return 0, r.truncated("u32")
	}
	return binary.LittleEndian.Uint32(b), nil
}

// GetBytes reads n raw bytes.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	b, _ := r.Next(n)
	if len(b) < n {
		return nil, r.truncated("bytes")
	}
	return b, nil
}

// GetColor reads a 4-byte Color, discarding the trailing pad byte.
func (r *Reader) GetColor() (Color, error) {
	b, err := r.GetBytes(4)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// GetString reads a length-prefixed string: a 16-bit length L followed by L
// bytes whose final byte must be the zero terminator.
func (r *Reader) GetString() (string, error) {
	l, err := r.GetU16()
	if err != nil {
		return "", r.truncated("string length")
	}
	if l == 0 {
		return "", Errorf(KindMalformed, "string length is zero (must include NUL terminator)")
	}
	b, err := r.GetBytes(int(l))
	if err != nil {
		return "", r.truncated("string data")
	}
	if b[len(b)-1] != 0 {
		return "", Errorf(KindMalformed, "string is not NUL-terminated")
	}
	return string(b[:len(b)-1]), nil
}
