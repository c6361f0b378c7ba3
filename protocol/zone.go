// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// ZoneDescription describes a contiguous or matrix-shaped partition of a
// controller's LED array.
//
// MatrixLength == 0 iff the trailing matrix block (MatrixHeight,
// MatrixWidth, MatrixValues) is absent. When present, MatrixLength must
// equal 8 + 4*MatrixHeight*MatrixWidth.
type ZoneDescription struct {
	Name     string
	Type     ZoneType
	LedsMin  uint32
	LedsMax  uint32
	LedCount uint32

	// MatrixHeight, MatrixWidth, and MatrixValues are only present on the
	// wire when MatrixLength() > 0.
	MatrixHeight uint32
	MatrixWidth  uint32
	MatrixValues []uint32
}

// zoneFixedSize is the size of the fields following Name's string: Type,
// LedsMin, LedsMax, LedCount (four uint32s) plus the 16-bit matrix_length
// field.
const zoneFixedSize = 4*4 + 2

// MatrixLength returns the wire value of the matrix_length field: zero if
// this zone has no matrix block, or 8 + 4*height*width otherwise.
func (z *ZoneDescription) MatrixLength() uint16 {
	if len(z.MatrixValues) == 0 && z.MatrixHeight == 0 && z.MatrixWidth == 0 {
		return 0
	}
	return uint16(8 + 4*z.MatrixHeight*z.MatrixWidth)
}

// CalcSize returns the exact number of bytes Serialise will produce.
func (z *ZoneDescription) CalcSize() int {
	size := StringSize(z.Name) + zoneFixedSize
	if z.MatrixLength() > 0 {
		size += 8 + 4*int(z.MatrixHeight)*int(z.MatrixWidth)
	}
	return size
}

// Serialise writes z to w.
func (z *ZoneDescription) Serialise(w *Writer) {
	w.PutString(z.Name)
	w.PutU32(uint32(z.Type))
	w.PutU32(z.LedsMin)
	w.PutU32(z.LedsMax)
	w.PutU32(z.LedCount)

	matrixLength := z.MatrixLength()
	w.PutU16(matrixLength)
	if matrixLength == 0 {
		return
	}
	w.PutU32(z.MatrixHeight)
	w.PutU32(z.MatrixWidth)
	for _, v := range z.MatrixValues {
		w.PutU32(v)
	}
}

// Deserialise reads z from r.
//
// Deserialise reads the matrix block iff matrix_length > 0; if present and
// the declared matrix_length is inconsistent with 8 + 4*height*width, it
// fails with KindMalformed.
func (z *ZoneDescription) Deserialise(r *Reader) error {
	var err error
	if z.Name, err = r.GetString(); err != nil {
		return err
	}
	zoneType, err := r.GetU32()
	if err != nil {
		return err
	}
	z.Type = ZoneType(zoneType)
	if z.LedsMin, err = r.GetU32(); err != nil {
		return err
	}
	if z.LedsMax, err = r.GetU32(); err != nil {
		return err
	}
	if z.LedCount, err = r.GetU32(); err != nil {
		return err
	}

	matrixLength, err := r.GetU16()
	if err != nil {
		return err
	}
	if matrixLength == 0 {
		z.MatrixHeight, z.MatrixWidth, z.MatrixValues = 0, 0, nil
		return nil
	}

	if z.MatrixHeight, err = r.GetU32(); err != nil {
		return err
	}
	if z.MatrixWidth, err = r.GetU32(); err != nil {
		return err
	}
	expected := 8 + 4*z.MatrixHeight*z.MatrixWidth
	if uint32(matrixLength) != expected {
		return Errorf(KindMalformed,
			"zone %q: matrix_length %d is inconsistent with 8 + 4*%d*%d = %d",
			z.Name, matrixLength, z.MatrixHeight, z.MatrixWidth, expected)
	}

	cells := int(z.MatrixHeight) * int(z.MatrixWidth)
	z.MatrixValues = make([]uint32, cells)
	for i := range z.MatrixValues {
		if z.MatrixValues[i], err = r.GetU32(); err != nil {
			return err
		}
	}
	return nil
}
