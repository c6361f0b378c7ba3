// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// ModeDescription describes a single lighting effect supported by a
// controller.
//
// Several fields are semantically optional, gated by Flags: Speed,
// SpeedMin, and SpeedMax are only meaningful when Flags.HasSpeed() is true;
// Direction is only meaningful when Flags.HasDirection() is true; Colors is
// only nonempty when ColorMode != ColorModeNone. The wire layout always
// includes every fixed field regardless of Flags; only the trailing color
// list's count may be zero.
type ModeDescription struct {
	Name      string
	Value     uint32
	Flags     ModeFlags
	SpeedMin  uint32
	SpeedMax  uint32
	ColorsMin uint32
	ColorsMax uint32
	Speed     uint32
	Direction Direction
	ColorMode ColorMode
	Colors    []Color
}

// modeFixedSize is the size of every fixed-width field following the name
// string: Value, Flags, SpeedMin, SpeedMax, ColorsMin, ColorsMax, Speed,
// Direction, ColorMode (nine uint32s) plus the 16-bit color count.
const modeFixedSize = 9*4 + 2

// CalcSize returns the exact number of bytes Serialise will produce.
func (m *ModeDescription) CalcSize() int {
	return StringSize(m.Name) + modeFixedSize + len(m.Colors)*ColorSize
}

// Serialise writes m to w.
//
// Serialise always writes every fixed field, and the color list's 16-bit
// count, which may legitimately be zero.
func (m *ModeDescription) Serialise(w *Writer) {
	w.PutString(m.Name)
	w.PutU32(m.Value)
	w.PutU32(uint32(m.Flags))
	w.PutU32(m.SpeedMin)
	w.PutU32(m.SpeedMax)
	w.PutU32(m.ColorsMin)
	w.PutU32(m.ColorsMax)
	w.PutU32(m.Speed)
	w.PutU32(uint32(m.Direction))
	w.PutU32(uint32(m.ColorMode))
	w.PutU16(uint16(len(m.Colors)))
	for _, c := range m.Colors {
		w.PutColor(c)
	}
}

// Deserialise reads m from r.
//
// Deserialise reads all fixed fields unconditionally and then the color
// list; it does not validate Flags against the other field contents, since
// the server is authoritative.
func (m *ModeDescription) Deserialise(r *Reader) error {
	var err error
	if m.Name, err = r.GetString(); err != nil {
		return err
	}
	if m.Value, err = r.GetU32(); err != nil {
		return err
	}
	flags, err := r.GetU32()
	if err != nil {
		return err
	}
	m.Flags = ModeFlags(flags)
	if m.SpeedMin, err = r.GetU32(); err != nil {
		return err
	}
	if m.SpeedMax, err = r.GetU32(); err != nil {
		return err
	}
	if m.ColorsMin, err = r.GetU32(); err != nil {
		return err
	}
	if m.ColorsMax, err = r.GetU32(); err != nil {
		return err
	}
	if m.Speed, err = r.GetU32(); err != nil {
		return err
	}
	direction, err := r.GetU32()
	if err != nil {
		return err
	}
	m.Direction = Direction(direction)
	colorMode, err := r.GetU32()
	if err != nil {
		return err
	}
	m.ColorMode = ColorMode(colorMode)

	count, err := r.GetU16()
	if err != nil {
		return err
	}
	if count == 0 {
		m.Colors = nil
		return nil
	}
	m.Colors = make([]Color, count)
	for i := range m.Colors {
		if m.Colors[i], err = r.GetColor(); err != nil {
			return err
		}
	}
	return nil
}
