// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// LEDDescription describes a single addressable LED.
type LEDDescription struct {
	Name  string
	Value uint32
}

// CalcSize returns the exact number of bytes Serialise will produce.
func (l *LEDDescription) CalcSize() int {
	return StringSize(l.Name) + 4
}

// Serialise writes l to w.
func (l *LEDDescription) Serialise(w *Writer) {
	w.PutString(l.Name)
	w.PutU32(l.Value)
}

// Deserialise reads l from r.
func (l *LEDDescription) Deserialise(r *Reader) error {
	name, err := r.GetString()
	if err != nil {
		return err
	}
	value, err := r.GetU32()
	if err != nil {
		return err
	}
	l.Name, l.Value = name, value
	return nil
}
