// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// DeviceDescription describes a single RGB-capable controller: its
// identity, the modes/zones/LEDs it exposes, and its current per-LED
// colors.
//
// DeviceDescription is immutable once materialised for a given fetch; it is
// replaced wholesale on the next ReplyControllerData or when a
// DeviceListUpdated notification prompts a refresh.
type DeviceDescription struct {
	DeviceType  DeviceType
	Name        string
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
	ActiveMode  uint32

	Modes  []ModeDescription
	Zones  []ZoneDescription
	LEDs   []LEDDescription
	Colors []Color
}

// CalcSize returns the exact number of bytes Serialise will produce.
func (d *DeviceDescription) CalcSize() int {
	size := 4 // DeviceType
	size += StringSize(d.Name)
	size += StringSize(d.Vendor)
	size += StringSize(d.Description)
	size += StringSize(d.Version)
	size += StringSize(d.Serial)
	size += StringSize(d.Location)
	size += 4 // ActiveMode

	size += 2 // mode count
	for i := range d.Modes {
		size += d.Modes[i].CalcSize()
	}
	size += 2 // zone count
	for i := range d.Zones {
		size += d.Zones[i].CalcSize()
	}
	size += 2 // led count
	for i := range d.LEDs {
		size += d.LEDs[i].CalcSize()
	}
	size += 2 + len(d.Colors)*ColorSize // color count + colors

	return size
}

// Serialise writes d to w.
func (d *DeviceDescription) Serialise(w *Writer) {
	w.PutU32(uint32(d.DeviceType))
	w.PutString(d.Name)
	w.PutString(d.Vendor)
	w.PutString(d.Description)
	w.PutString(d.Version)
	w.PutString(d.Serial)
	w.PutString(d.Location)
	w.PutU32(d.ActiveMode)

	w.PutU16(uint16(len(d.Modes)))
	for i := range d.Modes {
		d.Modes[i].Serialise(w)
	}
	w.PutU16(uint16(len(d.Zones)))
	for i := range d.Zones {
		d.Zones[i].Serialise(w)
	}
	w.PutU16(uint16(len(d.LEDs)))
	for i := range d.LEDs {
		d.LEDs[i].Serialise(w)
	}
	w.PutU16(uint16(len(d.Colors)))
	for _, c := range d.Colors {
		w.PutColor(c)
	}
}

// Deserialise reads d from r.
//
// Deserialise enforces ActiveMode < len(Modes) and len(Colors) ==
// len(LEDs), failing with KindMalformed otherwise.
func (d *DeviceDescription) Deserialise(r *Reader) error {
	deviceType, err := r.GetU32()
	if err != nil {
		return err
	}
	d.DeviceType = DeviceType(deviceType)

	if d.Name, err = r.GetString(); err != nil {
		return err
	}
	if d.Vendor, err = r.GetString(); err != nil {
		return err
	}
	if d.Description, err = r.GetString(); err != nil {
		return err
	}
	if d.Version, err = r.GetString(); err != nil {
		return err
	}
	if d.Serial, err = r.GetString(); err != nil {
		return err
	}
	if d.Location, err = r.GetString(); err != nil {
		return err
	}
	if d.ActiveMode, err = r.GetU32(); err != nil {
		return err
	}

	modeCount, err := r.GetU16()
	if err != nil {
		return err
	}
	d.Modes = make([]ModeDescription, modeCount)
	for i := range d.Modes {
		if err := d.Modes[i].Deserialise(r); err != nil {
			return err
		}
	}

	zoneCount, err := r.GetU16()
	if err != nil {
		return err
	}
	d.Zones = make([]ZoneDescription, zoneCount)
	for i := range d.Zones {
		if err := d.Zones[i].Deserialise(r); err != nil {
			return err
		}
	}

	ledCount, err := r.GetU16()
	if err != nil {
		return err
	}
	d.LEDs = make([]LEDDescription, ledCount)
	for i := range d.LEDs {
		if err := d.LEDs[i].Deserialise(r); err != nil {
			return err
		}
	}

	colorCount, err := r.GetU16()
	if err != nil {
		return err
	}
	d.Colors = make([]Color, colorCount)
	for i := range d.Colors {
		if d.Colors[i], err = r.GetColor(); err != nil {
			return err
		}
	}

	if int(d.ActiveMode) >= len(d.Modes) {
		return Errorf(KindMalformed,
			"active_mode %d out of range for %d modes", d.ActiveMode, len(d.Modes))
	}
	if len(d.Colors) != len(d.LEDs) {
		return Errorf(KindMalformed,
			"color count %d does not match LED count %d", len(d.Colors), len(d.LEDs))
	}

	return nil
}
