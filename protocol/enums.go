// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// DeviceType identifies the kind of hardware a controller represents.
type DeviceType uint32

// Recognised DeviceType values.
const (
	DeviceTypeMotherboard DeviceType = iota
	DeviceTypeDRAM
	DeviceTypeGPU
	DeviceTypeCooler
	DeviceTypeLedStrip
	DeviceTypeKeyboard
	DeviceTypeMouse
	DeviceTypeMouseMat
	DeviceTypeHeadset
	DeviceTypeHeadsetStand
	DeviceTypeGamepad
	DeviceTypeUnknown
)

// Direction is the 32-bit enum gating a ModeDescription's direction field.
//
// It is only meaningful when one of the mode's direction flag bits is set;
// the server is authoritative and this package does not validate that.
type Direction uint32

// Recognised Direction values.
const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
	DirectionHorizontal
	DirectionVertical
)

// ColorMode is the 32-bit enum describing how a ModeDescription's color list
// is interpreted.
type ColorMode uint32

// Recognised ColorMode values.
const (
	ColorModeNone ColorMode = iota
	ColorModePerLED
	ColorModeModeSpecific
	ColorModeRandom
)

// ZoneType is the 32-bit enum describing a ZoneDescription's shape.
type ZoneType uint32

// Recognised ZoneType values.
const (
	ZoneTypeSingle ZoneType = iota
	ZoneTypeLinear
	ZoneTypeMatrix
)

// ModeFlags is an OR-able bitset describing which of a ModeDescription's
// optional fields are meaningful. Unknown bits are preserved round-trip and
// never rejected.
type ModeFlags uint32

// Recognised ModeFlags bits.
const (
	ModeFlagHasSpeed ModeFlags = 1 << iota
	ModeFlagHasDirectionLR
	ModeFlagHasDirectionUD
	ModeFlagHasDirectionHV
	ModeFlagHasColor
	ModeFlagHasRandomColor
	ModeFlagManualSave
	ModeFlagAutomaticSave
)

// HasSpeed reports whether the speed/speed_min/speed_max fields are
// meaningful for this flag set.
func (f ModeFlags) HasSpeed() bool { return f&ModeFlagHasSpeed != 0 }

// HasDirection reports whether any direction bit is set, i.e. whether the
// direction field is meaningful.
func (f ModeFlags) HasDirection() bool {
	return f&(ModeFlagHasDirectionLR|ModeFlagHasDirectionUD|ModeFlagHasDirectionHV) != 0
}
