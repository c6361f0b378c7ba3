// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package inventory

import (
	"context"

	"github.com/openrgb-go/orgbclient/client"
	"github.com/openrgb-go/orgbclient/protocol"
)

// Mutable wraps a single controller's LED array, offering a method of
// setting desired colors and syncing only what changed.
//
// Mutable is not safe for concurrent use; concurrent callers must lock
// around it.
type Mutable struct {
	c         *client.Client
	deviceIdx uint32

	leds     []ledState
	allDirty bool
	anyDirty bool
}

type ledState struct {
	color    protocol.Color
	modified bool
}

// NewMutable returns a Mutable for deviceIdx with numLEDs LEDs, all
// initialized to the zero color and considered unmodified.
//
// numLEDs is typically len(description.LEDs) for a description fetched via
// Registry.Refresh.
func NewMutable(c *client.Client, deviceIdx uint32, numLEDs int) *Mutable {
	return &Mutable{
		c:         c,
		deviceIdx: deviceIdx,
		leds:      make([]ledState, numLEDs),
	}
}

// NumLEDs returns the number of LEDs tracked for this controller.
func (m *Mutable) NumLEDs() int { return len(m.leds) }

// Resize adjusts the tracked LED count to numLEDs, as happens after a
// ResizeZone call changes the controller's LED layout. Existing LED state
// within the new bounds is preserved; new slots start at the zero color.
func (m *Mutable) Resize(numLEDs int) {
	if numLEDs == len(m.leds) {
		return
	}
	newLEDs := make([]ledState, numLEDs)
	copy(newLEDs, m.leds)
	m.leds = newLEDs
	m.allDirty = true
	m.anyDirty = true
}

// SetColor sets the desired color of ledIdx.
//
// If ledIdx is out of bounds, SetColor does nothing and returns false.
func (m *Mutable) SetColor(ledIdx int, color protocol.Color) bool {
	if ledIdx < 0 || ledIdx >= len(m.leds) {
		return false
	}
	ls := &m.leds[ledIdx]
	if ls.color == color {
		return true
	}
	ls.color = color
	ls.modified = true
	m.anyDirty = true
	return true
}

// Color returns the current desired color of ledIdx, or the zero color if
// ledIdx is out of bounds.
func (m *Mutable) Color(ledIdx int) protocol.Color {
	if ledIdx < 0 || ledIdx >= len(m.leds) {
		return protocol.Color{}
	}
	return m.leds[ledIdx].color
}

// SetAll replaces every LED's desired color with colors, which must have
// exactly NumLEDs entries. It does nothing and returns false on a length
// mismatch.
func (m *Mutable) SetAll(colors []protocol.Color) bool {
	if len(colors) != len(m.leds) {
		return false
	}
	for i, c := range colors {
		if m.leds[i].color != c {
			m.leds[i].color = c
			m.leds[i].modified = true
			m.anyDirty = true
		}
	}
	return true
}

// Sync pushes every pending color change to the controller, choosing
// UpdateSingleLED when exactly one LED changed since the last Sync and
// UpdateLEDs otherwise. It is a no-op if nothing has changed.
//
// All LEDs are marked unmodified after a successful sync.
func (m *Mutable) Sync(ctx context.Context) error {
	if !m.anyDirty {
		return nil
	}

	if !m.allDirty {
		if idx, ok := m.soleModifiedIndex(); ok {
			if err := m.c.UpdateSingleLED(ctx, m.deviceIdx, uint32(idx), m.leds[idx].color); err != nil {
				return err
			}
			m.clearDirty()
			return nil
		}
	}

	colors := make([]protocol.Color, len(m.leds))
	for i := range m.leds {
		colors[i] = m.leds[i].color
	}
	if err := m.c.UpdateLEDs(ctx, m.deviceIdx, colors); err != nil {
		return err
	}
	m.clearDirty()
	return nil
}

// soleModifiedIndex returns the index of the single modified LED, if
// exactly one is modified.
func (m *Mutable) soleModifiedIndex() (int, bool) {
	idx := -1
	for i := range m.leds {
		if !m.leds[i].modified {
			continue
		}
		if idx >= 0 {
			return 0, false
		}
		idx = i
	}
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

func (m *Mutable) clearDirty() {
	for i := range m.leds {
		m.leds[i].modified = false
	}
	m.allDirty = false
	m.anyDirty = false
}
