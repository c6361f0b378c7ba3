// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// Color is an RGB triple as carried on the wire: {R, G, B, pad=0}.
type Color struct {
	R, G, B uint8
}

// ColorSize is the fixed on-the-wire size of a Color.
const ColorSize = 4
