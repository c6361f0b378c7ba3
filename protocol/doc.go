// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package protocol implements the OpenRGB network protocol's wire format:
// the framed message header, the binary codec primitives it is built from,
// the structured description records it carries (devices, modes, zones,
// LEDs, colors), and the full request/reply/notification message set.
//
// This package performs no I/O. It is consumed by package transport, which
// turns a byte stream into framed reads and writes, and by package client,
// which drives the connection state machine on top of that.
package protocol
