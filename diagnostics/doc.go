// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package diagnostics captures and replays the raw byte traffic of an
// OpenRGB connection.
//
// A Recorder wraps a transport.Stream and writes every frame's direction,
// timing, and raw bytes to a capture sink as the connection runs. A Player
// reads a capture back and presents it as a transport.Stream, letting a bug
// report or a test fixture be replayed without a live daemon.
//
// The capture format is this package's own length-prefixed encoding, not
// protobuf: a capture is consumed only by this module, so there is no
// cross-toolchain compatibility requirement to justify the extra
// dependency.
package diagnostics
