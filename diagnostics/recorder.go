// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package diagnostics

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/openrgb-go/orgbclient/transport"
)

// direction distinguishes a captured entry's byte flow.
type direction uint8

const (
	directionRecv direction = 0
	directionSent direction = 1
)

// entryHeaderSize is direction (1 byte) + offset nanoseconds (8 bytes) +
// payload length (4 bytes).
const entryHeaderSize = 1 + 8 + 4

// Recorder wraps a transport.Stream, forwarding every Read and Write to it
// unchanged while appending an entry describing the call to a capture sink.
//
// Recorder is not safe for concurrent use beyond what the wrapped Stream
// itself allows; callers follow the same single-reader/single-writer
// discipline client.Client imposes on a raw transport.Stream.
type Recorder struct {
	stream transport.Stream
	sink   io.Writer
	start  time.Time
}

var _ transport.Stream = (*Recorder)(nil)

// NewRecorder returns a Recorder that forwards to stream and writes a
// capture of every frame to sink.
func NewRecorder(stream transport.Stream, sink io.Writer) *Recorder {
	return &Recorder{stream: stream, sink: sink, start: time.Now()}
}

// Read forwards to the wrapped stream, recording the bytes actually read.
func (r *Recorder) Read(buf []byte, deadline time.Time) (int, error) {
	n, err := r.stream.Read(buf, deadline)
	if n > 0 {
		r.record(directionRecv, buf[:n])
	}
	return n, err
}

// Write forwards to the wrapped stream, recording the bytes actually
// written.
func (r *Recorder) Write(buf []byte) (int, error) {
	n, err := r.stream.Write(buf)
	if n > 0 {
		r.record(directionSent, buf[:n])
	}
	return n, err
}

// Close closes the wrapped stream. The capture sink is left open; callers
// that passed an io.WriteCloser are responsible for closing it themselves
// once they are done inspecting the capture.
func (r *Recorder) Close() error {
	return r.stream.Close()
}

func (r *Recorder) record(dir direction, payload []byte) {
	var hdr [entryHeaderSize]byte
	hdr[0] = byte(dir)
	binary.LittleEndian.PutUint64(hdr[1:9], uint64(time.Since(r.start)))
	binary.LittleEndian.PutUint32(hdr[9:13], uint32(len(payload)))

	// A capture is a diagnostic best-effort artifact; a short write to the
	// sink is not surfaced as a connection error.
	if _, err := r.sink.Write(hdr[:]); err != nil {
		return
	}
	r.sink.Write(payload)
}
