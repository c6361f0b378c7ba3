// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package diagnostics

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/openrgb-go/orgbclient/transport"
)

// entry is one decoded capture record.
type entry struct {
	dir     direction
	payload []byte
}

// Player replays a capture produced by Recorder as a transport.Stream: Read
// calls are answered from the capture's recorded server-to-client bytes,
// and Write calls are checked against the capture's recorded
// client-to-server bytes.
//
// Player is meant for tests exercising transport.Framed or client.Client
// against a recorded byte sequence in place of a live daemon; it is not
// safe for concurrent use.
type Player struct {
	entries []entry
	pos     int
}

var _ transport.Stream = (*Player)(nil)

// NewPlayer parses a capture produced by Recorder.
func NewPlayer(capture io.Reader) (*Player, error) {
	var entries []entry
	for {
		var hdr [entryHeaderSize]byte
		if _, err := io.ReadFull(capture, hdr[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		length := binary.LittleEndian.Uint32(hdr[9:13])
		payload := make([]byte, length)
		if _, err := io.ReadFull(capture, payload); err != nil {
			return nil, err
		}

		entries = append(entries, entry{dir: direction(hdr[0]), payload: payload})
	}
	return &Player{entries: entries}, nil
}

// Read returns the next recorded received chunk. If the next recorded
// entry is a sent chunk instead, Read returns io.EOF: the capture has
// nothing left for the reader side to return until the corresponding Write
// call catches up.
func (p *Player) Read(buf []byte, _ time.Time) (int, error) {
	if p.pos >= len(p.entries) {
		return 0, io.EOF
	}
	e := &p.entries[p.pos]
	if e.dir != directionRecv {
		return 0, io.EOF
	}

	n := copy(buf, e.payload)
	if n == len(e.payload) {
		p.pos++
	} else {
		e.payload = e.payload[n:]
	}
	return n, nil
}

// Write checks buf against the next recorded sent chunk. A mismatch, in
// either content or recorded direction, is reported as an error rather than
// silently accepted.
func (p *Player) Write(buf []byte) (int, error) {
	if p.pos >= len(p.entries) {
		return 0, errors.Errorf("diagnostics: write with no corresponding capture entry remaining")
	}
	e := &p.entries[p.pos]
	if e.dir != directionSent {
		return 0, errors.Errorf("diagnostics: write did not expect a capture entry of direction %d", e.dir)
	}

	n := len(buf)
	if n > len(e.payload) {
		n = len(e.payload)
	}
	if string(buf[:n]) != string(e.payload[:n]) {
		return 0, errors.Errorf("diagnostics: written bytes do not match captured bytes")
	}

	if n == len(e.payload) {
		p.pos++
	} else {
		e.payload = e.payload[n:]
	}
	return len(buf), nil
}

// Close is a no-op; a Player has no underlying resource to release.
func (p *Player) Close() error { return nil }

// Done reports whether every recorded entry has been consumed.
func (p *Player) Done() bool { return p.pos >= len(p.entries) }
