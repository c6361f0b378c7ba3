// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	"bytes"
	"io"

	"github.com/lunixbochs/struc"
)

// HeaderSize is the fixed on-the-wire size of a Header.
const HeaderSize = 16

// Magic is the 4-byte literal that begins every frame.
var Magic = [4]byte{'O', 'R', 'G', 'B'}

// Header is the fixed 16-byte frame header that begins every message.
type Header struct {
	Magic       [4]byte
	DeviceIdx   uint32 `struc:",little"`
	MessageType uint32 `struc:",little"`
	BodySize    uint32 `struc:",little"`
}

// NewHeader builds a Header for an outbound message.
func NewHeader(deviceIdx uint32, mt MessageType, bodySize uint32) Header {
	return Header{
		Magic:       Magic,
		DeviceIdx:   deviceIdx,
		MessageType: uint32(mt),
		BodySize:    bodySize,
	}
}

// Encode serialises h to exactly HeaderSize bytes.
func (h Header) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := struc.Pack(&buf, &h); err != nil {
		return nil, Wrap(err, KindMalformed, "encoding header")
	}
	return buf.Bytes(), nil
}

// DecodeHeader reads a Header from exactly HeaderSize bytes of r.
//
// DecodeHeader fails with KindMalformed if the magic does not match, or
// KindUnknownType if message_type is not a recognised code. body_size is
// returned verbatim with no upper bound imposed here; the transport layer
// enforces the cap.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := struc.Unpack(r, &h); err != nil {
		return Header{}, Wrap(err, KindTruncated, "decoding header")
	}
	if h.Magic != Magic {
		return Header{}, Errorf(KindMalformed, "bad magic %v", h.Magic)
	}
	if !MessageType(h.MessageType).known() {
		return Header{}, Errorf(KindUnknownType, "unrecognised message_type %d", h.MessageType)
	}
	return h, nil
}
