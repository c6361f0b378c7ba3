// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"net"
	"time"

	"github.com/openrgb-go/orgbclient/protocol"
	"github.com/openrgb-go/orgbclient/support/bufferpool"
	"github.com/openrgb-go/orgbclient/support/dataio"
	"github.com/openrgb-go/orgbclient/support/fmtutil"
	"github.com/openrgb-go/orgbclient/support/logging"

	"github.com/pkg/errors"
)

// classifyIOErr distinguishes a deadline expiry from any other I/O failure,
// which this package surfaces as KindTimeout and KindDisconnected
// respectively.
func classifyIOErr(err error, msg string) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return protocol.Wrap(err, protocol.KindTimeout, msg)
	}
	return protocol.Wrap(err, protocol.KindDisconnected, msg)
}

// DefaultOverSizeCap is the largest body_size Framed.RecvFrame will accept
// before a peer's header is even believed enough to attempt the body read.
const DefaultOverSizeCap = 16 * 1024 * 1024

// Framed turns a Stream into whole-frame sends and receives: one atomic
// write per SendFrame, and exactly a header read followed by exactly its
// declared body's worth of bytes per RecvFrame.
type Framed struct {
	// Stream is the underlying duplex byte stream. Must not be nil.
	Stream Stream

	// OverSizeCap bounds the largest body_size RecvFrame will accept. Zero
	// means DefaultOverSizeCap.
	OverSizeCap int

	// Logger, if not nil, receives frame-level trace logging.
	Logger logging.L

	// bodyPool is lazily built for OverSizeCap-sized reusable body buffers.
	bodyPool *bufferpool.Pool
}

func (f *Framed) overSizeCap() int {
	if f.OverSizeCap > 0 {
		return f.OverSizeCap
	}
	return DefaultOverSizeCap
}

func (f *Framed) logger() logging.L { return logging.Must(f.Logger) }

// SendFrame encodes and writes a full frame (header plus body) in a single
// Write call, retrying on short writes until the whole buffer is sent or an
// error occurs.
//
// If the underlying Stream implements DeadlineWriter, deadline bounds the
// write; a zero deadline applies no bound.
func (f *Framed) SendFrame(deviceIdx uint32, req protocol.Request, deadline time.Time) error {
	buf, err := protocol.EncodeMessage(deviceIdx, req)
	if err != nil {
		return err
	}

	if dw, ok := f.Stream.(DeadlineWriter); ok {
		if err := dw.SetWriteDeadline(deadline); err != nil {
			return errors.Wrap(err, "setting write deadline")
		}
	}

	for len(buf) > 0 {
		n, err := f.Stream.Write(buf)
		if err != nil {
			return classifyIOErr(err, "writing frame")
		}
		buf = buf[n:]
	}

	f.logger().Debugf("sent %v to device %d", req.Type(), deviceIdx)
	return nil
}

// RecvFrame reads exactly one frame: a fixed-size header, then exactly its
// declared body_size worth of bytes.
//
// The body is read into a pooled buffer, which is released before RecvFrame
// returns; the returned Frame's Body is a fresh copy owned by the caller.
func (f *Framed) RecvFrame(deadline time.Time) (protocol.Frame, error) {
	hr := deadlineReader{s: f.Stream, deadline: deadline}

	var headerBuf [protocol.HeaderSize]byte
	if err := dataio.ReadFull(hr, headerBuf[:]); err != nil {
		return protocol.Frame{}, classifyIOErr(err, "reading frame header")
	}

	header, err := protocol.DecodeHeader(bytes.NewReader(headerBuf[:]))
	if err != nil {
		return protocol.Frame{}, err
	}

	if int(header.BodySize) > f.overSizeCap() {
		return protocol.Frame{}, protocol.Errorf(protocol.KindOverSized,
			"frame body_size %d exceeds cap %d", header.BodySize, f.overSizeCap())
	}

	if f.bodyPool == nil || f.bodyPool.Size < int(header.BodySize) {
		f.bodyPool = &bufferpool.Pool{Size: f.overSizeCap()}
	}

	body := f.bodyPool.Get()
	body.Truncate(int(header.BodySize))
	if err := dataio.ReadFull(hr, body.Bytes()); err != nil {
		body.Release()
		return protocol.Frame{}, classifyIOErr(err, "reading frame body")
	}

	f.logger().Debugf("received message %v (%d byte body) from device %d:\n%s",
		protocol.MessageType(header.MessageType), header.BodySize, header.DeviceIdx,
		fmtutil.Hex(body.Bytes()))

	bodyCopy := append([]byte(nil), body.Bytes()...)
	body.Release()

	return protocol.Frame{Header: header, Body: bodyCopy}, nil
}

// deadlineReader adapts a Stream's deadline-aware Read to io.Reader so it
// can be driven through dataio.ReadFull.
type deadlineReader struct {
	s        Stream
	deadline time.Time
}

func (dr deadlineReader) Read(p []byte) (int, error) {
	return dr.s.Read(p, dr.deadline)
}
