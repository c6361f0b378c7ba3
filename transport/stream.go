// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package transport wraps a byte-oriented duplex stream (normally a TCP
// socket) with the OpenRGB protocol's framing: reading exactly one header
// then exactly its declared body, and writing a whole frame atomically.
package transport

import (
	"net"
	"time"

	"github.com/openrgb-go/orgbclient/support/network"
)

// Stream is the minimal duplex byte stream the protocol core needs.
//
// A zero-value deadline passed to Read means no deadline applies.
type Stream interface {
	// Read reads into buf, honoring deadline (zero means no deadline).
	Read(buf []byte, deadline time.Time) (int, error)

	// Write writes buf in full or returns an error.
	Write(buf []byte) (int, error)

	// Close releases the underlying connection.
	Close() error
}

// DeadlineWriter is implemented by Streams that can bound the duration of a
// Write call. Framed.SendFrame uses it opportunistically.
type DeadlineWriter interface {
	SetWriteDeadline(time.Time) error
}

// TCPStream implements Stream over a net.Conn.
type TCPStream struct {
	conn net.Conn
}

var (
	_ Stream         = (*TCPStream)(nil)
	_ DeadlineWriter = (*TCPStream)(nil)
)

// DialTCP connects to host:port and returns a TCPStream.
//
// connectTimeout bounds the dial itself; a zero value means no timeout.
func DialTCP(host string, port int, connectTimeout time.Duration) (*TCPStream, error) {
	conn, err := network.DialTCP(host, port, connectTimeout)
	if err != nil {
		return nil, err
	}
	return &TCPStream{conn: conn}, nil
}

// Read implements Stream.
func (s *TCPStream) Read(buf []byte, deadline time.Time) (int, error) {
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}
	return s.conn.Read(buf)
}

// Write implements Stream.
func (s *TCPStream) Write(buf []byte) (int, error) {
	return s.conn.Write(buf)
}

// SetWriteDeadline implements DeadlineWriter.
func (s *TCPStream) SetWriteDeadline(t time.Time) error {
	return s.conn.SetWriteDeadline(t)
}

// Close implements Stream.
func (s *TCPStream) Close() error {
	return s.conn.Close()
}
