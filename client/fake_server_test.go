// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package client

import (
	"bytes"
	"io"
	"net"

	"github.com/openrgb-go/orgbclient/protocol"

	. "github.com/onsi/gomega"
)

// fakeServer is a bare-bones OpenRGB daemon stand-in: it accepts one TCP
// connection and lets the test script its raw frame exchange directly,
// without going through package client itself.
type fakeServer struct {
	ln net.Listener
}

func newFakeServer() *fakeServer {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).NotTo(HaveOccurred())
	return &fakeServer{ln: ln}
}

func (s *fakeServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeServer) accept() net.Conn {
	conn, err := s.ln.Accept()
	Expect(err).NotTo(HaveOccurred())
	return conn
}

func (s *fakeServer) close() { s.ln.Close() }

func readRawFrame(conn net.Conn) (protocol.Header, []byte) {
	var hb [protocol.HeaderSize]byte
	_, err := io.ReadFull(conn, hb[:])
	Expect(err).NotTo(HaveOccurred())

	h, err := protocol.DecodeHeader(bytes.NewReader(hb[:]))
	Expect(err).NotTo(HaveOccurred())

	body := make([]byte, h.BodySize)
	_, err = io.ReadFull(conn, body)
	Expect(err).NotTo(HaveOccurred())

	return h, body
}

func writeRawFrame(conn net.Conn, deviceIdx uint32, mt protocol.MessageType, body []byte) {
	h := protocol.NewHeader(deviceIdx, mt, uint32(len(body)))
	hb, err := h.Encode()
	Expect(err).NotTo(HaveOccurred())

	_, err = conn.Write(append(hb, body...))
	Expect(err).NotTo(HaveOccurred())
}

func replyProtocolVersionBody(serverVersion uint32) []byte {
	w := protocol.NewWriter(4)
	w.PutU32(serverVersion)
	return w.Bytes()
}

func replyControllerCountBody(count uint32) []byte {
	w := protocol.NewWriter(4)
	w.PutU32(count)
	return w.Bytes()
}
