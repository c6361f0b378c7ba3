// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package diagnostics

import (
	"bytes"
	"io"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func buildCapture(entries ...entry) []byte {
	var buf bytes.Buffer
	start := time.Now()
	for _, e := range entries {
		r := NewRecorder(nil, &buf)
		r.start = start
		r.record(e.dir, e.payload)
	}
	return buf.Bytes()
}

var _ = Describe("Player", func() {
	It("replays a recorded receive as a Read", func() {
		capture := buildCapture(entry{dir: directionRecv, payload: []byte("hi")})

		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 16)
		n, err := p.Read(buf, time.Time{})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hi"))
		Expect(p.Done()).To(BeTrue())
	})

	It("splits a recorded chunk across multiple small reads", func() {
		capture := buildCapture(entry{dir: directionRecv, payload: []byte("hello")})

		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 2)
		var got []byte
		for !p.Done() {
			n, err := p.Read(buf, time.Time{})
			Expect(err).NotTo(HaveOccurred())
			got = append(got, buf[:n]...)
		}
		Expect(string(got)).To(Equal("hello"))
	})

	It("returns EOF from Read once the capture is exhausted", func() {
		capture := buildCapture(entry{dir: directionRecv, payload: []byte("x")})
		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 16)
		_, err = p.Read(buf, time.Time{})
		Expect(err).NotTo(HaveOccurred())

		_, err = p.Read(buf, time.Time{})
		Expect(err).To(Equal(io.EOF))
	})

	It("accepts a Write that matches the recorded sent bytes", func() {
		capture := buildCapture(entry{dir: directionSent, payload: []byte("bye")})
		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		n, err := p.Write([]byte("bye"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
		Expect(p.Done()).To(BeTrue())
	})

	It("rejects a Write that diverges from the recorded sent bytes", func() {
		capture := buildCapture(entry{dir: directionSent, payload: []byte("bye")})
		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		_, err = p.Write([]byte("cya"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a Write when the next recorded entry is a receive", func() {
		capture := buildCapture(entry{dir: directionRecv, payload: []byte("x")})
		p, err := NewPlayer(bytes.NewReader(capture))
		Expect(err).NotTo(HaveOccurred())

		_, err = p.Write([]byte("x"))
		Expect(err).To(HaveOccurred())
	})
})
