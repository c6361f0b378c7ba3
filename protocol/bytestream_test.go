// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writer/Reader", func() {
	It("round-trips the fixed-width primitives", func() {
		w := NewWriter(0)
		w.PutU8(0xAB)
		w.PutU16(0x1234)
		w.PutU32(0xDEADBEEF)
		w.PutColor(Color{R: 1, G: 2, B: 3})

		r := NewReader(w.Bytes())
		u8, err := r.GetU8()
		Expect(err).NotTo(HaveOccurred())
		Expect(u8).To(Equal(uint8(0xAB)))

		u16, err := r.GetU16()
		Expect(err).NotTo(HaveOccurred())
		Expect(u16).To(Equal(uint16(0x1234)))

		u32, err := r.GetU32()
		Expect(err).NotTo(HaveOccurred())
		Expect(u32).To(Equal(uint32(0xDEADBEEF)))

		c, err := r.GetColor()
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(Color{R: 1, G: 2, B: 3}))
	})

	It("encodes a string as length-including-terminator plus a NUL byte", func() {
		w := NewWriter(0)
		w.PutString("foo")
		Expect(w.Bytes()).To(Equal([]byte{0x04, 0x00, 'f', 'o', 'o', 0x00}))
		Expect(w.Len()).To(Equal(StringSize("foo")))
	})

	It("round-trips strings, including empty and UTF-8", func() {
		for _, s := range []string{"", "a", "hello world", "héllo", "日本語"} {
			w := NewWriter(0)
			w.PutString(s)
			Expect(w.Len()).To(Equal(StringSize(s)))

			r := NewReader(w.Bytes())
			got, err := r.GetString()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(s))
		}
	})

	It("rejects a zero-length string as malformed", func() {
		r := NewReader([]byte{0x00, 0x00})
		_, err := r.GetString()
		Expect(KindOf(err)).To(Equal(KindMalformed))
	})

	It("rejects a string missing its NUL terminator", func() {
		r := NewReader([]byte{0x03, 0x00, 'a', 'b', 'c'})
		_, err := r.GetString()
		Expect(KindOf(err)).To(Equal(KindMalformed))
	})

	It("reports Truncated on a short read", func() {
		r := NewReader([]byte{0x01})
		_, err := r.GetU16()
		Expect(KindOf(err)).To(Equal(KindTruncated))
	})

	It("discards a color's trailing pad byte", func() {
		r := NewReader([]byte{0xFF, 0x80, 0x00, 0xAA})
		c, err := r.GetColor()
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(Color{R: 0xFF, G: 0x80, B: 0x00}))
	})
})
