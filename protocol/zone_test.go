// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func roundTripZone(z ZoneDescription) (ZoneDescription, error) {
	w := NewWriter(z.CalcSize())
	z.Serialise(w)
	Expect(w.Len()).To(Equal(z.CalcSize()))

	var got ZoneDescription
	err := got.Deserialise(NewReader(w.Bytes()))
	return got, err
}

var _ = Describe("ZoneDescription", func() {
	It("round-trips a zone with no matrix block", func() {
		z := ZoneDescription{Name: "Zone A", Type: ZoneTypeLinear, LedsMin: 1, LedsMax: 32, LedCount: 16}
		Expect(z.MatrixLength()).To(Equal(uint16(0)))

		got, err := roundTripZone(z)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(z))
	})

	It("round-trips a matrix zone", func() {
		z := ZoneDescription{
			Name: "Matrix", Type: ZoneTypeMatrix, LedsMin: 0, LedsMax: 4, LedCount: 4,
			MatrixHeight: 2, MatrixWidth: 2, MatrixValues: []uint32{0, 1, 2, 3},
		}
		Expect(z.MatrixLength()).To(Equal(uint16(8 + 4*2*2)))

		got, err := roundTripZone(z)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(z))
	})

	It("round-trips an empty-named zone and a zone with no LEDs", func() {
		z := ZoneDescription{Name: "", Type: ZoneTypeSingle}
		got, err := roundTripZone(z)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(z))
	})

	It("rejects a matrix block whose declared length is inconsistent with its dimensions", func() {
		z := ZoneDescription{
			Name: "Matrix", Type: ZoneTypeMatrix,
			MatrixHeight: 2, MatrixWidth: 2, MatrixValues: []uint32{0, 1, 2, 3},
		}
		w := NewWriter(z.CalcSize())
		z.Serialise(w)

		// Tamper with matrix_length (immediately after the fixed zone fields
		// and name) without touching height/width.
		buf := w.Bytes()
		matrixLenOff := StringSize(z.Name) + zoneFixedSize - 2
		buf[matrixLenOff] = 0xFF

		var got ZoneDescription
		err := got.Deserialise(NewReader(buf))
		Expect(KindOf(err)).To(Equal(KindMalformed))
	})
})
