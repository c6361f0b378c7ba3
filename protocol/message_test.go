// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("EncodeMessage", func() {
	It("encodes RequestControllerCount to an all-zero header with no body", func() {
		b, err := EncodeMessage(0, RequestControllerCount{})
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal([]byte{
			0x4F, 0x52, 0x47, 0x42,
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
		}))
	})

	It("encodes RequestProtocolVersion(client=1)", func() {
		b, err := EncodeMessage(0, RequestProtocolVersion{ClientVersion: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal([]byte{
			0x4F, 0x52, 0x47, 0x42,
			0x00, 0x00, 0x00, 0x00,
			40, 0x00, 0x00, 0x00,
			0x04, 0x00, 0x00, 0x00,
			0x01, 0x00, 0x00, 0x00,
		}))
	})

	It("encodes SetClientName(\"foo\") to a 6-byte body", func() {
		b, err := EncodeMessage(0, SetClientName{Name: "foo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(b[HeaderSize:]).To(Equal([]byte{0x04, 0x00, 'f', 'o', 'o', 0x00}))

		h, err := DecodeHeader(bytes.NewReader(b))
		Expect(err).NotTo(HaveOccurred())
		Expect(h.BodySize).To(Equal(uint32(6)))
	})

	It("encodes UpdateSingleLED(device=2, led=5, color=#FF8000)", func() {
		b, err := EncodeMessage(2, UpdateSingleLED{LedIdx: 5, Color: Color{R: 0xFF, G: 0x80, B: 0x00}})
		Expect(err).NotTo(HaveOccurred())
		Expect(b[HeaderSize:]).To(Equal([]byte{0x05, 0x00, 0x00, 0x00, 0xFF, 0x80, 0x00, 0x00}))

		h, err := DecodeHeader(bytes.NewReader(b))
		Expect(err).NotTo(HaveOccurred())
		Expect(h.DeviceIdx).To(Equal(uint32(2)))
		Expect(h.BodySize).To(Equal(uint32(8)))
	})

	It("encodes ResizeZone(device=0, zone=1, new_size=16)", func() {
		b, err := EncodeMessage(0, ResizeZone{ZoneIdx: 1, NewSize: 16})
		Expect(err).NotTo(HaveOccurred())
		Expect(b[HeaderSize:]).To(Equal([]byte{0x01, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00}))
	})

	It("round-trips every request type's body through its own decode path where one exists", func() {
		reqs := []Request{
			RequestControllerCount{},
			RequestControllerData{ProtocolVersion: 1},
			RequestProtocolVersion{ClientVersion: 1},
			SetClientName{Name: "client"},
			ResizeZone{ZoneIdx: 1, NewSize: 2},
			UpdateLEDs{Colors: []Color{{R: 1}, {G: 2}}},
			UpdateZoneLEDs{ZoneIdx: 3, Colors: []Color{{B: 9}}},
			UpdateSingleLED{LedIdx: 4, Color: Color{R: 5}},
			SetCustomMode{},
			UpdateMode{ModeIdx: 1, Mode: ModeDescription{Name: "m"}},
		}
		for _, req := range reqs {
			b, err := EncodeMessage(0, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(b)).To(Equal(HeaderSize + req.BodySize()))

			h, err := DecodeHeader(bytes.NewReader(b))
			Expect(err).NotTo(HaveOccurred())
			Expect(h.MessageType).To(Equal(uint32(req.Type())))
			Expect(h.BodySize).To(Equal(uint32(req.BodySize())))
		}
	})
})

var _ = Describe("Replies", func() {
	It("decodes ReplyControllerCount(7), matching the concrete scenario bytes", func() {
		body := []byte{0x07, 0x00, 0x00, 0x00}
		reply, err := DecodeReplyControllerCount(NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Count).To(Equal(uint32(7)))
	})

	It("decodes ReplyProtocolVersion(1)", func() {
		reply, err := DecodeReplyProtocolVersion(NewReader([]byte{0x01, 0x00, 0x00, 0x00}))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.ServerVersion).To(Equal(uint32(1)))
	})

	It("round-trips ReplyControllerData and enforces the dual-size mirror", func() {
		dev := DeviceDescription{Name: "dev", Modes: []ModeDescription{{Name: "Static"}}}
		body := make([]byte, 0)
		{
			w := NewWriter(4 + dev.CalcSize())
			w.PutU32(uint32(4 + dev.CalcSize()))
			dev.Serialise(w)
			body = w.Bytes()
		}

		reply, err := DecodeReplyControllerData(NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Device.Name).To(Equal("dev"))
		Expect(reply.DataSize).To(Equal(uint32(len(body))))

		// Tamper with data_size only, leaving every other byte (including the
		// device payload that determines the true body length) unchanged.
		tampered := append([]byte(nil), body...)
		tampered[0] = tampered[0] + 1

		_, err = DecodeReplyControllerData(NewReader(tampered))
		Expect(KindOf(err)).To(Equal(KindMalformed))
	})
})

var _ = Describe("MessageType", func() {
	It("classifies DeviceListUpdated as a notification bypassing the reply queue", func() {
		Expect(MessageTypeDeviceListUpdate.IsNotification()).To(BeTrue())
		Expect(MessageTypeDeviceListUpdate.ExpectsReply()).To(BeFalse())
	})

	It("classifies the three request/reply codes as reply-expecting", func() {
		for _, mt := range []MessageType{
			MessageTypeControllerCount, MessageTypeControllerData, MessageTypeProtocolVersion,
		} {
			Expect(mt.ExpectsReply()).To(BeTrue())
			Expect(mt.IsNotification()).To(BeFalse())
		}
	})
})
