// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package inventory

import (
	"context"

	"github.com/openrgb-go/orgbclient/client"
	"github.com/openrgb-go/orgbclient/protocol"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mutable", func() {
	var (
		c   *client.Client
		srv *fakeServer
		m   *Mutable
	)

	BeforeEach(func() {
		c, srv = connectedClient()
		m = NewMutable(c, 0, 3)
	})

	AfterEach(func() {
		c.Close()
	})

	It("is a no-op when nothing has changed", func() {
		Expect(m.Sync(context.Background())).To(Succeed())
		Expect(srv.recordedUpdates()).To(BeEmpty())
	})

	It("ignores out-of-bounds LED indices", func() {
		Expect(m.SetColor(-1, protocol.Color{R: 1})).To(BeFalse())
		Expect(m.SetColor(3, protocol.Color{R: 1})).To(BeFalse())
	})

	It("sends UpdateSingleLED when exactly one LED changed", func() {
		Expect(m.SetColor(1, protocol.Color{R: 10, G: 20, B: 30})).To(BeTrue())
		Expect(m.Sync(context.Background())).To(Succeed())

		updates := srv.recordedUpdates()
		Expect(updates).To(HaveLen(1))
		Expect(updates[0].kind).To(Equal("single"))
		Expect(updates[0].ledIdx).To(Equal(uint32(1)))
		Expect(updates[0].colors[0]).To(Equal(protocol.Color{R: 10, G: 20, B: 30}))
	})

	It("sends UpdateLEDs in bulk when more than one LED changed", func() {
		Expect(m.SetColor(0, protocol.Color{R: 1})).To(BeTrue())
		Expect(m.SetColor(2, protocol.Color{B: 1})).To(BeTrue())
		Expect(m.Sync(context.Background())).To(Succeed())

		updates := srv.recordedUpdates()
		Expect(updates).To(HaveLen(1))
		Expect(updates[0].kind).To(Equal("bulk"))
		Expect(updates[0].colors).To(Equal([]protocol.Color{
			{R: 1}, {}, {B: 1},
		}))
	})

	It("does not resend after a successful sync", func() {
		Expect(m.SetColor(0, protocol.Color{R: 1})).To(BeTrue())
		Expect(m.Sync(context.Background())).To(Succeed())
		Expect(m.Sync(context.Background())).To(Succeed())

		Expect(srv.recordedUpdates()).To(HaveLen(1))
	})

	It("setting the same color again is not a change", func() {
		Expect(m.SetColor(0, protocol.Color{})).To(BeTrue())
		Expect(m.Sync(context.Background())).To(Succeed())
		Expect(srv.recordedUpdates()).To(BeEmpty())
	})

	It("SetAll rejects a length mismatch", func() {
		Expect(m.SetAll([]protocol.Color{{R: 1}})).To(BeFalse())
	})

	It("Resize preserves in-bounds state and marks everything dirty", func() {
		Expect(m.SetColor(0, protocol.Color{R: 9})).To(BeTrue())
		Expect(m.Sync(context.Background())).To(Succeed())

		m.Resize(4)
		Expect(m.NumLEDs()).To(Equal(4))
		Expect(m.Color(0)).To(Equal(protocol.Color{R: 9}))

		Expect(m.Sync(context.Background())).To(Succeed())
		updates := srv.recordedUpdates()
		Expect(updates[len(updates)-1].kind).To(Equal("bulk"))
	})
})
