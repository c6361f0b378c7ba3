// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package client

import (
	"context"

	"github.com/openrgb-go/orgbclient/protocol"
)

// RequestControllerCount asks the server how many controllers it manages.
func (c *Client) RequestControllerCount(ctx context.Context) (uint32, error) {
	frame, err := c.sendRequest(ctx, 0, protocol.RequestControllerCount{})
	if err != nil {
		return 0, err
	}
	reply, err := protocol.DecodeReplyControllerCount(protocol.NewReader(frame.Body))
	if err != nil {
		return 0, err
	}
	return reply.Count, nil
}

// RequestControllerData fetches a controller's full description.
func (c *Client) RequestControllerData(ctx context.Context, deviceIdx uint32) (protocol.DeviceDescription, error) {
	req := protocol.RequestControllerData{ProtocolVersion: c.NegotiatedVersion()}
	frame, err := c.sendRequest(ctx, deviceIdx, req)
	if err != nil {
		return protocol.DeviceDescription{}, err
	}
	reply, err := protocol.DecodeReplyControllerData(protocol.NewReader(frame.Body))
	if err != nil {
		return protocol.DeviceDescription{}, err
	}
	return reply.Device, nil
}

// ResizeZone resizes a zone on a controller. It has no reply.
func (c *Client) ResizeZone(ctx context.Context, deviceIdx, zoneIdx, newSize uint32) error {
	req := protocol.ResizeZone{ZoneIdx: zoneIdx, NewSize: newSize}
	return c.sendOnly(deviceIdx, req, deadlineFromContext(ctx, c.opts.requestTimeout()))
}

// UpdateLEDs sets every LED's color on a controller at once. It has no
// reply.
func (c *Client) UpdateLEDs(ctx context.Context, deviceIdx uint32, colors []protocol.Color) error {
	req := protocol.UpdateLEDs{Colors: colors}
	return c.sendOnly(deviceIdx, req, deadlineFromContext(ctx, c.opts.requestTimeout()))
}

// UpdateZoneLEDs sets every LED's color within one zone. It has no reply.
func (c *Client) UpdateZoneLEDs(ctx context.Context, deviceIdx, zoneIdx uint32, colors []protocol.Color) error {
	req := protocol.UpdateZoneLEDs{ZoneIdx: zoneIdx, Colors: colors}
	return c.sendOnly(deviceIdx, req, deadlineFromContext(ctx, c.opts.requestTimeout()))
}

// UpdateSingleLED sets one LED's color. It has no reply.
func (c *Client) UpdateSingleLED(ctx context.Context, deviceIdx, ledIdx uint32, color protocol.Color) error {
	req := protocol.UpdateSingleLED{LedIdx: ledIdx, Color: color}
	return c.sendOnly(deviceIdx, req, deadlineFromContext(ctx, c.opts.requestTimeout()))
}

// SetCustomMode switches a controller into its direct/custom mode. It has
// no reply.
func (c *Client) SetCustomMode(ctx context.Context, deviceIdx uint32) error {
	return c.sendOnly(deviceIdx, protocol.SetCustomMode{}, deadlineFromContext(ctx, c.opts.requestTimeout()))
}

// UpdateMode updates a mode's parameters on a controller. It has no reply.
//
// As protocol.UpdateMode documents, the exact effect on which mode becomes
// active is unspecified upstream; this method does not infer it.
func (c *Client) UpdateMode(ctx context.Context, deviceIdx, modeIdx uint32, mode protocol.ModeDescription) error {
	req := protocol.UpdateMode{ModeIdx: modeIdx, Mode: mode}
	return c.sendOnly(deviceIdx, req, deadlineFromContext(ctx, c.opts.requestTimeout()))
}
