// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package inventory

import (
	"context"
	"sync"

	"github.com/openrgb-go/orgbclient/client"
	"github.com/openrgb-go/orgbclient/protocol"
)

// Registry tracks the last-fetched protocol.DeviceDescription for each
// controller index known to a client.Client.
//
// Entries are replaced wholesale, never merged: a controller's prior
// description carries no weight once a fresher one has been fetched, matching
// protocol.DeviceDescription's own "replaced wholesale" lifecycle note.
//
// Registry is safe for concurrent use.
type Registry struct {
	c *client.Client

	mu      sync.RWMutex
	devices map[uint32]protocol.DeviceDescription
}

// NewRegistry returns a Registry backed by c. The registry starts empty;
// call Refresh or RefreshAll to populate it.
func NewRegistry(c *client.Client) *Registry {
	return &Registry{
		c:       c,
		devices: make(map[uint32]protocol.DeviceDescription),
	}
}

// Get returns the last-fetched description for deviceIdx, if any.
func (r *Registry) Get(deviceIdx uint32) (protocol.DeviceDescription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[deviceIdx]
	return d, ok
}

// All returns a snapshot of every tracked description, keyed by controller
// index. Mutating the returned map does not affect the registry.
func (r *Registry) All() map[uint32]protocol.DeviceDescription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uint32]protocol.DeviceDescription, len(r.devices))
	for idx, d := range r.devices {
		out[idx] = d
	}
	return out
}

// Refresh fetches deviceIdx's current description from the client and
// replaces any previously-tracked entry for it.
func (r *Registry) Refresh(ctx context.Context, deviceIdx uint32) (protocol.DeviceDescription, error) {
	d, err := r.c.RequestControllerData(ctx, deviceIdx)
	if err != nil {
		return protocol.DeviceDescription{}, err
	}

	r.mu.Lock()
	r.devices[deviceIdx] = d
	r.mu.Unlock()

	return d, nil
}

// RefreshAll fetches the current controller count and refreshes every
// controller index in [0, count). Callers typically invoke this once after
// connecting and again whenever client.PollNotifications reports a
// DeviceListUpdated notification.
//
// Controller indices no longer reported by the server are dropped from the
// registry.
func (r *Registry) RefreshAll(ctx context.Context) error {
	count, err := r.c.RequestControllerCount(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[uint32]protocol.DeviceDescription, count)
	for idx := uint32(0); idx < count; idx++ {
		d, err := r.c.RequestControllerData(ctx, idx)
		if err != nil {
			return err
		}
		fresh[idx] = d
	}

	r.mu.Lock()
	r.devices = fresh
	r.mu.Unlock()

	return nil
}
