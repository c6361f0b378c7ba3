// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package inventory layers a device-tracking facade over client.Client.
//
// It adds no new wire behavior: every request it sends is one of
// client.Client's request methods. What it adds is bookkeeping a raw client
// leaves to the caller — remembering each controller's last-fetched
// description, and turning a desired LED color buffer into the minimal
// UpdateSingleLED/UpdateLEDs call needed to reach it.
package inventory
