// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package network contains connection-establishment helpers shared by the
// transport layer.
package network

import (
	"fmt"
	"net"
	"time"

	"github.com/pkg/errors"
)

// DefaultPort is the OpenRGB server's default listening port.
const DefaultPort = 6742

// DialTCP dials a TCP connection to host:port, failing with a descriptive
// error if the dial does not complete within timeout.
//
// A timeout of zero means no deadline is applied to the dial itself.
func DialTCP(host string, port int, timeout time.Duration) (net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to %q", addr)
	}
	return conn, nil
}
