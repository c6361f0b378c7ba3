// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package client

import (
	"time"

	"github.com/openrgb-go/orgbclient/support/logging"
	"github.com/openrgb-go/orgbclient/transport"

	"github.com/prometheus/client_golang/prometheus"
)

// ImplementedProtocolVersion is the protocol version this client speaks.
// It is the only process-wide, immutable value the client core depends on.
const ImplementedProtocolVersion = 1

const (
	// DefaultHandshakeTimeout bounds the version-negotiation exchange.
	DefaultHandshakeTimeout = 3 * time.Second
	// DefaultRequestTimeout bounds a single data request/reply round trip.
	DefaultRequestTimeout = 5 * time.Second
)

// Options configures a Client. There is no config file, environment
// variable, or CLI flag parsing: callers build Options directly.
type Options struct {
	// Host and Port address the OpenRGB server. Port defaults to
	// network.DefaultPort when zero.
	Host string
	Port int

	// ClientName, if non-empty, is sent via SetClientName once the
	// handshake completes.
	ClientName string

	// HandshakeTimeout bounds connect and the version exchange. Zero means
	// DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration
	// RequestTimeout is the default deadline applied to a request call
	// whose context carries no deadline of its own. Zero means
	// DefaultRequestTimeout.
	RequestTimeout time.Duration

	// OverSizeCap bounds the largest accepted body_size. Zero means
	// transport.DefaultOverSizeCap.
	OverSizeCap int

	// Logger, if not nil, receives state-machine and frame-level trace
	// logging.
	Logger logging.L

	// Registerer is carried in Options but is not read by Client: Connect
	// does not register any metrics. The package's metrics reach a registry
	// only through an explicit RegisterMonitoring call.
	Registerer prometheus.Registerer

	// dialer is overridden by tests to avoid a real TCP dial.
	dialer func(host string, port int, timeout time.Duration) (transport.Stream, error)
}

func (o *Options) handshakeTimeout() time.Duration {
	if o.HandshakeTimeout > 0 {
		return o.HandshakeTimeout
	}
	return DefaultHandshakeTimeout
}

func (o *Options) requestTimeout() time.Duration {
	if o.RequestTimeout > 0 {
		return o.RequestTimeout
	}
	return DefaultRequestTimeout
}

func (o *Options) dial(host string, port int, timeout time.Duration) (transport.Stream, error) {
	if o.dialer != nil {
		return o.dialer(host, port, timeout)
	}
	return transport.DialTCP(host, port, timeout)
}
