// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package client

import (
	"github.com/openrgb-go/orgbclient/protocol"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	framesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgbclient_frames_sent",
		Help: "Count of frames sent by a client connection.",
	},
		[]string{"addr"})

	bytesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgbclient_bytes_sent",
		Help: "Count of bytes sent by a client connection.",
	},
		[]string{"addr"})

	framesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgbclient_frames_received",
		Help: "Count of frames received by a client connection.",
	},
		[]string{"addr"})

	bytesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgbclient_bytes_received",
		Help: "Count of bytes received by a client connection.",
	},
		[]string{"addr"})

	pendingDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orgbclient_pending_requests",
		Help: "Current number of requests awaiting a reply.",
	},
		[]string{"addr"})

	errorsByKind = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgbclient_errors",
		Help: "Count of fatal errors encountered, by error kind.",
	},
		[]string{"addr", "kind"})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		framesSent,
		bytesSent,
		framesReceived,
		bytesReceived,
		pendingDepth,
		errorsByKind,
	)
}

// Monitoring is a thin wrapper recording a Client connection's traffic and
// error counters.
type Monitoring struct {
	labels prometheus.Labels
}

func (m *Monitoring) init(addr string) {
	m.labels = prometheus.Labels{"addr": addr}
}

func (m *Monitoring) recordSend(frameLen int) {
	framesSent.With(m.labels).Inc()
	bytesSent.With(m.labels).Add(float64(frameLen))
}

func (m *Monitoring) recordRecv(frameLen int) {
	framesReceived.With(m.labels).Inc()
	bytesReceived.With(m.labels).Add(float64(frameLen))
}

func (m *Monitoring) setPendingDepth(n int) {
	pendingDepth.With(m.labels).Set(float64(n))
}

func (m *Monitoring) recordError(err error) {
	errorsByKind.With(prometheus.Labels{
		"addr": m.labels["addr"],
		"kind": protocol.KindOf(err).String(),
	}).Inc()
}
