// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package client implements the OpenRGB client-side connection state
// machine: the version handshake, request/reply correlation, and
// notification delivery built on top of package transport.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openrgb-go/orgbclient/protocol"
	"github.com/openrgb-go/orgbclient/support/logging"
	"github.com/openrgb-go/orgbclient/support/network"
	"github.com/openrgb-go/orgbclient/transport"
)

// State is one of a Client's lifecycle states.
type State int32

const (
	// StateDisconnected is the initial state, and the terminal state after
	// any fatal error. Only Connect is legal here.
	StateDisconnected State = iota
	// StateConnecting means the transport is being opened and the version
	// handshake is in progress.
	StateConnecting
	// StateConnected means the handshake completed and requests may be sent.
	StateConnected
	// StateClosing means a close is in progress; the connection is
	// draining and will reach StateDisconnected shortly.
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

var errClosedByCaller = protocol.NewError(protocol.KindDisconnected, "connection closed by caller")

// pendingRequest is one queued reply expectation.
//
// cancelled is set by a caller giving up on the wait; the slot is left in
// its queue so FIFO order for same-code requests behind it is preserved,
// and the eventual reply is discarded silently instead of delivered.
type pendingRequest struct {
	cancelled bool
	resultC   chan pendingResult
}

type pendingResult struct {
	frame protocol.Frame
	err   error
}

// Client is a single connection to an OpenRGB server.
//
// The core is single-threaded cooperative at the protocol layer: exactly
// one goroutine (the pump, started by Connect) reads the transport, and
// sendMu serialises the single writer identity across every request
// method, so request methods may safely be called concurrently from
// multiple goroutines. Replies are matched per message type in FIFO order
// (protocol.MessageType.ExpectsReply names which codes enqueue); two
// concurrent requests of different codes complete correctly regardless of
// which reply arrives first, and two requests of the same code are matched
// in send order.
type Client struct {
	opts Options

	mu                sync.Mutex
	state             State
	stream            transport.Stream
	framed            *transport.Framed
	negotiatedVersion uint32
	pending           map[protocol.MessageType][]*pendingRequest
	closeErr          error
	doneC             chan struct{}
	doneOnce          sync.Once
	notifyC           chan protocol.DeviceListUpdated

	// sendMu serialises the enqueue-then-write critical section of every
	// outbound message. The protocol has exactly one writer identity per
	// connection (section 5); holding sendMu across both the pending-queue
	// append and the wire write is what makes that true when multiple
	// goroutines call request methods concurrently, and keeps queue order
	// consistent with wire order.
	sendMu sync.Mutex

	monitoring Monitoring
}

// New returns a Client configured by opts. The returned Client is
// Disconnected until Connect is called.
func New(opts Options) *Client {
	return &Client{opts: opts}
}

func (c *Client) logger() logging.L { return logging.Must(c.opts.Logger) }

func (c *Client) addr() string {
	port := c.opts.Port
	if port == 0 {
		port = network.DefaultPort
	}
	return fmt.Sprintf("%s:%d", c.opts.Host, port)
}

// State returns the Client's current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NegotiatedVersion returns min(ImplementedProtocolVersion, server_version)
// once Connect has completed the handshake.
func (c *Client) NegotiatedVersion() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.negotiatedVersion
}

func deadlineFromContext(ctx context.Context, def time.Duration) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(def)
}

// Connect opens the transport and performs the version handshake.
//
// Returns KindAlreadyConnected if the Client is not Disconnected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return protocol.NewError(protocol.KindAlreadyConnected, "client is not disconnected")
	}
	c.state = StateConnecting
	c.mu.Unlock()

	deadline := deadlineFromContext(ctx, c.opts.handshakeTimeout())

	stream, err := c.opts.dial(c.opts.Host, c.addrPort(), time.Until(deadline))
	if err != nil {
		c.resetToDisconnected()
		return err
	}

	framed := &transport.Framed{
		Stream:      stream,
		OverSizeCap: c.opts.OverSizeCap,
		Logger:      c.opts.Logger,
	}

	negotiated, err := c.handshake(framed, deadline)
	if err != nil {
		stream.Close()
		c.resetToDisconnected()
		return err
	}

	if c.opts.ClientName != "" {
		req := protocol.SetClientName{Name: c.opts.ClientName}
		if err := framed.SendFrame(0, req, deadline); err != nil {
			stream.Close()
			c.resetToDisconnected()
			return err
		}
	}

	c.mu.Lock()
	c.stream = stream
	c.framed = framed
	c.negotiatedVersion = negotiated
	c.pending = make(map[protocol.MessageType][]*pendingRequest)
	c.notifyC = make(chan protocol.DeviceListUpdated, 16)
	c.doneC = make(chan struct{})
	c.doneOnce = sync.Once{}
	c.state = StateConnected
	c.monitoring.init(c.addr())
	c.mu.Unlock()

	go c.pump()

	return nil
}

func (c *Client) addrPort() int {
	if c.opts.Port != 0 {
		return c.opts.Port
	}
	return network.DefaultPort
}

func (c *Client) resetToDisconnected() {
	c.mu.Lock()
	c.state = StateDisconnected
	c.mu.Unlock()
}

// handshake sends RequestProtocolVersion and awaits the reply. If the
// server closes the connection before replying, this explicitly falls back
// to version 0 for legacy daemons rather than treating it as fatal.
func (c *Client) handshake(framed *transport.Framed, deadline time.Time) (uint32, error) {
	req := protocol.RequestProtocolVersion{ClientVersion: ImplementedProtocolVersion}
	if err := framed.SendFrame(0, req, deadline); err != nil {
		return 0, err
	}

	frame, err := framed.RecvFrame(deadline)
	if err != nil {
		if protocol.KindOf(err) == protocol.KindDisconnected {
			c.logger().Warnf("server closed before replying to protocol version; assuming legacy version 0")
			return 0, nil
		}
		return 0, err
	}

	if protocol.MessageType(frame.Header.MessageType) != protocol.MessageTypeProtocolVersion {
		return 0, protocol.Errorf(protocol.KindUnexpectedMessage,
			"expected protocol version reply, got %v", protocol.MessageType(frame.Header.MessageType))
	}

	reply, err := protocol.DecodeReplyProtocolVersion(protocol.NewReader(frame.Body))
	if err != nil {
		return 0, err
	}

	negotiated := reply.ServerVersion
	if ImplementedProtocolVersion < negotiated {
		negotiated = ImplementedProtocolVersion
	}
	return negotiated, nil
}

// Close shuts down the connection. It is idempotent; calling Close on an
// already-Disconnected Client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosing
	c.mu.Unlock()

	c.fail(errClosedByCaller)
	return nil
}

// fail transitions the Client to Disconnected, records err as the terminal
// error, fails every pending (non-cancelled) request with it, and closes
// the transport. It is safe to call more than once or concurrently; only
// the first call has effect.
func (c *Client) fail(err error) {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnected
	c.closeErr = err
	pending := c.pending
	c.pending = nil
	stream := c.stream
	doneC := c.doneC
	c.mu.Unlock()

	c.monitoring.recordError(err)

	for _, queue := range pending {
		for _, pr := range queue {
			if !pr.cancelled {
				pr.resultC <- pendingResult{err: err}
			}
		}
	}

	if stream != nil {
		stream.Close()
	}
	if doneC != nil {
		c.doneOnce.Do(func() { close(doneC) })
	}
}

// pump is the single goroutine that owns the transport's read side. It
// reads frames until an error occurs, dispatching each to either the
// notification channel or the head of its message type's pending queue.
func (c *Client) pump() {
	for {
		frame, err := c.framed.RecvFrame(time.Time{})
		if err != nil {
			c.fail(err)
			return
		}

		c.monitoring.recordRecv(protocol.HeaderSize + len(frame.Body))

		mt := protocol.MessageType(frame.Header.MessageType)
		if mt.IsNotification() {
			select {
			case c.notifyC <- protocol.DeviceListUpdated{}:
			default:
				c.logger().Warnf("dropping notification: channel full")
			}
			continue
		}

		c.mu.Lock()
		queue := c.pending[mt]
		if len(queue) == 0 {
			c.mu.Unlock()
			c.fail(protocol.Errorf(protocol.KindUnexpectedMessage,
				"unexpected message %v: no pending request", mt))
			return
		}
		pr := queue[0]
		c.pending[mt] = queue[1:]
		c.monitoring.setPendingDepth(totalPending(c.pending))
		c.mu.Unlock()

		if !pr.cancelled {
			pr.resultC <- pendingResult{frame: frame}
		}
	}
}

func totalPending(m map[protocol.MessageType][]*pendingRequest) int {
	n := 0
	for _, q := range m {
		n += len(q)
	}
	return n
}

// sendRequest enqueues a reply expectation for req.Type(), sends req, and
// waits for the matching reply, a context cancellation, or connection
// failure, whichever comes first.
func (c *Client) sendRequest(ctx context.Context, deviceIdx uint32, req protocol.Request) (protocol.Frame, error) {
	c.sendMu.Lock()

	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		c.sendMu.Unlock()
		return protocol.Frame{}, protocol.NewError(protocol.KindNotConnected, "client is not connected")
	}
	pr := &pendingRequest{resultC: make(chan pendingResult, 1)}
	mt := req.Type()
	c.pending[mt] = append(c.pending[mt], pr)
	c.monitoring.setPendingDepth(totalPending(c.pending))
	framed := c.framed
	doneC := c.doneC
	c.mu.Unlock()

	deadline := deadlineFromContext(ctx, c.opts.requestTimeout())
	err := framed.SendFrame(deviceIdx, req, deadline)
	c.sendMu.Unlock()
	if err != nil {
		c.fail(err)
		return protocol.Frame{}, err
	}
	c.monitoring.recordSend(protocol.HeaderSize + req.BodySize())

	select {
	case res := <-pr.resultC:
		return res.frame, res.err
	case <-ctx.Done():
		c.mu.Lock()
		pr.cancelled = true
		c.mu.Unlock()
		return protocol.Frame{}, ctx.Err()
	case <-doneC:
		c.mu.Lock()
		closeErr := c.closeErr
		c.mu.Unlock()
		return protocol.Frame{}, closeErr
	}
}

// sendOnly sends req, which expects no reply, without touching the pending
// queue.
func (c *Client) sendOnly(deviceIdx uint32, req protocol.Request, deadline time.Time) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return protocol.NewError(protocol.KindNotConnected, "client is not connected")
	}
	framed := c.framed
	c.mu.Unlock()

	if err := framed.SendFrame(deviceIdx, req, deadline); err != nil {
		c.fail(err)
		return err
	}
	c.monitoring.recordSend(protocol.HeaderSize + req.BodySize())
	return nil
}

// PollNotifications waits for a DeviceListUpdated notification, ctx
// cancellation, or connection failure.
//
// A nil, nil return means ctx expired with no notification pending; it is
// not an error.
func (c *Client) PollNotifications(ctx context.Context) (*protocol.DeviceListUpdated, error) {
	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return nil, protocol.NewError(protocol.KindNotConnected, "client is not connected")
	}
	notifyC := c.notifyC
	doneC := c.doneC
	c.mu.Unlock()

	select {
	case n := <-notifyC:
		return &n, nil
	case <-ctx.Done():
		return nil, nil
	case <-doneC:
		c.mu.Lock()
		closeErr := c.closeErr
		c.mu.Unlock()
		return nil, closeErr
	}
}

