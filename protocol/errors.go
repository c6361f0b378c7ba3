// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	"github.com/pkg/errors"
)

// Kind classifies a protocol-level error.
type Kind int

const (
	// KindUnknown is the zero value; it should never be observed on a
	// returned *Error.
	KindUnknown Kind = iota

	// KindTruncated means an input cursor was exhausted mid-field.
	KindTruncated
	// KindMalformed means an invariant was violated (bad magic, an enum out
	// of range, an inconsistent matrix_length, active_mode out of range).
	KindMalformed
	// KindUnknownType means a header's message_type did not match any
	// recognised code.
	KindUnknownType
	// KindOverSized means a declared body_size exceeded the configured cap.
	KindOverSized
	// KindUnexpectedMessage means an inbound frame's code matched no pending
	// reply expectation and is not a known notification.
	KindUnexpectedMessage
	// KindDisconnected means the transport closed or reset.
	KindDisconnected
	// KindTimeout means a deadline fired mid-operation.
	KindTimeout
	// KindNotConnected means an API call was made on a closed handle.
	KindNotConnected
	// KindAlreadyConnected means Connect was called on a live handle.
	KindAlreadyConnected
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindMalformed:
		return "malformed"
	case KindUnknownType:
		return "unknown-type"
	case KindOverSized:
		return "over-sized"
	case KindUnexpectedMessage:
		return "unexpected-message"
	case KindDisconnected:
		return "disconnected"
	case KindTimeout:
		return "timeout"
	case KindNotConnected:
		return "not-connected"
	case KindAlreadyConnected:
		return "already-connected"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this Kind always break the connection.
//
// KindNotConnected and KindAlreadyConnected are recoverable: the caller may
// reconnect, or is simply misusing an already-live handle.
func (k Kind) Fatal() bool {
	switch k {
	case KindNotConnected, KindAlreadyConnected:
		return false
	default:
		return true
	}
}

// Error is a protocol-level error tagged with a Kind.
//
// The original cause, if any, is available via errors.Cause.
type Error struct {
	Kind Kind
	err  error
}

// NewError builds an *Error of the given Kind wrapping msg.
func NewError(k Kind, msg string) *Error {
	return &Error{Kind: k, err: errors.New(msg)}
}

// Wrap builds an *Error of the given Kind wrapping cause with a message.
//
// If cause is nil, Wrap returns nil.
func Wrap(cause error, k Kind, msg string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: k, err: errors.Wrap(cause, msg)}
}

// Errorf builds an *Error of the given Kind with a formatted message.
func Errorf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, err: errors.Errorf(format, args...)}
}

func (e *Error) Error() string { return e.err.Error() }

// Cause implements the interface github.com/pkg/errors.Cause uses to unwrap
// to the underlying error.
func (e *Error) Cause() error { return e.err }

// Unwrap supports errors.Is/errors.As from the standard library.
func (e *Error) Unwrap() error { return e.err }

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// KindUnknown otherwise.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
