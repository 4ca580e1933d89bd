package net

import (
	"errors"

	"github.com/mosaicnetworks/glomers/src/message"
)

var (
	// ErrTransportShutdown is returned when operations on a transport are
	// invoked after it's been terminated.
	ErrTransportShutdown = errors.New("transport shutdown")
)

// Transport provides an interface for exchanging messages with the harness.
type Transport interface {

	// Receive blocks until the next request is available. It returns io.EOF
	// when the input is exhausted.
	Receive() (message.Message, error)

	// Send writes a message and flushes it before returning.
	Send(m message.Message) error

	// Close permanently closes a transport. Pending output is flushed.
	Close() error
}
