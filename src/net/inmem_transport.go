package net

import (
	"io"
	"sync"

	"github.com/mosaicnetworks/glomers/src/message"
)

// InmemTransport implements the Transport interface without any I/O. Requests
// are queued with Push and replies are collected for inspection with Sent.
type InmemTransport struct {
	sync.Mutex
	inbound  []message.Message
	sent     []message.Message
	shutdown bool
}

// NewInmemTransport returns a transport whose Receive yields inbound, in
// order, and then io.EOF.
func NewInmemTransport(inbound ...message.Message) *InmemTransport {
	return &InmemTransport{
		inbound: append([]message.Message{}, inbound...),
	}
}

// Push appends requests to the inbound queue.
func (i *InmemTransport) Push(m ...message.Message) {
	i.Lock()
	defer i.Unlock()
	i.inbound = append(i.inbound, m...)
}

// Receive implements the Transport interface.
func (i *InmemTransport) Receive() (message.Message, error) {
	i.Lock()
	defer i.Unlock()

	if i.shutdown {
		return message.Message{}, ErrTransportShutdown
	}
	if len(i.inbound) == 0 {
		return message.Message{}, io.EOF
	}

	m := i.inbound[0]
	i.inbound = i.inbound[1:]
	return m, nil
}

// Send implements the Transport interface.
func (i *InmemTransport) Send(m message.Message) error {
	i.Lock()
	defer i.Unlock()

	if i.shutdown {
		return ErrTransportShutdown
	}
	i.sent = append(i.sent, m)
	return nil
}

// Sent returns a copy of every message sent so far.
func (i *InmemTransport) Sent() []message.Message {
	i.Lock()
	defer i.Unlock()
	return append([]message.Message{}, i.sent...)
}

// Close implements the Transport interface.
func (i *InmemTransport) Close() error {
	i.Lock()
	defer i.Unlock()
	i.shutdown = true
	return nil
}
