package node

import (
	"sync/atomic"
)

// State captures the lifecycle of a node: Uninitialized until the first init
// message, Initialized afterwards.
type State uint32

const (
	// Uninitialized is the state of a node that has not received init yet.
	Uninitialized State = iota
	// Initialized is the state of a node that knows its identity.
	Initialized
)

// String ...
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}

// msgIDCounter numbers the replies sent by a node. The zero value hands out 0
// first.
type msgIDCounter struct {
	next uint32
}

// take returns the current value and advances the counter.
func (c *msgIDCounter) take() uint32 {
	id := c.next
	c.next++
	return id
}

func (c *msgIDCounter) peek() uint32 {
	return c.next
}

func (c *msgIDCounter) reset(next uint32) {
	c.next = next
}
