package node

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/ids"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/sirupsen/logrus"
)

var errNoBody = errors.New("message has no body")

// Node is the protocol state machine of a single cluster member. It is not
// safe for concurrent use; callers that share a Node serialize access.
type Node struct {
	state

	logger *logrus.Entry

	generator ids.Generator

	id        string
	neighbors []string
	counter   msgIDCounter
	messages  []int
}

// NewNode is a factory method that returns a Node with empty state.
func NewNode(conf *Config, generator ids.Generator) *Node {
	return &Node{
		logger:    conf.Logger,
		generator: generator,
		neighbors: []string{},
		messages:  []int{},
	}
}

// Step applies req to the node and returns the reply to send back, if any.
// Apart from a message without a body, the only error comes from the id
// generator.
func (n *Node) Step(req message.Message) (message.Message, bool, error) {
	if req.Body == nil {
		return message.Message{}, false, common.NewProtocolErr(common.MalformedInput, "step", errNoBody)
	}

	body, err := message.Dispatch((*workloads)(n), req.Body)
	if err != nil {
		return message.Message{}, false, err
	}

	if body == nil {
		n.logger.WithFields(logrus.Fields{
			"type":   req.Body.Type(),
			"src":    req.Src,
			"msg_id": req.Body.MessageID(),
		}).Debug("Acknowledgment discarded")
		return message.Message{}, false, nil
	}

	return message.NewReply(req, body), true, nil
}

// ID returns the identity assigned by init, or "" before that.
func (n *Node) ID() string {
	return n.id
}

// Neighbors returns a copy of the current neighbor list.
func (n *Node) Neighbors() []string {
	return append([]string{}, n.neighbors...)
}

// NextMsgID returns the msg_id the next reply will carry.
func (n *Node) NextMsgID() uint32 {
	return n.counter.peek()
}

// Messages returns a copy of the values received through broadcast, in
// arrival order.
func (n *Node) Messages() []int {
	return append([]int{}, n.messages...)
}

// GetState returns the lifecycle state of the node.
func (n *Node) GetState() State {
	return n.getState()
}

// GetStats returns a flat summary of the node, for logs and the HTTP service.
func (n *Node) GetStats() map[string]string {
	return map[string]string{
		"id":          n.id,
		"state":       n.getState().String(),
		"neighbors":   strings.Join(n.neighbors, ","),
		"num_peers":   strconv.Itoa(len(n.neighbors)),
		"next_msg_id": strconv.FormatUint(uint64(n.counter.peek()), 10),
		"messages":    strconv.Itoa(len(n.messages)),
	}
}
