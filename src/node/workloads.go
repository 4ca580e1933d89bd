package node

import (
	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/sirupsen/logrus"
)

// workloads is the message.Handler view of a Node.
type workloads Node

func (w *workloads) Init(b message.Init) (message.Body, error) {
	if w.getState() == Initialized {
		w.logger.WithFields(logrus.Fields{
			"id":     w.id,
			"new_id": b.NodeID,
		}).Warn("Init received twice, overwriting identity")
	}

	w.id = b.NodeID
	w.neighbors = append([]string{}, b.NodeIDs...)
	w.counter.reset(b.MsgID + 1)
	w.setState(Initialized)

	w.logger.WithFields(logrus.Fields{
		"id":       w.id,
		"node_ids": w.neighbors,
	}).Info("Initialized")

	// The handshake reply reuses the id of the request.
	return message.InitOk{
		MsgID:     b.MsgID,
		InReplyTo: b.MsgID,
	}, nil
}

func (w *workloads) Echo(b message.Echo) (message.Body, error) {
	return message.EchoOk{
		MsgID:     w.counter.take(),
		InReplyTo: b.MsgID,
		Echo:      b.Echo,
	}, nil
}

func (w *workloads) Generate(b message.Generate) (message.Body, error) {
	id, err := w.generator.Generate()
	if err != nil {
		return nil, common.NewProtocolErr(common.IOFailure, "generate", err)
	}

	return message.GenerateOk{
		MsgID:     w.counter.take(),
		InReplyTo: b.MsgID,
		ID:        id,
	}, nil
}

func (w *workloads) Broadcast(b message.Broadcast) (message.Body, error) {
	w.messages = append(w.messages, b.Message)

	return message.BroadcastOk{
		MsgID:     w.counter.take(),
		InReplyTo: b.MsgID,
	}, nil
}

func (w *workloads) Read(b message.Read) (message.Body, error) {
	return message.ReadOk{
		MsgID:     w.counter.take(),
		InReplyTo: b.MsgID,
		Messages:  append([]int{}, w.messages...),
	}, nil
}

func (w *workloads) Topology(b message.Topology) (message.Body, error) {
	neighbors, ok := b.Topology[w.id]
	if !ok {
		w.logger.WithField("id", w.id).Debug("Topology has no entry for this node")
	}
	w.neighbors = append([]string{}, neighbors...)

	w.logger.WithField("neighbors", w.neighbors).Debug("Topology updated")

	return message.TopologyOk{
		MsgID:     w.counter.take(),
		InReplyTo: b.MsgID,
	}, nil
}

// Replies from other nodes need no answer.

func (w *workloads) InitOk(b message.InitOk) (message.Body, error)           { return nil, nil }
func (w *workloads) EchoOk(b message.EchoOk) (message.Body, error)           { return nil, nil }
func (w *workloads) GenerateOk(b message.GenerateOk) (message.Body, error)   { return nil, nil }
func (w *workloads) BroadcastOk(b message.BroadcastOk) (message.Body, error) { return nil, nil }
func (w *workloads) ReadOk(b message.ReadOk) (message.Body, error)           { return nil, nil }
func (w *workloads) TopologyOk(b message.TopologyOk) (message.Body, error)   { return nil, nil }
