package message

import "strings"

// Body is the payload of a Message. The set of implementations is closed to
// this package.
type Body interface {
	// Type returns the wire tag of the body.
	Type() Type
	// MessageID returns the body's own msg_id.
	MessageID() uint32

	accept(h Handler) (Body, error)
	fields() map[string]interface{}
}

// Handler reacts to every body variant. A method returns the reply body, or
// nil when no reply is due.
type Handler interface {
	Init(b Init) (Body, error)
	InitOk(b InitOk) (Body, error)
	Echo(b Echo) (Body, error)
	EchoOk(b EchoOk) (Body, error)
	Generate(b Generate) (Body, error)
	GenerateOk(b GenerateOk) (Body, error)
	Broadcast(b Broadcast) (Body, error)
	BroadcastOk(b BroadcastOk) (Body, error)
	Read(b Read) (Body, error)
	ReadOk(b ReadOk) (Body, error)
	Topology(b Topology) (Body, error)
	TopologyOk(b TopologyOk) (Body, error)
}

// Dispatch calls the method of h that matches the variant of b.
func Dispatch(h Handler, b Body) (Body, error) {
	return b.accept(h)
}

// IsReply reports whether t is the tag of a reply variant.
func IsReply(t Type) bool {
	return strings.HasSuffix(string(t), "_ok")
}

// Init assigns a node its identity and tells it about the whole cluster.
type Init struct {
	MsgID   uint32
	NodeID  string
	NodeIDs []string
}

// InitOk acknowledges an Init.
type InitOk struct {
	MsgID     uint32
	InReplyTo uint32
}

// Echo asks the node to send Echo back.
type Echo struct {
	MsgID uint32
	Echo  string
}

// EchoOk carries the echoed string.
type EchoOk struct {
	MsgID     uint32
	InReplyTo uint32
	Echo      string
}

// Generate asks for a cluster-wide unique identifier.
type Generate struct {
	MsgID uint32
}

// GenerateOk carries the generated identifier.
type GenerateOk struct {
	MsgID     uint32
	InReplyTo uint32
	ID        string
}

// Broadcast delivers a value to be remembered by the node.
type Broadcast struct {
	MsgID   uint32
	Message int
}

// BroadcastOk acknowledges a Broadcast.
type BroadcastOk struct {
	MsgID     uint32
	InReplyTo uint32
}

// Read asks for every value received through Broadcast. Some workloads send
// a key along with the request; it is accepted and ignored.
type Read struct {
	MsgID uint32
}

// ReadOk carries the values received so far.
type ReadOk struct {
	MsgID     uint32
	InReplyTo uint32
	Messages  []int
}

// Topology tells the node who its neighbors are.
type Topology struct {
	MsgID    uint32
	Topology map[string][]string
}

// TopologyOk acknowledges a Topology.
type TopologyOk struct {
	MsgID     uint32
	InReplyTo uint32
}

func (b Init) Type() Type        { return TypeInit }
func (b InitOk) Type() Type      { return TypeInitOk }
func (b Echo) Type() Type        { return TypeEcho }
func (b EchoOk) Type() Type      { return TypeEchoOk }
func (b Generate) Type() Type    { return TypeGenerate }
func (b GenerateOk) Type() Type  { return TypeGenerateOk }
func (b Broadcast) Type() Type   { return TypeBroadcast }
func (b BroadcastOk) Type() Type { return TypeBroadcastOk }
func (b Read) Type() Type        { return TypeRead }
func (b ReadOk) Type() Type      { return TypeReadOk }
func (b Topology) Type() Type    { return TypeTopology }
func (b TopologyOk) Type() Type  { return TypeTopologyOk }

func (b Init) MessageID() uint32        { return b.MsgID }
func (b InitOk) MessageID() uint32      { return b.MsgID }
func (b Echo) MessageID() uint32        { return b.MsgID }
func (b EchoOk) MessageID() uint32      { return b.MsgID }
func (b Generate) MessageID() uint32    { return b.MsgID }
func (b GenerateOk) MessageID() uint32  { return b.MsgID }
func (b Broadcast) MessageID() uint32   { return b.MsgID }
func (b BroadcastOk) MessageID() uint32 { return b.MsgID }
func (b Read) MessageID() uint32        { return b.MsgID }
func (b ReadOk) MessageID() uint32      { return b.MsgID }
func (b Topology) MessageID() uint32    { return b.MsgID }
func (b TopologyOk) MessageID() uint32  { return b.MsgID }

func (b Init) accept(h Handler) (Body, error)        { return h.Init(b) }
func (b InitOk) accept(h Handler) (Body, error)      { return h.InitOk(b) }
func (b Echo) accept(h Handler) (Body, error)        { return h.Echo(b) }
func (b EchoOk) accept(h Handler) (Body, error)      { return h.EchoOk(b) }
func (b Generate) accept(h Handler) (Body, error)    { return h.Generate(b) }
func (b GenerateOk) accept(h Handler) (Body, error)  { return h.GenerateOk(b) }
func (b Broadcast) accept(h Handler) (Body, error)   { return h.Broadcast(b) }
func (b BroadcastOk) accept(h Handler) (Body, error) { return h.BroadcastOk(b) }
func (b Read) accept(h Handler) (Body, error)        { return h.Read(b) }
func (b ReadOk) accept(h Handler) (Body, error)      { return h.ReadOk(b) }
func (b Topology) accept(h Handler) (Body, error)    { return h.Topology(b) }
func (b TopologyOk) accept(h Handler) (Body, error)  { return h.TopologyOk(b) }
