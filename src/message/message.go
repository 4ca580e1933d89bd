package message

// Type is the value of the "type" tag of a message body.
type Type string

const (
	TypeInit        Type = "init"
	TypeInitOk      Type = "init_ok"
	TypeEcho        Type = "echo"
	TypeEchoOk      Type = "echo_ok"
	TypeGenerate    Type = "generate"
	TypeGenerateOk  Type = "generate_ok"
	TypeBroadcast   Type = "broadcast"
	TypeBroadcastOk Type = "broadcast_ok"
	TypeRead        Type = "read"
	TypeReadOk      Type = "read_ok"
	TypeTopology    Type = "topology"
	TypeTopologyOk  Type = "topology_ok"
)

// Types lists every tag known to the protocol, requests first.
var Types = []Type{
	TypeInit,
	TypeEcho,
	TypeGenerate,
	TypeBroadcast,
	TypeRead,
	TypeTopology,
	TypeInitOk,
	TypeEchoOk,
	TypeGenerateOk,
	TypeBroadcastOk,
	TypeReadOk,
	TypeTopologyOk,
}

// Message is the envelope exchanged between nodes and clients. A Message is
// never modified after construction; replies are built with NewReply.
type Message struct {
	Src  string
	Dest string
	Body Body
}

// NewReply addresses body back to the sender of req.
func NewReply(req Message, body Body) Message {
	return Message{
		Src:  req.Dest,
		Dest: req.Src,
		Body: body,
	}
}
