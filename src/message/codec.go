package message

import (
	"bytes"
	"fmt"
	"math"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/ugorji/go/codec"
)

// jsonHandle is shared by every encoder and decoder. Canonical encoding sorts
// map keys so that a given Message always produces the same frame.
var jsonHandle = newJSONHandle()

func newJSONHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.HTMLCharsAsIs = true
	return jh
}

// rawObject holds the members of a JSON object with their values still
// encoded. The decoder would otherwise coerce "1" into a number or 5 into a
// string, so every value has its JSON kind checked before it is decoded.
type rawObject map[string]codec.Raw

func malformed(format string, args ...interface{}) error {
	return common.NewProtocolErr(common.MalformedInput, "decode", fmt.Errorf(format, args...))
}

// Decode parses one frame. Any frame that does not fit the schema yields a
// common.ProtocolErr of kind MalformedInput.
func Decode(frame []byte) (Message, error) {
	var top rawObject

	dec := codec.NewDecoderBytes(frame, jsonHandle)
	if err := dec.Decode(&top); err != nil {
		return Message{}, common.NewProtocolErr(common.MalformedInput, "decode", err)
	}

	if n := dec.NumBytesRead(); n > len(frame) || len(bytes.TrimSpace(frame[n:])) != 0 {
		return Message{}, malformed("trailing data after message")
	}

	src, err := top.string("src")
	if err != nil {
		return Message{}, err
	}
	dest, err := top.string("dest")
	if err != nil {
		return Message{}, err
	}
	body, err := top.object("body")
	if err != nil {
		return Message{}, err
	}

	b, err := body.toBody()
	if err != nil {
		return Message{}, err
	}

	return Message{
		Src:  src,
		Dest: dest,
		Body: b,
	}, nil
}

func (o rawObject) toBody() (Body, error) {
	typ, err := o.string("type")
	if err != nil {
		return nil, err
	}
	t := Type(typ)

	msgID, err := o.uint32("msg_id")
	if err != nil {
		return nil, err
	}

	switch t {
	case TypeInit:
		nodeID, err := o.string("node_id")
		if err != nil {
			return nil, err
		}
		nodeIDs, err := o.strings("node_ids")
		if err != nil {
			return nil, err
		}
		return Init{MsgID: msgID, NodeID: nodeID, NodeIDs: nodeIDs}, nil
	case TypeEcho:
		echo, err := o.string("echo")
		if err != nil {
			return nil, err
		}
		return Echo{MsgID: msgID, Echo: echo}, nil
	case TypeGenerate:
		return Generate{MsgID: msgID}, nil
	case TypeBroadcast:
		message, err := o.int("message")
		if err != nil {
			return nil, err
		}
		return Broadcast{MsgID: msgID, Message: message}, nil
	case TypeRead:
		// key is accepted with any value
		return Read{MsgID: msgID}, nil
	case TypeTopology:
		topology, err := o.topology("topology")
		if err != nil {
			return nil, err
		}
		return Topology{MsgID: msgID, Topology: topology}, nil
	}

	if !isKnown(t) {
		return nil, malformed("unknown type %q", t)
	}

	// Everything below is a reply and must be correlated.
	inReplyTo, err := o.uint32("in_reply_to")
	if err != nil {
		return nil, err
	}

	switch t {
	case TypeInitOk:
		return InitOk{MsgID: msgID, InReplyTo: inReplyTo}, nil
	case TypeEchoOk:
		echo, err := o.string("echo")
		if err != nil {
			return nil, err
		}
		return EchoOk{MsgID: msgID, InReplyTo: inReplyTo, Echo: echo}, nil
	case TypeGenerateOk:
		id, err := o.string("id")
		if err != nil {
			return nil, err
		}
		return GenerateOk{MsgID: msgID, InReplyTo: inReplyTo, ID: id}, nil
	case TypeBroadcastOk:
		return BroadcastOk{MsgID: msgID, InReplyTo: inReplyTo}, nil
	case TypeReadOk:
		messages, err := o.ints("messages")
		if err != nil {
			return nil, err
		}
		return ReadOk{MsgID: msgID, InReplyTo: inReplyTo, Messages: messages}, nil
	case TypeTopologyOk:
		return TopologyOk{MsgID: msgID, InReplyTo: inReplyTo}, nil
	}

	return nil, malformed("unknown type %q", t)
}

func isKnown(t Type) bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

func (o rawObject) field(key string) (codec.Raw, error) {
	raw, ok := o[key]
	if !ok {
		return nil, malformed("missing field %s", key)
	}
	return raw, nil
}

func (o rawObject) string(key string) (string, error) {
	raw, err := o.field(key)
	if err != nil {
		return "", err
	}
	return decodeString(key, raw)
}

func (o rawObject) uint32(key string) (uint32, error) {
	raw, err := o.field(key)
	if err != nil {
		return 0, err
	}
	if err := checkInteger(key, raw); err != nil {
		return 0, err
	}
	if firstByte(raw) == '-' {
		return 0, malformed("field %s: negative value", key)
	}

	var v uint64
	if err := decodeRaw(raw, &v); err != nil {
		return 0, malformed("field %s: %v", key, err)
	}
	if v > math.MaxUint32 {
		return 0, malformed("field %s: %d out of range", key, v)
	}
	return uint32(v), nil
}

func (o rawObject) int(key string) (int, error) {
	raw, err := o.field(key)
	if err != nil {
		return 0, err
	}
	return decodeInt(key, raw)
}

func (o rawObject) object(key string) (rawObject, error) {
	raw, err := o.field(key)
	if err != nil {
		return nil, err
	}
	if firstByte(raw) != '{' {
		return nil, malformed("field %s: expected object", key)
	}

	var obj rawObject
	if err := decodeRaw(raw, &obj); err != nil {
		return nil, malformed("field %s: %v", key, err)
	}
	return obj, nil
}

func (o rawObject) strings(key string) ([]string, error) {
	raw, err := o.field(key)
	if err != nil {
		return nil, err
	}
	return decodeStrings(key, raw)
}

func (o rawObject) ints(key string) ([]int, error) {
	raw, err := o.field(key)
	if err != nil {
		return nil, err
	}
	items, err := decodeArray(key, raw)
	if err != nil {
		return nil, err
	}

	res := make([]int, 0, len(items))
	for _, item := range items {
		v, err := decodeInt(key, item)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (o rawObject) topology(key string) (map[string][]string, error) {
	obj, err := o.object(key)
	if err != nil {
		return nil, err
	}

	res := make(map[string][]string, len(obj))
	for node, raw := range obj {
		neighbors, err := decodeStrings(key+"."+node, raw)
		if err != nil {
			return nil, err
		}
		res[node] = neighbors
	}
	return res, nil
}

func decodeRaw(raw codec.Raw, v interface{}) error {
	return codec.NewDecoderBytes(raw, jsonHandle).Decode(v)
}

func firstByte(raw codec.Raw) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func decodeString(key string, raw codec.Raw) (string, error) {
	if firstByte(raw) != '"' {
		return "", malformed("field %s: expected string", key)
	}

	var v string
	if err := decodeRaw(raw, &v); err != nil {
		return "", malformed("field %s: %v", key, err)
	}
	return v, nil
}

// checkInteger accepts a JSON number without fraction or exponent.
func checkInteger(key string, raw codec.Raw) error {
	c := firstByte(raw)
	if c != '-' && (c < '0' || c > '9') {
		return malformed("field %s: expected integer", key)
	}
	if bytes.ContainsAny(raw, ".eE") {
		return malformed("field %s: expected integer", key)
	}
	return nil
}

func decodeInt(key string, raw codec.Raw) (int, error) {
	if err := checkInteger(key, raw); err != nil {
		return 0, err
	}

	var v int64
	if err := decodeRaw(raw, &v); err != nil {
		return 0, malformed("field %s: %v", key, err)
	}
	if v < math.MinInt || v > math.MaxInt {
		return 0, malformed("field %s: %d out of range", key, v)
	}
	return int(v), nil
}

func decodeArray(key string, raw codec.Raw) ([]codec.Raw, error) {
	if firstByte(raw) != '[' {
		return nil, malformed("field %s: expected array", key)
	}

	var items []codec.Raw
	if err := decodeRaw(raw, &items); err != nil {
		return nil, malformed("field %s: %v", key, err)
	}
	return items, nil
}

func decodeStrings(key string, raw codec.Raw) ([]string, error) {
	items, err := decodeArray(key, raw)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(items))
	for _, item := range items {
		v, err := decodeString(key, item)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Encode renders m as a single JSON object without a trailing newline.
func Encode(m Message) ([]byte, error) {
	if m.Body == nil {
		return nil, fmt.Errorf("encode: message from %q to %q has no body", m.Src, m.Dest)
	}

	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, jsonHandle)

	// Encoded as a map so that Canonical orders the keys of the envelope
	// like those of the body.
	err := enc.Encode(map[string]interface{}{
		"src":  m.Src,
		"dest": m.Dest,
		"body": m.Body.fields(),
	})
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func replyFields(t Type, msgID, inReplyTo uint32) map[string]interface{} {
	return map[string]interface{}{
		"type":        string(t),
		"msg_id":      msgID,
		"in_reply_to": inReplyTo,
	}
}

func requestFields(t Type, msgID uint32) map[string]interface{} {
	return map[string]interface{}{
		"type":   string(t),
		"msg_id": msgID,
	}
}

func (b Init) fields() map[string]interface{} {
	f := requestFields(b.Type(), b.MsgID)
	f["node_id"] = b.NodeID
	f["node_ids"] = nonNilStrings(b.NodeIDs)
	return f
}

func (b InitOk) fields() map[string]interface{} {
	return replyFields(b.Type(), b.MsgID, b.InReplyTo)
}

func (b Echo) fields() map[string]interface{} {
	f := requestFields(b.Type(), b.MsgID)
	f["echo"] = b.Echo
	return f
}

func (b EchoOk) fields() map[string]interface{} {
	f := replyFields(b.Type(), b.MsgID, b.InReplyTo)
	f["echo"] = b.Echo
	return f
}

func (b Generate) fields() map[string]interface{} {
	return requestFields(b.Type(), b.MsgID)
}

func (b GenerateOk) fields() map[string]interface{} {
	f := replyFields(b.Type(), b.MsgID, b.InReplyTo)
	f["id"] = b.ID
	return f
}

func (b Broadcast) fields() map[string]interface{} {
	f := requestFields(b.Type(), b.MsgID)
	f["message"] = b.Message
	return f
}

func (b BroadcastOk) fields() map[string]interface{} {
	return replyFields(b.Type(), b.MsgID, b.InReplyTo)
}

func (b Read) fields() map[string]interface{} {
	return requestFields(b.Type(), b.MsgID)
}

func (b ReadOk) fields() map[string]interface{} {
	f := replyFields(b.Type(), b.MsgID, b.InReplyTo)
	messages := b.Messages
	if messages == nil {
		messages = []int{}
	}
	f["messages"] = messages
	return f
}

func (b Topology) fields() map[string]interface{} {
	f := requestFields(b.Type(), b.MsgID)
	topology := b.Topology
	if topology == nil {
		topology = map[string][]string{}
	}
	f["topology"] = topology
	return f
}

func (b TopologyOk) fields() map[string]interface{} {
	return replyFields(b.Type(), b.MsgID, b.InReplyTo)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
