// Package message defines the wire protocol spoken by a glomers node.
//
// Every frame is one JSON object on its own line:
//
//  {"src":"c1","dest":"n1","body":{"type":"echo","msg_id":1,"echo":"hello"}}
//
// The body is a tagged union discriminated by its "type" field. Requests carry
// a msg_id chosen by the sender. Replies carry their own msg_id plus
// in_reply_to, which correlates them with the request they answer.
//
// Bodies form a closed set. Code that needs to act on every variant implements
// Handler, which has one method per variant, and calls Dispatch. Adding a
// variant adds a method to Handler, so every implementation has to be updated
// before the module compiles again.
package message
