// Package node implements the reactive core of a glomers node.
//
// A Node owns the per-process state: the identity assigned by the init
// handshake, the neighbor list, the counter used to number replies, and the
// values accumulated by the broadcast workload. Step feeds it one request at a
// time and returns the reply, if any.
//
// Message ids
//
// Every reply carries its own msg_id, drawn from a counter that starts at 0
// and grows by one per reply. The init handshake is the exception: its reply
// reuses the msg_id of the init request, and the counter continues one past
// it. Replies received from other nodes are acknowledged silently; they
// produce no reply and leave the state untouched.
//
// Topology
//
// The topology workload only records the neighbors of this node. Broadcast
// values are kept locally and are not forwarded to anyone.
package node
