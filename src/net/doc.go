// Package net implements the transports that carry frames to and from a
// glomers node.
//
// A Transport hands out one decoded request at a time and writes replies back
// synchronously: Send returns only after the frame has been flushed, so a
// reader on the other side sees every reply before the next request is read.
// There are two implementations:
//
// - Stdio: newline-delimited JSON over an io.Reader and an io.Writer, normally
// the process's standard input and output. This is what the test harness
// talks to.
//
// - Inmem: a queue of preloaded requests and a record of sent replies, used in
// tests and when embedding a node in another Go program.
//
// Errors returned by Receive and Send are common.ProtocolErr values. Both kinds,
// MalformedInput and IOFailure, are fatal: the caller stops pumping frames.
// Receive returns io.EOF once the input is exhausted.
package net
