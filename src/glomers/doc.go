// Package glomers assembles a node from its configuration and runs it.
//
// The engine owns the main loop: read one request from the transport, step the
// node, write the reply if there is one, and start over. Nothing else runs
// concurrently except the optional HTTP service, which only reads node state.
//
//	engine := glomers.NewGlomers(config.NewDefaultConfig())
//	if err := engine.Init(); err != nil {
//		// handle
//	}
//	if err := engine.Run(); err != nil {
//		// fatal protocol or I/O error
//	}
//
// A Transport or Generator assigned before Init is kept, which is how tests and
// embedding programs substitute the standard input and output.
package glomers
