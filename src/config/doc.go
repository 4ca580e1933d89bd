// Package config defines the configuration of a glomers node.
//
// A Config is built with NewDefaultConfig and then overridden by command-line
// flags and an optional config file, see cmd/glomers. None of the options
// change how the node answers requests; they only control logging, the data
// directory and the optional HTTP service.
package config
