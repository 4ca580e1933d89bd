package net

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"sync"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/sirupsen/logrus"
)

const (
	bufSize = math.MaxUint16
)

// StdioTransport reads newline-delimited frames from an io.Reader and writes
// them to an io.Writer. Lines have no length limit; blank lines are skipped and
// a last line without a terminating newline is still accepted.
type StdioTransport struct {
	logger *logrus.Entry

	r *bufio.Reader
	w *bufio.Writer

	shutdown     bool
	shutdownLock sync.Mutex
}

// NewStdioTransport wraps in and out. Pass os.Stdin and os.Stdout to talk to
// the harness.
func NewStdioTransport(in io.Reader, out io.Writer, logger *logrus.Entry) *StdioTransport {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &StdioTransport{
		logger: logger,
		r:      bufio.NewReaderSize(in, bufSize),
		w:      bufio.NewWriterSize(out, bufSize),
	}
}

// IsShutdown is used to check if the transport is shutdown.
func (t *StdioTransport) IsShutdown() bool {
	t.shutdownLock.Lock()
	defer t.shutdownLock.Unlock()
	return t.shutdown
}

// Receive implements the Transport interface.
func (t *StdioTransport) Receive() (message.Message, error) {
	if t.IsShutdown() {
		return message.Message{}, ErrTransportShutdown
	}

	for {
		line, err := t.r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return message.Message{}, common.NewProtocolErr(common.IOFailure, "read", err)
		}

		frame := bytes.TrimSpace(line)
		if len(frame) == 0 {
			if err == io.EOF {
				return message.Message{}, io.EOF
			}
			continue
		}

		m, derr := message.Decode(frame)
		if derr != nil {
			t.logger.WithFields(logrus.Fields{
				"frame": string(frame),
				"error": derr,
			}).Error("Failed to decode frame")
			return message.Message{}, derr
		}

		return m, nil
	}
}

// Send implements the Transport interface.
func (t *StdioTransport) Send(m message.Message) error {
	if t.IsShutdown() {
		return ErrTransportShutdown
	}

	frame, err := message.Encode(m)
	if err != nil {
		return common.NewProtocolErr(common.IOFailure, "encode", err)
	}

	if _, err := t.w.Write(frame); err != nil {
		return common.NewProtocolErr(common.IOFailure, "write", err)
	}
	if err := t.w.WriteByte('\n'); err != nil {
		return common.NewProtocolErr(common.IOFailure, "write", err)
	}
	if err := t.w.Flush(); err != nil {
		return common.NewProtocolErr(common.IOFailure, "flush", err)
	}

	return nil
}

// Close implements the Transport interface. The underlying reader and writer
// are left open; they belong to the caller.
func (t *StdioTransport) Close() error {
	t.shutdownLock.Lock()
	defer t.shutdownLock.Unlock()

	if t.shutdown {
		return nil
	}
	t.shutdown = true

	if err := t.w.Flush(); err != nil {
		return common.NewProtocolErr(common.IOFailure, "flush", err)
	}
	return nil
}
