package net

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestStdioReceive(t *testing.T) {
	input := strings.Join([]string{
		`{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":1,"echo":"a"}}`,
		``,
		`   `,
		`{"src":"c1","dest":"n1","body":{"type":"read","msg_id":2}}`,
	}, "\n")

	trans := NewStdioTransport(strings.NewReader(input), &bytes.Buffer{}, common.NewTestEntry(t, common.TestLogLevel))

	first, err := trans.Receive()
	if err != nil {
		t.Fatalf("first Receive: %v", err)
	}
	if echo, ok := first.Body.(message.Echo); !ok || echo.Echo != "a" {
		t.Fatalf("first body should be echo \"a\", got %#v", first.Body)
	}

	// last line has no trailing newline
	second, err := trans.Receive()
	if err != nil {
		t.Fatalf("second Receive: %v", err)
	}
	if second.Body.Type() != message.TypeRead {
		t.Fatalf("second body should be read, got %s", second.Body.Type())
	}

	if _, err := trans.Receive(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestStdioReceiveEmpty(t *testing.T) {
	trans := NewStdioTransport(strings.NewReader("\n\n"), &bytes.Buffer{}, common.NewTestEntry(t, common.TestLogLevel))

	if _, err := trans.Receive(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestStdioReceiveMalformed(t *testing.T) {
	trans := NewStdioTransport(strings.NewReader("not json\n"), &bytes.Buffer{}, common.NewTestEntry(t, common.TestLogLevel))

	_, err := trans.Receive()
	if !common.IsProtocol(err, common.MalformedInput) {
		t.Fatalf("expected MalformedInput, got %v", err)
	}
}

func TestStdioReceiveReadError(t *testing.T) {
	trans := NewStdioTransport(failingReader{}, &bytes.Buffer{}, common.NewTestEntry(t, common.TestLogLevel))

	_, err := trans.Receive()
	if !common.IsProtocol(err, common.IOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected cause io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestStdioSend(t *testing.T) {
	var out bytes.Buffer
	trans := NewStdioTransport(strings.NewReader(""), &out, common.NewTestEntry(t, common.TestLogLevel))

	m := message.Message{
		Src:  "n1",
		Dest: "c1",
		Body: message.BroadcastOk{MsgID: 0, InReplyTo: 3},
	}
	if err := trans.Send(m); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// flushed before Send returns
	expected := `{"body":{"in_reply_to":3,"msg_id":0,"type":"broadcast_ok"},"dest":"c1","src":"n1"}` + "\n"
	if out.String() != expected {
		t.Fatalf("expected %q, got %q", expected, out.String())
	}

	if err := trans.Send(m); err != nil {
		t.Fatalf("second Send: %v", err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 2 {
		t.Fatalf("expected 2 frames, got %d", lines)
	}
}

func TestStdioSendWriteError(t *testing.T) {
	trans := NewStdioTransport(strings.NewReader(""), failingWriter{}, common.NewTestEntry(t, common.TestLogLevel))

	err := trans.Send(message.Message{
		Src:  "n1",
		Dest: "c1",
		Body: message.TopologyOk{MsgID: 1, InReplyTo: 1},
	})
	if !common.IsProtocol(err, common.IOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
}

func TestStdioClose(t *testing.T) {
	trans := NewStdioTransport(strings.NewReader("x\n"), &bytes.Buffer{}, common.NewTestEntry(t, common.TestLogLevel))

	if err := trans.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := trans.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := trans.Receive(); err != ErrTransportShutdown {
		t.Fatalf("expected ErrTransportShutdown, got %v", err)
	}
	if err := trans.Send(message.Message{}); err != ErrTransportShutdown {
		t.Fatalf("expected ErrTransportShutdown, got %v", err)
	}
}

func TestInmemTransport(t *testing.T) {
	req := message.Message{Src: "c1", Dest: "n1", Body: message.Generate{MsgID: 4}}
	trans := NewInmemTransport(req)

	got, err := trans.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if got.Body.MessageID() != 4 {
		t.Fatalf("expected msg_id 4, got %d", got.Body.MessageID())
	}
	if _, err := trans.Receive(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	trans.Push(req)
	if _, err := trans.Receive(); err != nil {
		t.Fatalf("Receive after Push: %v", err)
	}

	reply := message.NewReply(req, message.GenerateOk{MsgID: 0, InReplyTo: 4, ID: "x"})
	if err := trans.Send(reply); err != nil {
		t.Fatalf("Send: %v", err)
	}

	sent := trans.Sent()
	if len(sent) != 1 || sent[0].Dest != "c1" {
		t.Fatalf("unexpected sent messages %#v", sent)
	}

	trans.Close()
	if err := trans.Send(reply); err != ErrTransportShutdown {
		t.Fatalf("expected ErrTransportShutdown, got %v", err)
	}
}
