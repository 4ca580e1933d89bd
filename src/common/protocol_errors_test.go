package common

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestIsProtocol(t *testing.T) {
	malformed := NewProtocolErr(MalformedInput, "decode", errors.New("unknown type"))
	ioErr := NewProtocolErr(IOFailure, "write", io.ErrClosedPipe)

	if !IsProtocol(malformed, MalformedInput) {
		t.Fatal("malformed error should be MalformedInput")
	}
	if IsProtocol(malformed, IOFailure) {
		t.Fatal("malformed error should not be IOFailure")
	}
	if !IsProtocol(ioErr, IOFailure) {
		t.Fatal("io error should be IOFailure")
	}
	if IsProtocol(fmt.Errorf("plain"), MalformedInput) {
		t.Fatal("plain error should not be a ProtocolErr")
	}
}

func TestProtocolErrUnwrap(t *testing.T) {
	err := NewProtocolErr(IOFailure, "flush", io.ErrClosedPipe)

	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("errors.Is should see the cause through %v", err)
	}

	want := "flush, IOFailure: io: read/write on closed pipe"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
