package common

import "fmt"

// ProtocolErrType enumerates the failures that stop a node.
type ProtocolErrType uint32

const (
	// MalformedInput means a frame could not be decoded into the message
	// schema: invalid JSON, unknown type tag, missing or mistyped field.
	MalformedInput ProtocolErrType = iota
	// IOFailure means the input could not be read, or the output could not
	// be written and flushed.
	IOFailure
)

// String ...
func (t ProtocolErrType) String() string {
	switch t {
	case MalformedInput:
		return "MalformedInput"
	case IOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// ProtocolErr is a fatal error raised while pumping frames. Both kinds are
// unrecoverable; the caller is expected to stop processing.
type ProtocolErr struct {
	errType ProtocolErrType
	op      string
	cause   error
}

// NewProtocolErr ...
func NewProtocolErr(errType ProtocolErrType, op string, cause error) ProtocolErr {
	return ProtocolErr{
		errType: errType,
		op:      op,
		cause:   cause,
	}
}

// Type returns the kind of the error.
func (e ProtocolErr) Type() ProtocolErrType {
	return e.errType
}

// Error ...
func (e ProtocolErr) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s, %s", e.op, e.errType)
	}
	return fmt.Sprintf("%s, %s: %v", e.op, e.errType, e.cause)
}

// Unwrap returns the underlying cause.
func (e ProtocolErr) Unwrap() error {
	return e.cause
}

// IsProtocol checks that an error is of type ProtocolErr and that its kind
// matches the provided one.
func IsProtocol(err error, t ProtocolErrType) bool {
	protoErr, ok := err.(ProtocolErr)
	return ok && protoErr.errType == t
}
