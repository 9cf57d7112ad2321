// Package errcode defines the closed error taxonomy shared by the
// transport, codec, session and signing layers. The shape follows
// consensus.ErrorCode/TxError in the teacher module: a short comparable
// code plus a human detail, so callers can branch with errors.Is while
// logs still carry the detail string.
package errcode

import "fmt"

// Code is a comparable identifier for one of the taxonomy entries in
// spec.md §7. Two *Error values with the same Code compare equal under
// errors.Is because Code is used as the Is target.
type Code string

const (
	// TransportClosed: device detached or a read hit EOF mid-message.
	TransportClosed Code = "TRANSPORT_CLOSED"
	// MalformedFrame: HID reassembly invariant violated.
	MalformedFrame Code = "MALFORMED_FRAME"
	// UnknownType: type_tag outside the active vendor's codec registry.
	UnknownType Code = "UNKNOWN_TYPE"
	// SchemaError: protobuf parse failure for a known type_tag.
	SchemaError Code = "SCHEMA_ERROR"
	// DeviceFailure: the device sent a Failure message.
	DeviceFailure Code = "DEVICE_FAILURE"
	// MissingInputPath: input-path map has no entry for a requested index.
	MissingInputPath Code = "MISSING_INPUT_PATH"
	// MissingAncestor: AncestorStore has no entry for a requested tx_hash.
	MissingAncestor Code = "MISSING_ANCESTOR"
	// IllegalOutputScript: an output's script is neither P2PKH nor P2SH.
	IllegalOutputScript Code = "ILLEGAL_OUTPUT_SCRIPT"
	// Busy: a second operation was started while one was already in-flight.
	Busy Code = "BUSY"
)

// Error pairs a Code with an optional detail message.
type Error struct {
	Code   Code
	Detail string
	// Cause, if present, is the lower-level error this one wraps.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Code, so
// errors.Is(err, errcode.New(errcode.Busy, "")) works as a code check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an *Error with a plain detail string.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Newf builds an *Error with a formatted detail string.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries a lower-level cause.
func Wrap(code Code, cause error) *Error {
	if cause == nil {
		return &Error{Code: code}
	}
	return &Error{Code: code, Detail: cause.Error(), Cause: cause}
}

// Of constructs a sentinel *Error with only a Code set, suitable for
// errors.Is(err, errcode.Of(errcode.Busy)).
func Of(code Code) *Error { return &Error{Code: code} }
