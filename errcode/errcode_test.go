package errcode

import (
	"errors"
	"testing"
)

func TestIsComparesCodeOnly(t *testing.T) {
	a := New(Busy, "first attempt")
	b := New(Busy, "second attempt, different detail")
	if !a.Is(b) {
		t.Fatal("expected two *Error values with the same Code to satisfy Is")
	}

	c := New(TransportClosed, "")
	if a.Is(c) {
		t.Fatal("expected *Error values with different Codes not to satisfy Is")
	}
}

func TestErrorsIsAgainstSentinel(t *testing.T) {
	err := Newf(TransportClosed, "EOF reading report %d", 3)
	if !errors.Is(err, Of(TransportClosed)) {
		t.Fatal("expected errors.Is to match via Of(TransportClosed)")
	}
	if errors.Is(err, Of(MalformedFrame)) {
		t.Fatal("expected errors.Is to reject a different Code sentinel")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("pipe closed")
	err := Wrap(TransportClosed, cause)
	if err.Unwrap() != cause {
		t.Fatalf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorStringOmitsEmptyDetail(t *testing.T) {
	err := Of(Busy)
	if err.Error() != "BUSY" {
		t.Fatalf("Error() = %q, want BUSY", err.Error())
	}
}
