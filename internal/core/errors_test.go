package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := &Error{Code: "NO_DATA", Message: "no data available"}
	if got := e.Error(); got != "[NO_DATA] no data available" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := WrapError(ErrNoData, fmt.Errorf("AAPL: empty response"))
	if got := wrapped.Error(); got != "[NO_DATA] no data available: AAPL: empty response" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_Is(t *testing.T) {
	wrapped := WrapError(ErrCollectorFailed, errors.New("timeout"))
	if !errors.Is(wrapped, ErrCollectorFailed) {
		t.Error("expected errors.Is to match by code")
	}
	if errors.Is(wrapped, ErrNoData) {
		t.Error("expected errors.Is to not match a different code")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := WrapError(ErrCollectorFailed, cause)
	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}
