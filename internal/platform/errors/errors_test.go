package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeRivalryNotFound, "rivalry abc not found")
	if !errors.Is(err, New(CodeRivalryNotFound, "different message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if errors.Is(err, New(CodeFeudNotFound, "rivalry abc not found")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeUnknown, "persist rivalry", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found in chain")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	var domainErr *Error
	if !errors.As(wrapped, &domainErr) {
		t.Fatal("expected domain error in chain")
	}
	if domainErr.Code != CodeUnknown {
		t.Fatalf("expected code %q, got %q", CodeUnknown, domainErr.Code)
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodeLedgerInactive, "ledger already ended", map[string]string{"heat": "15"})
	if err.Metadata["heat"] != "15" {
		t.Fatalf("expected metadata heat=15, got %q", err.Metadata["heat"])
	}
}
