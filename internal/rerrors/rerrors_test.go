package rerrors

import (
	"errors"
	"testing"
)

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(UpstreamFailure, "send failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Kind != UpstreamFailure {
		t.Errorf("Kind = %v", err.Kind)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(RuleMiss, "no rule matched /x")
	if !Is(err, RuleMiss) {
		t.Error("Is should report true for a matching Kind")
	}
	if Is(err, UpstreamFailure) {
		t.Error("Is should report false for a different Kind")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(errors.New("plain"), ConfigMissing) {
		t.Error("Is should report false for a non-*Error")
	}
}

func TestKindString(t *testing.T) {
	if ConfigMissing.String() != "ConfigMissing" {
		t.Errorf("String() = %q", ConfigMissing.String())
	}
}
