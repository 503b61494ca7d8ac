package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "persist sale")

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be preserved")
	}
	if err.Error() != "DEPENDENCY_ERROR: persist sale" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestAsUnwrapsNestedError(t *testing.T) {
	t.Parallel()

	inner := New(CodeConflict, "insufficient stock")
	wrapped := fmt.Errorf("checkout: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if IsRetryable(New(CodeValidation, "quantity must be positive")) {
		t.Fatal("validation errors are not retryable")
	}
	if !IsRetryable(New(CodeDependency, "ledger unavailable")) {
		t.Fatal("dependency errors are retryable")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Fatal("untyped errors are not retryable")
	}
}
