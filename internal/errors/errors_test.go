package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "save product")

	if err.Error() != "save product: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestHelpers(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFoundf("product %s not found", "p1"))
	if !IsNotFound(wrapped) {
		t.Errorf("expected NotFound through wrapping")
	}
	if IsValidation(wrapped) || IsConflict(wrapped) {
		t.Errorf("unexpected code match")
	}
	if got := PublicMessage(wrapped, "fallback"); got != "product p1 not found" {
		t.Errorf("PublicMessage = %q", got)
	}
	if got := PublicMessage(errors.New("raw"), "fallback"); got != "fallback" {
		t.Errorf("PublicMessage = %q", got)
	}

	v := ValidationField("price", "price cannot be negative")
	if GetField(v) != "price" || GetCode(v) != ErrCodeValidation {
		t.Errorf("unexpected validation error %+v", v)
	}
	if GetCode(errors.New("plain")) != "" {
		t.Errorf("plain errors carry no code")
	}
	if Wrapf(errors.New("x"), ErrCodeUnavailable, "upload %d", 1).Message != "upload 1" {
		t.Errorf("Wrapf message mismatch")
	}
}
