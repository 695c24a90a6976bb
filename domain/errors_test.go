package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidation(t *testing.T) {
	ve := NewValidationError("email", "is required")
	if !IsValidation(ve) {
		t.Error("validation errors must be recognized")
	}
	if !IsValidation(fmt.Errorf("handler: %w", ve)) {
		t.Error("wrapped validation errors must be recognized")
	}
	if IsValidation(ErrUserNotFound) {
		t.Error("sentinels are not validation errors")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("arbitrary errors are not validation errors")
	}
	if got := ve.Error(); got != "email is required" {
		t.Errorf("unexpected message %q", got)
	}
}
