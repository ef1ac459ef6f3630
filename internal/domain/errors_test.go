package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("add word: %w", NewValidationError("text", "must not contain whitespace"))

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation), got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError in chain")
	}
	if ve.Errors[0].Field != "text" {
		t.Errorf("field = %q, want text", ve.Errors[0].Field)
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{"single", NewValidationError("name", "required"), "validation: name: required"},
		{"multiple", NewValidationErrors([]FieldError{{"a", "x"}, {"b", "y"}}), "validation: 2 errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundAndInvalidState(t *testing.T) {
	t.Parallel()

	if err := NotFound("word list", "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("NotFound does not wrap ErrNotFound: %v", err)
	}
	if err := InvalidState("submit answer", "feedback"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("InvalidState does not wrap ErrInvalidState: %v", err)
	}
}
