package shared

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetAppError(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError("Deck not found")
	got, ok := GetAppError(fmt.Errorf("loading deck: %w", appErr))
	if !ok {
		t.Fatalf("expected wrapped AppError to be found")
	}
	if got.StatusCode != 404 || got.Message != "Deck not found" {
		t.Fatalf("unexpected AppError: %+v", got)
	}

	if _, ok := GetAppError(errors.New("plain")); ok {
		t.Fatalf("plain errors must not match")
	}
	if _, ok := GetAppError(nil); ok {
		t.Fatalf("nil must not match")
	}
}

func TestProviderErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	taxonomy := []error{
		&AuthenticationError{Message: "auth"},
		&RateLimitError{Message: "rate"},
		&BadRequestError{Message: "bad"},
		&ServerError{Message: "server"},
		&NetworkError{Message: "net"},
		&ParsingError{Message: "parse"},
	}

	// Each type matches itself and nothing else under errors.As.
	matchers := []func(error) bool{
		func(err error) bool { var e *AuthenticationError; return errors.As(err, &e) },
		func(err error) bool { var e *RateLimitError; return errors.As(err, &e) },
		func(err error) bool { var e *BadRequestError; return errors.As(err, &e) },
		func(err error) bool { var e *ServerError; return errors.As(err, &e) },
		func(err error) bool { var e *NetworkError; return errors.As(err, &e) },
		func(err error) bool { var e *ParsingError; return errors.As(err, &e) },
	}

	for i, err := range taxonomy {
		wrapped := fmt.Errorf("generation failed: %w", err)
		for j, match := range matchers {
			if got, want := match(wrapped), i == j; got != want {
				t.Fatalf("taxonomy[%d] vs matcher[%d]: got %v", i, j, got)
			}
		}
	}
}
