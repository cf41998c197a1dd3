package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
)

func TestNewArgument(t *testing.T) {
	err := apperr.NewArgument("sortProperty", "foo", "invalid sort property")

	if err.Error() != "invalid sort property (sortProperty=foo)" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewArgument_NoArgumentName(t *testing.T) {
	err := apperr.NewArgument("", nil, "")

	if err.Error() != "invalid argument" {
		t.Errorf("expected 'invalid argument', got %q", err.Error())
	}
}

func TestNewArgumentWrap(t *testing.T) {
	inner := fmt.Errorf("field not found")
	err := apperr.NewArgumentWrap("sortProperty", "x", "invalid sort property", inner)

	if err.Error() != "invalid sort property (sortProperty=x): field not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestArgumentError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("page: %w", apperr.NewArgument("request", nil, "request is required"))

	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatal("errors.Is should match ErrInvalidArgument through wrapping")
	}
}

func TestArgumentError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewArgument("sortProperty", "nope", "invalid sort property")

	wrapped := fmt.Errorf("failed to sort: %w", original)
	doubleWrapped := fmt.Errorf("page error: %w", wrapped)

	ae, ok := apperr.IsInvalidArgument(doubleWrapped)
	if !ok {
		t.Fatal("IsInvalidArgument should find ArgumentError through double wrapping")
	}
	if ae.Argument != "sortProperty" || ae.Value != "nope" {
		t.Errorf("unexpected argument %q=%v", ae.Argument, ae.Value)
	}
}

func TestArgumentError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	if _, ok := apperr.IsInvalidArgument(wrapped); ok {
		t.Fatal("IsInvalidArgument should NOT find ArgumentError in plain error chain")
	}
	if errors.Is(wrapped, apperr.ErrInvalidArgument) {
		t.Fatal("plain error must not match ErrInvalidArgument")
	}
}
