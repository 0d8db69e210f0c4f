package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeedError(t *testing.T) {
	err := NewFeedError("read failed", io.ErrUnexpectedEOF).
		WithSource("websocket").
		WithTarget("ws://localhost:8080/gm")

	want := "feed error [source=websocket, target=ws://localhost:8080/gm]: read failed: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !err.IsRetryable() {
		t.Error("feed errors should be retryable by default")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should match the cause")
	}
	if !errors.Is(err, &FeedError{}) {
		t.Error("errors.Is should match any *FeedError")
	}

	err = err.WithRetryable(false).WithSeverity(SeverityCritical)
	if IsRetryable(err) {
		t.Error("WithRetryable(false) should disable retries")
	}
	if GetSeverity(err) != SeverityCritical {
		t.Errorf("GetSeverity = %v, want critical", GetSeverity(err))
	}
}

func TestFeedError_NoContext(t *testing.T) {
	err := NewFeedError("closed", nil)
	if err.Error() != "feed error: closed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDecodeError(t *testing.T) {
	payload := []byte(strings.Repeat("x", 100))
	err := NewDecodeError("invalid snapshot", payload, io.ErrUnexpectedEOF)

	if IsRetryable(err) {
		t.Error("decode errors must not be retryable")
	}
	if IsUserFacing(err) {
		t.Error("decode errors are not user facing")
	}
	if len(err.Snippet) != maxSnippet+3 {
		t.Errorf("snippet length = %d, want %d", len(err.Snippet), maxSnippet+3)
	}
	if !strings.HasPrefix(err.Error(), "decode error: invalid snapshot") {
		t.Errorf("Error() = %q", err.Error())
	}

	var de *DecodeError
	wrapped := fmt.Errorf("loading: %w", err)
	if !errors.As(wrapped, &de) {
		t.Error("errors.As should find the DecodeError through wrapping")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("must be positive").WithField("teams").WithValue(0)

	want := "validation error [field=teams, value=0]: must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation errors should match ErrInvalidInput")
	}
	if !IsUserFacing(err) {
		t.Error("validation errors are user facing")
	}
}

func TestClassificationOfPlainErrors(t *testing.T) {
	plain := errors.New("boom")

	if IsRetryable(plain) {
		t.Error("plain errors are not retryable")
	}
	if IsUserFacing(plain) {
		t.Error("plain errors are not user facing")
	}
	if GetSeverity(plain) != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want error", GetSeverity(plain))
	}
	if !IsRetryable(Wrap(ErrFeedClosed, "reading")) {
		t.Error("ErrFeedClosed should be retryable")
	}
	if IsRetryable(nil) || IsUserFacing(nil) {
		t.Error("nil errors should not classify")
	}
	if GetSeverity(nil) != SeverityDebug {
		t.Error("nil error severity should be debug")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(io.EOF, "reading %s", "snapshot.json")
	if err.Error() != "reading snapshot.json: EOF" {
		t.Errorf("Wrapf = %q", err.Error())
	}
	if !errors.Is(err, io.EOF) {
		t.Error("wrapped error should match cause")
	}
}
