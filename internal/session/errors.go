package session

import (
	"errors"
	"fmt"
)

var (
	ErrBusy            = errors.New("a generation is already in progress")
	ErrEmptyResult     = errors.New("generation returned no image")
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrUnknownCategory = errors.New("unknown category")
)

// User-facing messages recorded as the session error
const (
	MsgEmptyResult = "Failed to generate image. Please try again."
	MsgUnexpected  = "An unexpected error occurred."
)

// ProviderError is returned by Generate when the provider call itself failed
type ProviderError struct {
	RequestID string
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.RequestID, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message to show for an error returned by Generate.
// Provider failures and empty results map to the same text recorded as the
// session error; everything else is reported as is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyResult) {
		return MsgEmptyResult
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return errorMessage(providerErr.Err)
	}
	return err.Error()
}

// errorMessage picks the message shown to the user for a failed provider call
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return MsgUnexpected
	}
	return err.Error()
}
