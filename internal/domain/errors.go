package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies retrieval failures so callers can react to them.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration"
	KindService           ErrorKind = "service"
	KindEmptyResponse     ErrorKind = "empty_response"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// Sentinels usable with errors.Is against a *RetrievalError.
var (
	ErrConfiguration     = &RetrievalError{Kind: KindConfiguration}
	ErrService           = &RetrievalError{Kind: KindService}
	ErrEmptyResponse     = &RetrievalError{Kind: KindEmptyResponse}
	ErrMalformedResponse = &RetrievalError{Kind: KindMalformedResponse}
)

// User-facing messages for each failure kind.
const (
	MsgCredentialMissing = "API key is missing. Please check your environment variables."
	MsgServiceFailure    = "Could not reach the AI engine. Please try again."
	MsgNoResponse        = "No response was received from the AI engine."
	MsgMalformedResponse = "Could not read the settings returned. Please try again."
	MsgGenericFailure    = "Server error! Please try again."
)

// RetrievalError is a classified failure of a settings lookup.
type RetrievalError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RetrievalError) Error() string {
	var b strings.Builder
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so the package sentinels work with errors.Is.
func (e *RetrievalError) Is(target error) bool {
	t, ok := target.(*RetrievalError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether the caller may simply resubmit.
func (e *RetrievalError) Retryable() bool {
	return e.Kind != KindConfiguration
}

// NewRetrievalError builds a classified error with the default message for kind.
func NewRetrievalError(kind ErrorKind, err error) *RetrievalError {
	return &RetrievalError{Kind: kind, Message: defaultMessage(kind), Err: err}
}

func defaultMessage(kind ErrorKind) string {
	switch kind {
	case KindConfiguration:
		return MsgCredentialMissing
	case KindService:
		return MsgServiceFailure
	case KindEmptyResponse:
		return MsgNoResponse
	case KindMalformedResponse:
		return MsgMalformedResponse
	default:
		return MsgGenericFailure
	}
}

// UserMessage converts any failure into the single line shown in the error banner.
// It prefers the failure's own message and falls back to a generic one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RetrievalError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgGenericFailure
}
