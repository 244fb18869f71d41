package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCurrencyRequired    = errors.New("currency code is required")
	ErrCurrencyUnsupported = errors.New("currency not supported")
)

type ErrorKind string

const (
	KindInvalidRequest          ErrorKind = "invalid_request"
	KindTransportError          ErrorKind = "transport_error"
	KindUnexpectedResponseShape ErrorKind = "unexpected_response_shape"
	KindRemoteError             ErrorKind = "remote_error"
)

// Sentinels for errors.Is; only the kind is compared.
var (
	ErrInvalidRequest          = &FetchError{Kind: KindInvalidRequest}
	ErrTransport               = &FetchError{Kind: KindTransportError}
	ErrUnexpectedResponseShape = &FetchError{Kind: KindUnexpectedResponseShape}
	ErrRemote                  = &FetchError{Kind: KindRemoteError}
)

// FetchError is the failure taxonomy of a rates fetch.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Kind == KindRemoteError {
		return fmt.Sprintf("%s: status code %d", e.Kind, e.StatusCode)
	}
	return string(e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Message is the text shown to the user next to the retry action.
func (e *FetchError) Message() string {
	switch e.Kind {
	case KindInvalidRequest:
		return "Invalid API URL"
	case KindTransportError:
		if e.Err != nil {
			return "Network error: " + e.Err.Error()
		}
		return "Network error"
	case KindUnexpectedResponseShape:
		return "Invalid response from server"
	case KindRemoteError:
		return fmt.Sprintf("API error: Status code: %d", e.StatusCode)
	default:
		return e.Error()
	}
}

func NewInvalidRequestError(err error) *FetchError {
	return &FetchError{Kind: KindInvalidRequest, Err: err}
}

func NewTransportError(err error) *FetchError {
	return &FetchError{Kind: KindTransportError, Err: err}
}

func NewUnexpectedResponseError(err error) *FetchError {
	return &FetchError{Kind: KindUnexpectedResponseShape, Err: err}
}

func NewRemoteError(statusCode int) *FetchError {
	return &FetchError{Kind: KindRemoteError, StatusCode: statusCode}
}

// AsFetchError converts any error into the taxonomy; unknown errors count as transport failures.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewTransportError(err)
}
