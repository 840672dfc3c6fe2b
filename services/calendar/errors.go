package calendar

import (
	"errors"
	"fmt"
)

// ErrorKind classifies calendar client failures.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authenticationError"
	KindRetrieval      ErrorKind = "retrievalError"
	KindInsert         ErrorKind = "insertError"
)

// ClientError is the error type returned by calendar clients.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func NewAuthenticationError(msg string, err error) error {
	return &ClientError{Kind: KindAuthentication, Message: msg, Err: err}
}

func NewRetrievalError(msg string, err error) error {
	return &ClientError{Kind: KindRetrieval, Message: msg, Err: err}
}

func NewInsertError(msg string, err error) error {
	return &ClientError{Kind: KindInsert, Message: msg, Err: err}
}

func kindOf(err error) (ErrorKind, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// IsAuthenticationError reports whether err is an authentication failure.
func IsAuthenticationError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuthentication
}

// IsRetrievalError reports whether err is a listing failure.
func IsRetrievalError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindRetrieval
}

// IsInsertError reports whether err is a write failure.
func IsInsertError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInsert
}
