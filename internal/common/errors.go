package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error categories. Every failure of an audit run resolves to exactly one of
// these; none are silently recovered and none trigger automatic retries.
var (
	ErrInput    = errors.New("input error")         // bad file, format, or dates
	ErrConfig   = errors.New("configuration error") // missing credentials
	ErrNetwork  = errors.New("network error")       // endpoint unreachable
	ErrParse    = errors.New("parse error")         // malformed service response
	ErrOutput   = errors.New("output error")        // report write failure
	ErrDelivery = errors.New("delivery error")      // email send failure
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func InputError(message string, cause error) error {
	if cause == nil {
		cause = ErrInput
	} else {
		cause = fmt.Errorf("%w: %w", ErrInput, cause)
	}
	return NewAppError("INPUT_ERROR", message, cause)
}

func ConfigError(message string) error {
	return NewAppError("CONFIG_ERROR", message, ErrConfig)
}

func NetworkError(message string, cause error) error {
	if cause == nil {
		cause = ErrNetwork
	} else {
		cause = fmt.Errorf("%w: %w", ErrNetwork, cause)
	}
	return NewAppError("NETWORK_ERROR", message, cause)
}

func ParseError(message string, cause error) error {
	if cause == nil {
		cause = ErrParse
	} else {
		cause = fmt.Errorf("%w: %w", ErrParse, cause)
	}
	return NewAppError("PARSE_ERROR", message, cause)
}

func OutputError(message string, cause error) error {
	if cause == nil {
		cause = ErrOutput
	} else {
		cause = fmt.Errorf("%w: %w", ErrOutput, cause)
	}
	return NewAppError("OUTPUT_ERROR", message, cause)
}

func DeliveryError(message string, cause error) error {
	if cause == nil {
		cause = ErrDelivery
	} else {
		cause = fmt.Errorf("%w: %w", ErrDelivery, cause)
	}
	return NewAppError("DELIVERY_ERROR", message, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
