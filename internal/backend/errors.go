// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend fetches portfolio payloads from the API and other sources.
package backend

import (
	"errors"
	"strconv"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from a payload source.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error

	// StatusCode is set for ErrTypeStatus and ErrTypeRateLimited.
	StatusCode int
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeStatus
	ErrTypeInvalidEndpoint
	ErrTypeRateLimited
	ErrTypeNotFound
	ErrTypeBodyTooLarge
)

// String returns the error type name used in logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidEndpoint:
		return "invalid_endpoint"
	case ErrTypeRateLimited:
		return "rate_limited"
	case ErrTypeNotFound:
		return "not_found"
	case ErrTypeBodyTooLarge:
		return "body_too_large"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrCanceled        = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
	ErrInvalidEndpoint = &ClientError{Type: ErrTypeInvalidEndpoint, Message: "unknown endpoint"}
	ErrNotFound        = &ClientError{Type: ErrTypeNotFound, Message: "no data for endpoint"}
)

// statusError builds the error for a non-2xx response.
func statusError(code int, status string) *ClientError {
	t := ErrTypeStatus
	if code == 429 {
		t = ErrTypeRateLimited
	}
	if status == "" {
		status = strconv.Itoa(code)
	}
	return &ClientError{Type: t, Message: "unexpected status: " + status, StatusCode: code}
}

// errorType returns the ErrorType of err, or ErrTypeUnknown.
func errorType(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsCanceled checks if an error comes from a canceled request.
func IsCanceled(err error) bool {
	return errorType(err) == ErrTypeCanceled
}

// IsNotFound checks if a source had nothing for the endpoint.
func IsNotFound(err error) bool {
	return errorType(err) == ErrTypeNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}
