package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("order not found")
	// ErrGatewayUnavailable means token issuance failed; the order keeps its
	// pre-gateway status and the caller may retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrInvalidTransition marks a callback or timer that targets a terminal
	// or mismatched state. It is logged and acknowledged, never surfaced to
	// the gateway as a failure.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBadSignature      = errors.New("invalid notification signature")
)

// ValidationError carries field-level error codes for the checkout endpoint.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
