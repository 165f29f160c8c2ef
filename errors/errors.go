/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a named resource is not registered
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreCall is matched by every failed call against DynamoDB or SQS
	ErrStoreCall = errors.New("store call failed")

	// ErrTableNotFound is matched when the target table does not exist
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidReceipt is matched when a receipt handle is invalid, expired or already used
	ErrInvalidReceipt = errors.New("invalid receipt handle")

	// ErrUnknownCause is matched when a call panicked with a value that is not an error
	ErrUnknownCause = errors.New("unknown failure cause")

	// ErrScanAggregation is matched when a full-table scan could not be drained
	ErrScanAggregation = errors.New("scan aggregation failed")
)

// NotFoundError represents an error when a named resource is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StoreCallError wraps a failed network or service call.
// Op is the store operation (DescribeTable, Scan, PutItem, ...) and Target
// the table name or queue URL it was issued against.
type StoreCallError struct {
	Op     string
	Target string
	Err    error

	tableMissing   bool
	receiptInvalid bool
}

func (e *StoreCallError) Error() string {
	return fmt.Sprintf("%s on %q failed: %v", e.Op, e.Target, e.Err)
}

func (e *StoreCallError) Unwrap() error {
	return e.Err
}

func (e *StoreCallError) Is(target error) bool {
	switch target {
	case ErrStoreCall:
		return true
	case ErrTableNotFound:
		return e.tableMissing
	case ErrInvalidReceipt:
		return e.receiptInvalid
	}
	return false
}

// UnknownCauseError normalizes a recovered panic value that is not an error.
type UnknownCauseError struct {
	Op    string
	Value any
}

func (e *UnknownCauseError) Error() string {
	return fmt.Sprintf("%s failed with value of unknown type %T: %v", e.Op, e.Value, e.Value)
}

func (e *UnknownCauseError) Is(target error) bool {
	return target == ErrUnknownCause
}

// ScanAggregationError wraps any failure that aborted a full-table drain.
type ScanAggregationError struct {
	Table string
	Err   error
}

func (e *ScanAggregationError) Error() string {
	return fmt.Sprintf("scan of table %q aborted: %v", e.Table, e.Err)
}

func (e *ScanAggregationError) Unwrap() error {
	return e.Err
}

func (e *ScanAggregationError) Is(target error) bool {
	return target == ErrScanAggregation
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resourceType, key string) error {
	return &NotFoundError{Type: resourceType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStoreCallError creates a new StoreCallError
func NewStoreCallError(op, target string, err error) *StoreCallError {
	return &StoreCallError{Op: op, Target: target, Err: err}
}

// NewTableNotFoundError creates a StoreCallError that also matches ErrTableNotFound
func NewTableNotFoundError(op, table string, err error) *StoreCallError {
	return &StoreCallError{Op: op, Target: table, Err: err, tableMissing: true}
}

// NewInvalidReceiptError creates a StoreCallError that also matches ErrInvalidReceipt
func NewInvalidReceiptError(op, queueURL string, err error) *StoreCallError {
	return &StoreCallError{Op: op, Target: queueURL, Err: err, receiptInvalid: true}
}

// NewUnknownCauseError creates a new UnknownCauseError
func NewUnknownCauseError(op string, value any) error {
	return &UnknownCauseError{Op: op, Value: value}
}

// NewScanAggregationError creates a new ScanAggregationError
func NewScanAggregationError(table string, err error) error {
	return &ScanAggregationError{Table: table, Err: err}
}

// FromRecovered converts a recovered panic value into an error.
// Error values are wrapped in a StoreCallError, anything else becomes an UnknownCauseError.
func FromRecovered(op, target string, r any) error {
	if err, ok := r.(error); ok {
		return NewStoreCallError(op, target, err)
	}
	return NewUnknownCauseError(op, r)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreCall checks if an error came from a failed store call
func IsStoreCall(err error) bool {
	return errors.Is(err, ErrStoreCall)
}

// IsTableNotFound checks if an error reports a missing table
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}

// IsInvalidReceipt checks if an error reports an unusable receipt handle
func IsInvalidReceipt(err error) bool {
	return errors.Is(err, ErrInvalidReceipt)
}

// IsUnknownCause checks if an error is a normalized unknown-cause failure
func IsUnknownCause(err error) bool {
	return errors.Is(err, ErrUnknownCause)
}

// IsScanAggregation checks if an error aborted a full-table scan
func IsScanAggregation(err error) bool {
	return errors.Is(err, ErrScanAggregation)
}
