/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("client", "eu-west-1")

	expected := `client with key "eu-west-1" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "connectionId",
			message:  "must not be empty",
			expected: `validation failed for field "connectionId": must not be empty`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "bad input",
			expected: "validation failed: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)
			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}
			if !IsValidationError(err) {
				t.Error("IsValidationError should return true")
			}
		})
	}
}

func TestStoreCallError(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := NewStoreCallError("Scan", "conn", cause)

	expected := `Scan on "conn" failed: connection reset`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsStoreCall(err) {
		t.Error("StoreCallError should match ErrStoreCall")
	}
	if !errors.Is(err, cause) {
		t.Error("StoreCallError should unwrap to its cause")
	}
	if IsTableNotFound(err) {
		t.Error("plain StoreCallError should not match ErrTableNotFound")
	}
	if IsInvalidReceipt(err) {
		t.Error("plain StoreCallError should not match ErrInvalidReceipt")
	}
}

func TestTableNotFoundError(t *testing.T) {
	err := NewTableNotFoundError("DescribeTable", "missing", fmt.Errorf("ResourceNotFoundException"))

	if !IsTableNotFound(err) {
		t.Error("expected ErrTableNotFound match")
	}
	if !IsStoreCall(err) {
		t.Error("table-not-found is still a store call failure")
	}

	var sce *StoreCallError
	if !errors.As(err, &sce) {
		t.Fatal("expected errors.As to find StoreCallError")
	}
	if sce.Target != "missing" {
		t.Errorf("Expected target %q, got %q", "missing", sce.Target)
	}
}

func TestInvalidReceiptError(t *testing.T) {
	err := NewInvalidReceiptError("DeleteMessage", "https://queue", fmt.Errorf("ReceiptHandleIsInvalid"))

	if !IsInvalidReceipt(err) {
		t.Error("expected ErrInvalidReceipt match")
	}
	if IsTableNotFound(err) {
		t.Error("receipt errors should not match ErrTableNotFound")
	}
}

func TestUnknownCauseError(t *testing.T) {
	err := NewUnknownCauseError("PutItem", 42)

	expected := "PutItem failed with value of unknown type int: 42"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsUnknownCause(err) {
		t.Error("UnknownCauseError should match ErrUnknownCause")
	}
	if IsStoreCall(err) {
		t.Error("UnknownCauseError should not match ErrStoreCall")
	}
}

func TestFromRecovered(t *testing.T) {
	t.Run("error value", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := FromRecovered("DeleteItem", "conn", cause)
		if !IsStoreCall(err) {
			t.Errorf("expected StoreCallError, got %T", err)
		}
		if !errors.Is(err, cause) {
			t.Error("expected the recovered error to stay reachable")
		}
	})

	t.Run("non-error value", func(t *testing.T) {
		err := FromRecovered("DeleteItem", "conn", "boom")
		var uce *UnknownCauseError
		if !errors.As(err, &uce) {
			t.Fatalf("expected UnknownCauseError, got %T", err)
		}
		if uce.Value != "boom" {
			t.Errorf("Expected value %q, got %v", "boom", uce.Value)
		}
	})
}

func TestScanAggregationError(t *testing.T) {
	cause := NewTableNotFoundError("DescribeTable", "conn", fmt.Errorf("not there"))
	err := NewScanAggregationError("conn", cause)

	if !IsScanAggregation(err) {
		t.Error("expected ErrScanAggregation match")
	}
	if !IsTableNotFound(err) {
		t.Error("the wrapped cause should stay matchable")
	}

	wrapped := fmt.Errorf("listing: %w", err)
	if !IsScanAggregation(wrapped) {
		t.Error("IsScanAggregation should see through fmt wrapping")
	}
}
