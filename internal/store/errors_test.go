package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundErrorFamily(t *testing.T) {
	t.Parallel()

	if !IsNotFoundError(ErrTaskNotFound) {
		t.Error("ErrTaskNotFound should be a not-found error")
	}
	if !IsNotFoundError(ErrUserNotFound) {
		t.Error("ErrUserNotFound should be a not-found error")
	}
	if !IsNotFoundError(fmt.Errorf("get task: %w", ErrTaskNotFound)) {
		t.Error("wrapped ErrTaskNotFound should still be a not-found error")
	}
	if IsNotFoundError(ErrDuplicate) {
		t.Error("ErrDuplicate should not be a not-found error")
	}
	if IsNotFoundError(errors.New("boom")) {
		t.Error("arbitrary errors should not be not-found errors")
	}
}

func TestDuplicateErrorFamily(t *testing.T) {
	t.Parallel()

	if !IsDuplicateError(ErrEmailExists) {
		t.Error("ErrEmailExists should be a duplicate error")
	}
	if !IsDuplicateError(fmt.Errorf("create user: %w", ErrEmailExists)) {
		t.Error("wrapped ErrEmailExists should still be a duplicate error")
	}
	if IsDuplicateError(ErrTaskNotFound) {
		t.Error("ErrTaskNotFound should not be a duplicate error")
	}
}
