package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	fit := func() (err error) {
		defer Recover(&err, "Regressor.Fit")
		panic("index out of range")
	}

	err := fit()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "Regressor.Fit" {
		t.Errorf("Expected operation 'Regressor.Fit', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if want := "panic in Regressor.Fit: index out of range"; panicErr.Error() != want {
		t.Errorf("Error() = %q, want %q", panicErr.Error(), want)
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	predict := func() (err error) {
		defer Recover(&err, "Regressor.Predict")
		return nil
	}

	if err := predict(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_KeepsExistingError(t *testing.T) {
	original := NewNotFittedError("Ridge", "Predict")

	predict := func() (err error) {
		defer Recover(&err, "Regressor.Predict")
		err = original
		panic("late panic")
	}

	err := predict()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "panic in Regressor.Predict") {
		t.Errorf("Error message should contain panic info: %s", err.Error())
	}
	if !Is(err, ErrNotFitted) {
		t.Error("Original error kind should survive the panic wrap")
	}
}

func TestSafeExecute(t *testing.T) {
	tests := []struct {
		name      string
		fn        func() error
		wantErr   bool
		wantPanic bool
	}{
		{
			name:    "success",
			fn:      func() error { return nil },
			wantErr: false,
		},
		{
			name:    "returned error",
			fn:      func() error { return fmt.Errorf("function error") },
			wantErr: true,
		},
		{
			name:      "string panic",
			fn:        func() error { panic("boom") },
			wantErr:   true,
			wantPanic: true,
		},
		{
			name:      "error panic",
			fn:        func() error { panic(fmt.Errorf("matrix dimension error")) },
			wantErr:   true,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("descent.Fit", tt.fn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SafeExecute() error = %v, wantErr %v", err, tt.wantErr)
			}

			var panicErr *PanicError
			if got := errors.As(err, &panicErr); got != tt.wantPanic {
				t.Errorf("errors.As(*PanicError) = %v, want %v", got, tt.wantPanic)
			}
		})
	}
}
