package testutil

import (
	"io"
	"log/slog"
	"math"
	"testing"
)

// AssertRowCount checks if the element has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertFloatsNear compares two float32 slices element-wise within tol
func AssertFloatsNear(t *testing.T, expected, actual []float32, tol float64, context string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: expected %d values, got %d", context, len(expected), len(actual))
	}
	for i := range expected {
		if math.Abs(float64(expected[i]-actual[i])) > tol {
			t.Errorf("%s: value %d: expected %v, got %v", context, i, expected[i], actual[i])
		}
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
