package utils

import (
	"math"
	"testing"
)

func AssertTrue(t *testing.T, a bool) {
	t.Helper()
	if !a {
		t.Fatalf("Expected true, got false")
	}
}

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("Expected equal: %v != %v\n", a, b)
	}
}

func AssertClose(t *testing.T, a, b, tol float64) {
	t.Helper()
	if math.Abs(a-b) > tol {
		t.Fatalf("Expected close: %v != %v (tol %v)\n", a, b, tol)
	}
}

func AssertSliceClose(t *testing.T, a, b []float64, tol float64) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("Expected equal lengths: %d != %d\n", len(a), len(b))
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			t.Fatalf("Expected close at %d: %v != %v (tol %v)\n", i, a[i], b[i], tol)
		}
	}
}
