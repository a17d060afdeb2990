package client

import "testing"

func TestHashPassword_Deterministic(t *testing.T) {
	a := HashPassword("s3cret")
	b := HashPassword("s3cret")
	if a != b {
		t.Fatalf("same input produced different digests: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashPassword_DistinctInputs(t *testing.T) {
	if HashPassword("s3cret") == HashPassword("s3cret ") {
		t.Fatalf("distinct inputs produced the same digest")
	}
}
