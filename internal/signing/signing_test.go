package signing

import "testing"

func TestSigner(t *testing.T) {
	secret := []byte("topsecret")
	s := NewSigner(secret)
	sig := s.Sign("uploads/file123.txt", 1700000000)
	if len(sig) == 0 {
		t.Fatalf("expected signature")
	}
	if !s.Validate("uploads/file123.txt", "1700000000", sig) {
		t.Fatalf("expected signature to validate")
	}
	if s.Validate("uploads/other.txt", "1700000000", sig) {
		t.Fatalf("expected validation to fail for wrong object key")
	}
	if s.Validate("uploads/file123.txt", "42", sig) {
		t.Fatalf("expected validation to fail for wrong expiry")
	}
	if s.Validate("uploads/file123.txt", "not-a-number", sig) {
		t.Fatalf("expected validation to fail for malformed expiry")
	}
}
