package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !svc.Verify(hash, "correct horse battery staple") {
		t.Error("correct plaintext must verify")
	}
	if svc.Verify(hash, "wrong password") {
		t.Error("wrong plaintext must not verify")
	}
	if svc.Verify("not-a-hash", "anything") {
		t.Error("malformed hash must not verify")
	}
}

func TestPasswordServiceImpl_DistinctSalts(t *testing.T) {
	svc := NewPasswordService()

	a, err := svc.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := svc.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same input must differ by salt")
	}
}
