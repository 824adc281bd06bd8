package crypto_test

import (
	"testing"

	"lingo/internal/crypto"
)

func TestFingerprint_StableAndShort(t *testing.T) {
	a := crypto.Fingerprint([]byte("token-a"))
	b := crypto.Fingerprint([]byte("token-a"))
	if a != b {
		t.Fatalf("fingerprint not stable: %q vs %q", a, b)
	}
	if len(a) != 20 {
		t.Fatalf("want 20 hex chars, got %d", len(a))
	}
	if crypto.Fingerprint([]byte("token-b")) == a {
		t.Fatal("distinct secrets share a fingerprint")
	}
	if crypto.Fingerprint(nil) != "" {
		t.Fatal("empty secret should have no fingerprint")
	}
}

func TestWipe_ZeroesBuffer(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	crypto.Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
	crypto.Wipe(nil)
}

func TestRandomToken_Unique(t *testing.T) {
	a, err := crypto.RandomToken(24)
	if err != nil {
		t.Fatalf("random token: %v", err)
	}
	b, err := crypto.RandomToken(24)
	if err != nil {
		t.Fatalf("random token: %v", err)
	}
	if a == b || len(a) != 32 {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}
