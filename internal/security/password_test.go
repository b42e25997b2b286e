package security

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("expected the original password to verify")
	}

	if VerifyPassword(hash, "correct horse battery stapl") {
		t.Error("expected a different password to fail verification")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"not bcrypt", "plaintext-stored-by-mistake"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword(tt.digest, "whatever") {
				t.Error("malformed digest must verify false")
			}
		})
	}
}
