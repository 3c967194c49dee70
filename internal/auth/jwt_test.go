package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, 42, "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	userID, username, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 || username != "alice" {
		t.Fatalf("expected (42, alice), got (%d, %s)", userID, username)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("right-secret"), 42, "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, _, err := ParseToken([]byte("wrong-secret"), token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, _, err := ParseToken([]byte("secret"), "not-a-token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}
