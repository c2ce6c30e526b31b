package utils

import (
	"testing"
	"time"
)

func TestGenerateAndExtract(t *testing.T) {
	token, err := GenerateToken("user-123", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	subject, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if subject != "user-123" {
		t.Fatalf("expected subject user-123, got %s", subject)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ExtractIDFromToken(tampered); err == nil {
		t.Fatal("expected an error for a tampered token")
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	if a != b {
		t.Fatal("hash is not deterministic")
	}
	if a == HashToken("other-token") {
		t.Fatal("distinct tokens must not collide trivially")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha-256, got length %d", len(a))
	}
}
