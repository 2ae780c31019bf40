package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/carbonledger/carbonledger/internal/services"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := services.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !services.CheckPassword(hash, "hunter2hunter2") {
		t.Error("Correct password rejected")
	}
	if services.CheckPassword(hash, "wrong") {
		t.Error("Wrong password accepted")
	}
}

// TestHashPasswordLongInput: bcrypt only reads 72 bytes; both sides truncate
// the same way so verification still works on oversized passwords.
func TestHashPasswordLongInput(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := services.HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !services.CheckPassword(hash, long) {
		t.Error("Long password rejected")
	}
	// Differing only past the 72-byte cut is indistinguishable
	if !services.CheckPassword(hash, strings.Repeat("a", 72)) {
		t.Error("72-byte prefix should verify")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := services.CreateAccessToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	userID, err := services.ParseAccessToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user 42, got %d", userID)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := services.CreateAccessToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}
	if _, err := services.ParseAccessToken("other-secret", token); err == nil {
		t.Error("Expected rejection with wrong secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := services.CreateAccessToken("test-secret", 42, -time.Minute)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}
	if _, err := services.ParseAccessToken("test-secret", token); err == nil {
		t.Error("Expected rejection of expired token")
	}
}
