package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordVerifier(t *testing.T) {
	v := NewPasswordVerifier(bcrypt.MinCost)

	hash, err := v.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !v.Matches("password123", &hash) {
		t.Error("Expected matching password to verify")
	}
	if v.Matches("password124", &hash) {
		t.Error("Expected wrong password to fail")
	}

	empty := ""
	if v.Matches("password123", &empty) {
		t.Error("Expected empty hash to fail")
	}
	if v.Matches("password123", nil) {
		t.Error("Expected nil hash to fail")
	}
}

func TestNewPasswordVerifier_ClampsCost(t *testing.T) {
	if got := NewPasswordVerifier(0).cost; got != bcrypt.DefaultCost {
		t.Errorf("Expected default cost, got %d", got)
	}
	if got := NewPasswordVerifier(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Errorf("Expected default cost, got %d", got)
	}
}
