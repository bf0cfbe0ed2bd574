package middleware

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, "user-1", "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %q, want user-1", claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q, want user", claims.Role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "user-1", "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("secret-b", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("secret", token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateTokenRejectsEmpty(t *testing.T) {
	if _, err := ValidateToken("secret", ""); err == nil {
		t.Error("expected validation to fail for an empty token")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"abc.def.ghi", "abc.def.ghi"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
