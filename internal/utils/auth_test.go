package utils

import (
	"testing"

	"github.com/sedes-ce/sedesgo/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	user := &models.Usuario{
		ID:    42,
		Email: "operador@sedes.ce.gov.br",
		Role:  "operador",
	}

	// Test Generation
	token, err := GenerateToken(user, secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}

	// Test Validation (Success)
	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims["email"] != user.Email {
		t.Errorf("Expected email %s, got %v", user.Email, claims["email"])
	}
	if claims["role"] != user.Role {
		t.Errorf("Expected role %s, got %v", user.Role, claims["role"])
	}

	// Test Validation (Failure - Wrong Key)
	if _, err := ValidateToken(token, "wrong-key"); err == nil {
		t.Error("Validation should fail with wrong key")
	}
}
