package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestRegisterStatus(t *testing.T) {
	status, msg := registerStatus(gorm.ErrDuplicatedKey)
	if status != http.StatusConflict {
		t.Errorf("duplicate key: status = %d, want 409", status)
	}
	if msg != "Email already registered" {
		t.Errorf("duplicate key: msg = %q", msg)
	}

	// Wrapped duplicates still map to conflict
	status, _ = registerStatus(fmt.Errorf("create usuario: %w", gorm.ErrDuplicatedKey))
	if status != http.StatusConflict {
		t.Errorf("wrapped duplicate key: status = %d, want 409", status)
	}

	status, msg = registerStatus(errors.New("connection refused"))
	if status != http.StatusInternalServerError {
		t.Errorf("generic failure: status = %d, want 500", status)
	}
	if msg != "Registration failed" {
		t.Errorf("generic failure: msg = %q", msg)
	}
}
