package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"alice1", true},
		{"ALICE", true},
		{"42", true},
		{"", false},
		{"alice_1", false},
		{"al ice", false},
		{"bob!", false},
		{"юзер", false},
		{"a.b", false},
	}
	for _, tt := range tests {
		if got := IsValidUsername(tt.name); got != tt.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestIsUnauthorized(t *testing.T) {
	for _, err := range []error{ErrorUnauthorized, ErrInvalidToken, ErrTokenExpired, ErrTokenRevoked} {
		wrapped := fmt.Errorf("verify: %w", err)
		if !IsUnauthorized(wrapped) {
			t.Errorf("IsUnauthorized(%v) = false, want true", wrapped)
		}
	}
	for _, err := range []error{ErrorValidation, ErrorNotFound, ErrorAlreadyExists, errors.New("disk full")} {
		if IsUnauthorized(err) {
			t.Errorf("IsUnauthorized(%v) = true, want false", err)
		}
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("title too long")
	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("Invalid must wrap ErrorValidation, got %v", err)
	}
	if err.Error() != "validation error: title too long" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidationReason(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Invalid("username may contain only letters and digits"))

	reason, ok := ValidationReason(wrapped)
	if !ok || reason != "username may contain only letters and digits" {
		t.Fatalf("ValidationReason = %q, %v", reason, ok)
	}

	if _, ok := ValidationReason(ErrorNotFound); ok {
		t.Fatal("ValidationReason must ignore other errors")
	}
	if reason, ok := ValidationReason(ErrorValidation); !ok || reason != "validation error" {
		t.Fatalf("bare sentinel: %q, %v", reason, ok)
	}
}
