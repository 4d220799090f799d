package security

import (
	"strings"
	"testing"

	"github.com/orderhub/orderhub-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Keep test hashing fast; production values come from the environment.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("correct horse", cfg)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := VerifyPassword("correct horse", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong horse", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("pw", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if len(first) != 20 {
		t.Fatalf("expected 20 hex chars, got %d", len(first))
	}
	second, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}
}
