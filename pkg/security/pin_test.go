package security

import (
	"strings"
	"testing"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
)

func testArgonConfig() config.PasswordConfig {
	// Small parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPIN(t *testing.T) {
	t.Parallel()

	hash, err := HashPIN("4071", testArgonConfig())
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPIN("4071", hash)
	if err != nil {
		t.Fatalf("verify pin: %v", err)
	}
	if !ok {
		t.Fatal("expected matching pin to verify")
	}

	ok, err = VerifyPIN("0000", hash)
	if err != nil {
		t.Fatalf("verify wrong pin: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched pin to fail")
	}
}

func TestVerifyPINRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := VerifyPIN("4071", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestHashPINRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := HashPIN("", testArgonConfig()); err == nil {
		t.Fatal("expected error for empty pin")
	}
}
