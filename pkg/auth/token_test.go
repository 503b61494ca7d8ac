package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "warehousepos-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseTerminalToken(t *testing.T) {
	t.Parallel()

	payload := TerminalSessionPayload{
		CashierID:      uuid.New(),
		StoreID:        uuid.New(),
		TerminalID:     "register-2",
		Currency:       enums.CurrencyUSD,
		TaxRatePercent: "8.25",
	}

	signed, err := MintTerminalToken(testJWTConfig(), time.Now(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseTerminalToken(testJWTConfig(), signed)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.CashierID != payload.CashierID {
		t.Fatalf("cashier id mismatch")
	}
	if claims.StoreID != payload.StoreID {
		t.Fatalf("store id mismatch")
	}
	if claims.TerminalID != "register-2" {
		t.Fatalf("terminal id mismatch: %s", claims.TerminalID)
	}
	if claims.TaxRatePercent != "8.25" {
		t.Fatalf("tax rate mismatch: %s", claims.TaxRatePercent)
	}
}

func TestParseTerminalTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	payload := TerminalSessionPayload{
		CashierID: uuid.New(),
		StoreID:   uuid.New(),
		Currency:  enums.CurrencyUSD,
	}

	signed, err := MintTerminalToken(testJWTConfig(), time.Now().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseTerminalToken(testJWTConfig(), signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestMintTerminalTokenValidatesPayload(t *testing.T) {
	t.Parallel()

	_, err := MintTerminalToken(testJWTConfig(), time.Now(), TerminalSessionPayload{
		StoreID:  uuid.New(),
		Currency: enums.CurrencyUSD,
	})
	if err == nil {
		t.Fatal("expected missing cashier id to fail")
	}

	_, err = MintTerminalToken(testJWTConfig(), time.Now(), TerminalSessionPayload{
		CashierID: uuid.New(),
		StoreID:   uuid.New(),
		Currency:  enums.Currency("XXX"),
	})
	if err == nil {
		t.Fatal("expected invalid currency to fail")
	}
}
