package cashiers

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/auth"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/security"
)

type stubRepo struct {
	cashiers map[uuid.UUID]*models.Cashier
}

func (s *stubRepo) Create(_ context.Context, cashier *models.Cashier) (*models.Cashier, error) {
	s.cashiers[cashier.ID] = cashier
	return cashier, nil
}

func (s *stubRepo) FindActive(_ context.Context, cashierID uuid.UUID) (*models.Cashier, error) {
	cashier, ok := s.cashiers[cashierID]
	if !ok || !cashier.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cashier not found")
	}
	return cashier, nil
}

func (s *stubRepo) ListByStore(_ context.Context, _ uuid.UUID) ([]models.Cashier, error) {
	return nil, nil
}

func testConfigs() (config.JWTConfig, config.POSConfig, config.PasswordConfig) {
	jwt := config.JWTConfig{Secret: "test-secret", Issuer: "warehousepos-test", ExpirationMinutes: 30}
	pos := config.POSConfig{DefaultCurrency: "USD", TaxRatePercent: "8.25"}
	pass := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}
	return jwt, pos, pass
}

func seedCashier(t *testing.T, repo *stubRepo, pin string, active bool) *models.Cashier {
	t.Helper()

	_, _, pass := testConfigs()
	hash, err := security.HashPIN(pin, pass)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	cashier := &models.Cashier{
		ID:       uuid.New(),
		StoreID:  uuid.New(),
		Name:     "Dana",
		PINHash:  hash,
		IsActive: active,
	}
	repo.cashiers[cashier.ID] = cashier
	return cashier
}

func TestSignInMintsSessionToken(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{cashiers: map[uuid.UUID]*models.Cashier{}}
	cashier := seedCashier(t, repo, "4071", true)
	jwt, pos, _ := testConfigs()

	svc, err := NewService(repo, jwt, pos, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.SignIn(context.Background(), SignInInput{
		CashierID:  cashier.ID,
		PIN:        "4071",
		TerminalID: "register-1",
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	claims, err := auth.ParseTerminalToken(jwt, result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.CashierID != cashier.ID || claims.StoreID != cashier.StoreID {
		t.Fatal("claims identity mismatch")
	}
	if claims.TerminalID != "register-1" {
		t.Fatalf("terminal id = %s", claims.TerminalID)
	}
	if claims.TaxRatePercent != "8.25" {
		t.Fatalf("tax rate claim = %s, want 8.25", claims.TaxRatePercent)
	}
}

func TestSignInRejectsWrongPIN(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{cashiers: map[uuid.UUID]*models.Cashier{}}
	cashier := seedCashier(t, repo, "4071", true)
	jwt, pos, _ := testConfigs()

	svc, err := NewService(repo, jwt, pos, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.SignIn(context.Background(), SignInInput{CashierID: cashier.ID, PIN: "0000"})
	if err == nil {
		t.Fatal("expected wrong pin to fail")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("code = %s, want %s", pkgerrors.As(err).Code(), pkgerrors.CodeUnauthorized)
	}
}

func TestSignInHidesUnknownCashier(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{cashiers: map[uuid.UUID]*models.Cashier{}}
	jwt, pos, _ := testConfigs()

	svc, err := NewService(repo, jwt, pos, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.SignIn(context.Background(), SignInInput{CashierID: uuid.New(), PIN: "1234"})
	if err == nil {
		t.Fatal("expected unknown cashier to fail")
	}
	// Same code as a wrong PIN so callers cannot probe for existence.
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("code = %s, want %s", pkgerrors.As(err).Code(), pkgerrors.CodeUnauthorized)
	}
}

func TestSignInRejectsInactiveCashier(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{cashiers: map[uuid.UUID]*models.Cashier{}}
	cashier := seedCashier(t, repo, "4071", false)
	jwt, pos, _ := testConfigs()

	svc, err := NewService(repo, jwt, pos, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), SignInInput{CashierID: cashier.ID, PIN: "4071"}); err == nil {
		t.Fatal("expected inactive cashier to fail")
	}
}
