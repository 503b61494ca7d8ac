package session

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/auth"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

func validClaims() *auth.TerminalSessionClaims {
	return &auth.TerminalSessionClaims{
		CashierID:      uuid.New(),
		StoreID:        uuid.New(),
		TerminalID:     "register-1",
		Currency:       enums.CurrencyUSD,
		TaxRatePercent: "5",
	}
}

func TestFromClaims(t *testing.T) {
	t.Parallel()

	claims := validClaims()
	sess, err := FromClaims(claims)
	if err != nil {
		t.Fatalf("from claims: %v", err)
	}
	if sess.StoreID != claims.StoreID || sess.CashierID != claims.CashierID {
		t.Fatal("identity fields not carried over")
	}
	if sess.TaxRatePercent.String() != "5" {
		t.Fatalf("tax rate = %s, want 5", sess.TaxRatePercent)
	}
}

func TestFromClaimsRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*auth.TerminalSessionClaims){
		"missing store":    func(c *auth.TerminalSessionClaims) { c.StoreID = uuid.Nil },
		"missing cashier":  func(c *auth.TerminalSessionClaims) { c.CashierID = uuid.Nil },
		"bad currency":     func(c *auth.TerminalSessionClaims) { c.Currency = enums.Currency("XXX") },
		"bad tax rate":     func(c *auth.TerminalSessionClaims) { c.TaxRatePercent = "lots" },
		"negative tax":     func(c *auth.TerminalSessionClaims) { c.TaxRatePercent = "-1" },
	}

	for name, mutate := range cases {
		claims := validClaims()
		mutate(claims)
		if _, err := FromClaims(claims); err == nil {
			t.Errorf("%s: expected error", name)
		} else if typed := pkgerrors.As(err); typed.Code() != pkgerrors.CodeUnauthorized {
			t.Errorf("%s: code = %s, want %s", name, typed.Code(), pkgerrors.CodeUnauthorized)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	sess, err := FromClaims(validClaims())
	if err != nil {
		t.Fatalf("from claims: %v", err)
	}

	ctx := WithSession(context.Background(), sess)
	got, err := FromContext(ctx)
	if err != nil {
		t.Fatalf("from context: %v", err)
	}
	if got.StoreID != sess.StoreID {
		t.Fatal("session mismatch after round trip")
	}

	if _, err := FromContext(context.Background()); err == nil {
		t.Fatal("expected error for bare context")
	}
}
