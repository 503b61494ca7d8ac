package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/auth"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

// Session is the read-only terminal context every cart and checkout operation
// runs under: who is selling, at which store, in which currency, at what tax
// rate.
type Session struct {
	StoreID        uuid.UUID
	CashierID      uuid.UUID
	TerminalID     string
	Currency       enums.Currency
	TaxRatePercent decimal.Decimal
}

// FromClaims builds a Session from verified terminal JWT claims. The tax rate
// travels as a string claim and is parsed into a decimal exactly once here.
func FromClaims(claims *auth.TerminalSessionClaims) (Session, error) {
	if claims == nil {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "terminal claims missing")
	}
	if claims.StoreID == uuid.Nil {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "store context missing")
	}
	if claims.CashierID == uuid.Nil {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "cashier identity missing")
	}
	if !claims.Currency.IsValid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session currency")
	}

	rate := decimal.Zero
	if claims.TaxRatePercent != "" {
		parsed, err := decimal.NewFromString(claims.TaxRatePercent)
		if err != nil {
			return Session{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid tax rate claim")
		}
		rate = parsed
	}
	if rate.IsNegative() {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "tax rate cannot be negative")
	}

	return Session{
		StoreID:        claims.StoreID,
		CashierID:      claims.CashierID,
		TerminalID:     claims.TerminalID,
		Currency:       claims.Currency,
		TaxRatePercent: rate,
	}, nil
}

type ctxKey struct{}

// WithSession stores the terminal session on the request context.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext retrieves the terminal session placed by the auth middleware.
func FromContext(ctx context.Context) (Session, error) {
	sess, ok := ctx.Value(ctxKey{}).(Session)
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "no terminal session on context")
	}
	return sess, nil
}
