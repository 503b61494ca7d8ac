package cashiers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/auth"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/security"
)

// SignInInput identifies the cashier and register asking for a session.
type SignInInput struct {
	CashierID  uuid.UUID
	PIN        string
	TerminalID string
}

// SignInResult carries the minted terminal token and the operator it belongs to.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	Cashier   *models.Cashier
}

// Service signs cashiers into terminals.
type Service interface {
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)
}

type service struct {
	repo Repository
	jwt  config.JWTConfig
	pos  config.POSConfig
	logg *logger.Logger
}

// NewService builds the cashier sign-in service.
func NewService(repo Repository, jwt config.JWTConfig, pos config.POSConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cashier repository required")
	}
	return &service{repo: repo, jwt: jwt, pos: pos, logg: logg}, nil
}

func (s *service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if input.CashierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cashier id required")
	}
	if input.PIN == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pin required")
	}

	cashier, err := s.repo.FindActive(ctx, input.CashierID)
	if err != nil {
		if pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
			// Do not reveal whether the cashier exists.
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPIN(input.PIN, cashier.PINHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify pin")
	}
	if !ok {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCashierID(ctx, cashier.ID.String()), "pin mismatch on sign-in")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	currency := enums.Currency(s.pos.DefaultCurrency)
	if !currency.IsValid() {
		currency = enums.CurrencyUSD
	}

	now := time.Now()
	token, err := auth.MintTerminalToken(s.jwt, now, auth.TerminalSessionPayload{
		CashierID:      cashier.ID,
		StoreID:        cashier.StoreID,
		TerminalID:     input.TerminalID,
		Currency:       currency,
		TaxRatePercent: s.pos.TaxRatePercent,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint terminal token")
	}

	return &SignInResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
		Cashier:   cashier,
	}, nil
}
