package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintTerminalToken issues a signed JWT for the provided payload using the
// configured TTL.
func MintTerminalToken(cfg config.JWTConfig, now time.Time, payload TerminalSessionPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("jwt expiration minutes must be positive")
	}
	if payload.CashierID == uuid.Nil {
		return "", fmt.Errorf("cashier id is required")
	}
	if payload.StoreID == uuid.Nil {
		return "", fmt.Errorf("store id is required")
	}
	if !payload.Currency.IsValid() {
		return "", fmt.Errorf("invalid currency %q", payload.Currency)
	}

	issuedAt := jwt.NewNumericDate(now)
	expiry := jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute))

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := TerminalSessionClaims{
		CashierID:      payload.CashierID,
		StoreID:        payload.StoreID,
		TerminalID:     payload.TerminalID,
		Currency:       payload.Currency,
		TaxRatePercent: payload.TaxRatePercent,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  issuedAt,
			ExpiresAt: expiry,
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseTerminalToken validates the JWT string and returns typed claims.
func ParseTerminalToken(cfg config.JWTConfig, tokenString string) (*TerminalSessionClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &TerminalSessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
