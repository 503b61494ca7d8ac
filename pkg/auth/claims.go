package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

// TerminalSessionPayload captures the data available when minting a JWT for a
// signed-in cashier at a register.
type TerminalSessionPayload struct {
	CashierID      uuid.UUID
	StoreID        uuid.UUID
	TerminalID     string
	Currency       enums.Currency
	TaxRatePercent string
	JTI            string
}

// TerminalSessionClaims is the typed JWT carried by every terminal request.
// Currency and tax rate ride along so the cart never re-reads store config
// mid-session.
type TerminalSessionClaims struct {
	CashierID      uuid.UUID      `json:"cashier_id"`
	StoreID        uuid.UUID      `json:"store_id"`
	TerminalID     string         `json:"terminal_id"`
	Currency       enums.Currency `json:"currency"`
	TaxRatePercent string         `json:"tax_rate_percent"`
	jwt.RegisteredClaims
}
