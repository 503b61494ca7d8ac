package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/api/validators"
	checkoutsvc "github.com/FyliaCare/WarehousePOS-sub000/internal/checkout"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod  string `json:"payment_method" validate:"required"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,min=8,max=128"`
}

type saleResponse struct {
	ID              uuid.UUID  `json:"id"`
	SaleNumber      int64      `json:"sale_number"`
	StoreID         uuid.UUID  `json:"store_id"`
	CashierID       uuid.UUID  `json:"cashier_id"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	Currency        string     `json:"currency"`
	SubtotalCents   int64      `json:"subtotal_cents"`
	DiscountCents   int64      `json:"discount_cents"`
	TaxCents        int64      `json:"tax_cents"`
	TotalCents      int64      `json:"total_cents"`
	ItemCount       int        `json:"item_count"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentStatus   string     `json:"payment_status"`
	FulfillmentMode string     `json:"fulfillment_mode"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newSaleResponse(sale *models.Sale) saleResponse {
	if sale == nil {
		return saleResponse{}
	}
	return saleResponse{
		ID:              sale.ID,
		SaleNumber:      sale.SaleNumber,
		StoreID:         sale.StoreID,
		CashierID:       sale.CashierID,
		CustomerID:      sale.CustomerID,
		Currency:        string(sale.Currency),
		SubtotalCents:   sale.SubtotalCents,
		DiscountCents:   sale.DiscountCents,
		TaxCents:        sale.TaxCents,
		TotalCents:      sale.TotalCents,
		ItemCount:       sale.ItemCount,
		PaymentMethod:   string(sale.PaymentMethod),
		PaymentStatus:   string(sale.PaymentStatus),
		FulfillmentMode: string(sale.FulfillmentMode),
		Status:          string(sale.Status),
		Notes:           sale.Notes,
		CreatedAt:       sale.CreatedAt,
	}
}

// Checkout commits the register's active cart as a durable sale.
func Checkout(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		result, err := term.Checkout.Checkout(r.Context(), checkoutsvc.Input{
			PaymentMethod:  method,
			IdempotencyKey: payload.IdempotencyKey,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if result.AlreadyCommitted {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, newSaleResponse(result.Sale))
	}
}
