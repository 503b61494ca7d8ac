package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/api/validators"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/cart"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
)

type cartResponse struct {
	Lines       []cartLineResponse    `json:"lines"`
	CustomerID  *uuid.UUID            `json:"customer_id,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	Discount    orderDiscountResponse `json:"discount"`
	Fulfillment string                `json:"fulfillment_mode"`
	ItemCount   int                   `json:"item_count"`
	Totals      totalsResponse        `json:"totals"`
}

type cartLineResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	VariantID      *uuid.UUID `json:"variant_id,omitempty"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	DiscountCents  int64      `json:"discount_cents"`
	TotalCents     int64      `json:"total_cents"`
}

type orderDiscountResponse struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type totalsResponse struct {
	SubtotalCents      int64 `json:"subtotal_cents"`
	ItemDiscountCents  int64 `json:"item_discount_cents"`
	OrderDiscountCents int64 `json:"order_discount_cents"`
	DiscountCents      int64 `json:"discount_cents"`
	TaxCents           int64 `json:"tax_cents"`
	TotalCents         int64 `json:"total_cents"`
}

func newCartResponse(snapshot cart.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, cartLineResponse{
			ID:             line.ID,
			ProductID:      line.ProductID,
			VariantID:      line.VariantID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: money.ToCents(line.UnitPrice),
			DiscountCents:  money.ToCents(line.Discount),
			TotalCents:     money.ToCents(line.Total),
		})
	}
	return cartResponse{
		Lines:      lines,
		CustomerID: snapshot.CustomerID,
		Notes:      snapshot.Notes,
		Discount: orderDiscountResponse{
			Kind:  string(snapshot.Discount.Kind),
			Value: snapshot.Discount.Value.String(),
		},
		Fulfillment: string(snapshot.Fulfillment),
		ItemCount:   snapshot.ItemCount(),
		Totals: totalsResponse{
			SubtotalCents:      money.ToCents(snapshot.Totals.Subtotal),
			ItemDiscountCents:  money.ToCents(snapshot.Totals.ItemDiscountTotal),
			OrderDiscountCents: money.ToCents(snapshot.Totals.OrderDiscountAmount),
			DiscountCents:      money.ToCents(snapshot.Totals.TotalDiscount),
			TaxCents:           money.ToCents(snapshot.Totals.Tax),
			TotalCents:         money.ToCents(snapshot.Totals.GrandTotal),
		},
	}
}

// CartFetch returns the register's order in progress.
func CartFetch(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(term.Cart.Snapshot()))
	}
}

type addItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
}

// CartAddItem scans a product into the cart.
func CartAddItem(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.AddItem(r.Context(), payload.ProductID, payload.VariantID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateQuantity changes a line's quantity. Zero or negative removes the
// line.
func CartUpdateQuantity(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID, err := lineIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.UpdateQuantity(lineID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartRemoveItem voids a line off the cart.
func CartRemoveItem(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID, err := lineIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.RemoveItem(lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type itemDiscountRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"min=0"`
}

// CartItemDiscount applies a fixed amount off one line.
func CartItemDiscount(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID, err := lineIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.SetItemDiscount(lineID, money.FromCents(payload.AmountCents))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type orderDiscountRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=fixed percentage"`
	Value string `json:"value" validate:"required"`
}

// CartOrderDiscount applies a fixed or percentage discount to the whole order.
func CartOrderDiscount(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseDiscountKind(payload.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount kind"))
			return
		}
		value, err := decimal.NewFromString(payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount value"))
			return
		}

		snapshot, err := term.Cart.SetDiscount(value, kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type customerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// CartSetCustomer attaches or clears the customer on the order.
func CartSetCustomer(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.SetCustomer(payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// CartSetNotes replaces the order notes.
func CartSetNotes(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload notesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := term.Cart.SetNotes(payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type fulfillmentRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// CartSetFulfillment switches between pickup, delivery and dine-in.
func CartSetFulfillment(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload fulfillmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseFulfillmentMode(payload.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment mode"))
			return
		}

		snapshot, err := term.Cart.SetFulfillment(mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartClear voids the order in progress.
func CartClear(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(term.Cart.Clear()))
	}
}

func lineIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "lineId")
	lineID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line id")
	}
	return lineID, nil
}
