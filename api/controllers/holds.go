package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/holds"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
)

type heldSaleResponse struct {
	ID         uuid.UUID  `json:"id"`
	HeldAt     time.Time  `json:"held_at"`
	ItemCount  int        `json:"item_count"`
	TotalCents int64      `json:"total_cents"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

func newHeldSaleResponse(held holds.HeldSale) heldSaleResponse {
	return heldSaleResponse{
		ID:         held.ID,
		HeldAt:     held.HeldAt,
		ItemCount:  held.Cart.ItemCount(),
		TotalCents: money.ToCents(held.Cart.Totals.GrandTotal),
		CustomerID: held.Cart.CustomerID,
		Notes:      held.Cart.Notes,
	}
}

// HoldSale parks the active cart so the register can serve the next customer.
func HoldSale(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		held, err := term.Holds.Hold(term.Cart)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newHeldSaleResponse(held))
	}
}

// ListHeldSales returns the register's parked sales, oldest first.
func ListHeldSales(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		held := term.Holds.List()
		out := make([]heldSaleResponse, 0, len(held))
		for _, entry := range held {
			out = append(out, newHeldSaleResponse(entry))
		}
		responses.WriteSuccess(w, out)
	}
}

// ResumeHeldSale swaps a parked sale back onto the register. A non-empty
// active cart is parked automatically first.
func ResumeHeldSale(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := acquireTerminal(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := chi.URLParam(r, "holdId")
		holdID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid hold id"))
			return
		}

		snapshot, err := term.Holds.Resume(term.Cart, holdID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}
