package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/api/validators"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/cashiers"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

type signInRequest struct {
	CashierID  uuid.UUID `json:"cashier_id" validate:"required"`
	PIN        string    `json:"pin" validate:"required,min=4,max=12"`
	TerminalID string    `json:"terminal_id" validate:"required,max=64"`
}

type signInResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Cashier   cashierResponse `json:"cashier"`
}

type cashierResponse struct {
	ID      uuid.UUID `json:"id"`
	StoreID uuid.UUID `json:"store_id"`
	Name    string    `json:"name"`
}

// SignIn exchanges a cashier PIN for a terminal session token.
func SignIn(svc cashiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cashier service unavailable"))
			return
		}

		var payload signInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SignIn(r.Context(), cashiers.SignInInput{
			CashierID:  payload.CashierID,
			PIN:        payload.PIN,
			TerminalID: payload.TerminalID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, signInResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			Cashier: cashierResponse{
				ID:      result.Cashier.ID,
				StoreID: result.Cashier.StoreID,
				Name:    result.Cashier.Name,
			},
		})
	}
}

// SignOut drops the register's in-memory state, held sales included.
func SignOut(manager *terminal.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.FromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		manager.Release(sess)
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
