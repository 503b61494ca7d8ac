package middleware

import (
	"net/http"
	"strings"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	pkgAuth "github.com/FyliaCare/WarehousePOS-sub000/pkg/auth"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

// Auth validates a terminal bearer token and seeds the request context with
// the register session.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseTerminalToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			sess, err := session.FromClaims(claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := session.WithSession(r.Context(), sess)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"store_id":    sess.StoreID.String(),
					"cashier_id":  sess.CashierID.String(),
					"terminal_id": sess.TerminalID,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
