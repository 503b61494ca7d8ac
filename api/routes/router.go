package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FyliaCare/WarehousePOS-sub000/api/controllers"
	"github.com/FyliaCare/WarehousePOS-sub000/api/middleware"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/cashiers"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/sales"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cashierService cashiers.Service,
	manager *terminal.Manager,
	ledger sales.Repository,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/sign-in", controllers.SignIn(cashierService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/auth/sign-out", controllers.SignOut(manager, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(manager, logg))
			r.Delete("/", controllers.CartClear(manager, logg))
			r.Post("/items", controllers.CartAddItem(manager, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateQuantity(manager, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(manager, logg))
			r.Put("/items/{lineId}/discount", controllers.CartItemDiscount(manager, logg))
			r.Put("/discount", controllers.CartOrderDiscount(manager, logg))
			r.Put("/customer", controllers.CartSetCustomer(manager, logg))
			r.Put("/notes", controllers.CartSetNotes(manager, logg))
			r.Put("/fulfillment", controllers.CartSetFulfillment(manager, logg))
		})

		r.Route("/holds", func(r chi.Router) {
			r.Post("/", controllers.HoldSale(manager, logg))
			r.Get("/", controllers.ListHeldSales(manager, logg))
			r.Post("/{holdId}/resume", controllers.ResumeHeldSale(manager, logg))
		})

		r.Post("/checkout", controllers.Checkout(manager, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(ledger, logg))
			r.Get("/{saleId}", controllers.GetSale(ledger, logg))
		})
	})

	return r
}
