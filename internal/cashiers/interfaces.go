package cashiers

import (
	"context"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
)

// Repository defines persistence operations for terminal operators.
type Repository interface {
	Create(ctx context.Context, cashier *models.Cashier) (*models.Cashier, error)
	FindActive(ctx context.Context, cashierID uuid.UUID) (*models.Cashier, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Cashier, error)
}
