package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
)

// Repository defines persistence operations for the append-only sale ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CreateItems(ctx context.Context, items []models.SaleItem) error
	FindSale(ctx context.Context, saleID uuid.UUID) (*models.Sale, error)
	FindByIdempotencyKey(ctx context.Context, storeID uuid.UUID, key string) (*models.Sale, error)
	NextSaleNumber(ctx context.Context, storeID uuid.UUID) (int64, error)
	ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]models.Sale, error)
}
