package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sale ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) CreateItems(ctx context.Context, items []models.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindSale(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", saleID).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return &sale, nil
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, storeID uuid.UUID, key string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ? AND idempotency_key = ?", storeID, key).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale by idempotency key")
	}
	return &sale, nil
}

// NextSaleNumber allocates the next human-facing sale number for a store.
// The read alone is not race-safe under concurrent commits; the unique index
// on (store_id, sale_number) rejects a stale allocation at insert time and
// the checkout transaction retries with a fresh read.
func (r *repository) NextSaleNumber(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COALESCE(MAX(sale_number), 0) + 1").
		Where("store_id = ?", storeID).
		Scan(&next).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate sale number")
	}
	return next, nil
}

func (r *repository) ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]models.Sale, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return sales, nil
}
