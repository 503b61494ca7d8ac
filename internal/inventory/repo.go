package inventory

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

// NewRepository builds an inventory store bound to the provided DB.
func NewRepository(db *gorm.DB) Store {
	return &repository{db: db}
}

func (r *repository) Decrement(ctx context.Context, tx *gorm.DB, productID, storeID uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "decrement quantity must be positive")
	}
	db := r.conn(tx)

	// Conditional update: succeeds only when enough stock remains, so two
	// concurrent checkouts can never drive the count negative.
	res := db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ? AND store_id = ? AND available_qty >= ?", productID, storeID, qty).
		Update("available_qty", gorm.Expr("available_qty - ?", qty))
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
	}

	if res.RowsAffected == 0 {
		remaining, err := r.availableWith(ctx, db, productID, storeID)
		if err != nil {
			return 0, err
		}
		return remaining, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{"product_id": productID, "available": remaining, "requested": qty})
	}

	return r.availableWith(ctx, db, productID, storeID)
}

func (r *repository) Restock(ctx context.Context, tx *gorm.DB, productID, storeID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}

	res := r.conn(tx).WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Update("available_qty", gorm.Expr("available_qty + ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
	}
	return nil
}

func (r *repository) Available(ctx context.Context, productID, storeID uuid.UUID) (int, error) {
	return r.availableWith(ctx, r.db, productID, storeID)
}

func (r *repository) availableWith(ctx context.Context, db *gorm.DB, productID, storeID uuid.UUID) (int, error) {
	var item models.InventoryItem
	err := db.WithContext(ctx).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	return item.AvailableQty, nil
}

func (r *repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
