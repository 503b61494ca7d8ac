package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog lookup bound to the provided DB.
func NewRepository(db *gorm.DB) Lookup {
	return &repository{db: db}
}

func (r *repository) FindProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductSnapshot, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ? AND is_active = ?", productID, storeID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	return &ProductSnapshot{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      money.FromCents(product.UnitPriceCents),
		Currency:       product.Currency,
		TrackInventory: product.TrackInventory,
	}, nil
}
