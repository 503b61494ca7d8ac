package cashiers

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

// NewRepository builds a cashier repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cashier *models.Cashier) (*models.Cashier, error) {
	if cashier.ID == uuid.Nil {
		cashier.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(cashier).Error; err != nil {
		return nil, err
	}
	return cashier, nil
}

func (r *repository) FindActive(ctx context.Context, cashierID uuid.UUID) (*models.Cashier, error) {
	var cashier models.Cashier
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", cashierID, true).
		First(&cashier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cashier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cashier")
	}
	return &cashier, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Cashier, error) {
	var cashiers []models.Cashier
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("name ASC").
		Find(&cashiers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cashiers")
	}
	return cashiers, nil
}
