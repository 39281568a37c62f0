package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to service entry operations.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, entry *models.ServiceEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceEntry, error) {
	var entry models.ServiceEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *gormRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.ServiceEntry, error) {
	var entries []models.ServiceEntry
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("performed_at ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepository) Update(ctx context.Context, entry *models.ServiceEntry) error {
	if entry == nil {
		return fmt.Errorf("service entry is required")
	}
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
