package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

// Repository defines persistence operations for the service_entries table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.ServiceEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceEntry, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.ServiceEntry, error)
	Update(ctx context.Context, entry *models.ServiceEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
