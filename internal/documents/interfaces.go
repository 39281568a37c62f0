package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

// Repository defines persistence operations for the documents table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, document *models.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
