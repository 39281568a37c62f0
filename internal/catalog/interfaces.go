package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

// Repository defines persistence operations for the brand/model catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindBrandByName(ctx context.Context, name string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error
	FindModel(ctx context.Context, brandID uuid.UUID, name string) (*models.VehicleModel, error)
	CreateModel(ctx context.Context, model *models.VehicleModel) error
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListModels(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error)
}
