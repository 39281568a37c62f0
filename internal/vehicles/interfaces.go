package vehicles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

// ListFilters narrows the vehicle listing.
type ListFilters struct {
	Status *enums.VehicleStatus
	// Search matches license plate, brand or model, case-insensitively.
	Search    string
	PartnerID *uuid.UUID
}

// Repository defines persistence operations for the vehicles table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Vehicle, int64, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	CountByStatus(ctx context.Context) (map[enums.VehicleStatus]int64, error)
}

type partnerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

type documentFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
}
