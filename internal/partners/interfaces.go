package partners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

// Repository defines persistence operations for the partners table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreatePartnerDTO) (*models.Partner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	List(ctx context.Context, params pagination.Params) ([]models.Partner, int64, error)
	Update(ctx context.Context, partner *models.Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAssignedVehicles(ctx context.Context, partnerID uuid.UUID) (int64, error)
}
