package partners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to partner operations.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, dto CreatePartnerDTO) (*models.Partner, error) {
	partner := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// List returns a page of partners ordered by name, plus the total row count.
func (r *gormRepository) List(ctx context.Context, params pagination.Params) ([]models.Partner, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Partner{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var partners []models.Partner
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&partners).Error
	if err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

func (r *gormRepository) Update(ctx context.Context, partner *models.Partner) error {
	if partner == nil {
		return fmt.Errorf("partner is required")
	}
	return r.db.WithContext(ctx).Save(partner).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Partner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAssignedVehicles reports how many vehicles currently reference the partner.
func (r *gormRepository) CountAssignedVehicles(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("assigned_partner_id = ?", partnerID).
		Count(&count).Error
	return count, err
}
