package vehicles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vehicle operations.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("AssignedPartner").
		First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindDetail loads the vehicle with its service entries and documents.
func (r *gormRepository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("AssignedPartner").
		Preload("ServiceEntries").
		Preload("Documents").
		First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *gormRepository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Vehicle, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if filters.Status != nil {
		query = query.Where("status = ?", filters.Status.String())
	}
	if filters.PartnerID != nil {
		query = query.Where("assigned_partner_id = ?", *filters.PartnerID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(license_plate) LIKE ? OR LOWER(brand_name) LIKE ? OR LOWER(model_name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	err := query.
		Preload("AssignedPartner").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *gormRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle == nil {
		return fmt.Errorf("vehicle is required")
	}
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *gormRepository) CountByStatus(ctx context.Context) (map[enums.VehicleStatus]int64, error) {
	var rows []struct {
		Status enums.VehicleStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.VehicleStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
