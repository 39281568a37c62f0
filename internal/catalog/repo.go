package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) FindBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *gormRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *gormRepository) FindModel(ctx context.Context, brandID uuid.UUID, name string) (*models.VehicleModel, error) {
	var model models.VehicleModel
	err := r.db.WithContext(ctx).
		First(&model, "brand_id = ? AND name = ?", brandID, name).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *gormRepository) CreateModel(ctx context.Context, model *models.VehicleModel) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *gormRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *gormRepository) ListModels(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error) {
	var vehicleModels []models.VehicleModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("name ASC").
		Find(&vehicleModels).Error
	if err != nil {
		return nil, err
	}
	return vehicleModels, nil
}
