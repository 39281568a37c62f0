package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/lotmotors/resale-backend/pkg/db"
	"github.com/lotmotors/resale-backend/pkg/db/models"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
)

// Service resolves brand/model names to catalog rows, creating them on first use.
type Service interface {
	ResolveTx(ctx context.Context, tx *gorm.DB, brandName, modelName string) (*ResolvedCatalogEntry, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListModels(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error)
}

// ResolvedCatalogEntry carries the catalog identifiers for a brand/model pair.
type ResolvedCatalogEntry struct {
	BrandID   uuid.UUID
	BrandName string
	ModelID   uuid.UUID
	ModelName string
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ResolveTx looks up the brand and model by name inside the provided
// transaction, creating missing rows. A concurrent insert on the unique
// indexes falls back to a re-read.
func (s *service) ResolveTx(ctx context.Context, tx *gorm.DB, brandName, modelName string) (*ResolvedCatalogEntry, error) {
	brandName = strings.TrimSpace(brandName)
	modelName = strings.TrimSpace(modelName)
	if brandName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required")
	}
	if modelName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model name is required")
	}

	repo := s.repo.WithTx(tx)

	brand, err := repo.FindBrandByName(ctx, brandName)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup brand")
		}
		brand = &models.Brand{Name: brandName}
		if createErr := repo.CreateBrand(ctx, brand); createErr != nil {
			if !dbpkg.IsUniqueViolation(createErr, "idx_brands_name") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create brand")
			}
			brand, err = repo.FindBrandByName(ctx, brandName)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload brand")
			}
		}
	}

	model, err := repo.FindModel(ctx, brand.ID, modelName)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup model")
		}
		model = &models.VehicleModel{BrandID: brand.ID, Name: modelName}
		if createErr := repo.CreateModel(ctx, model); createErr != nil {
			if !dbpkg.IsUniqueViolation(createErr, "idx_vehicle_models_brand_name") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create model")
			}
			model, err = repo.FindModel(ctx, brand.ID, modelName)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload model")
			}
		}
	}

	return &ResolvedCatalogEntry{
		BrandID:   brand.ID,
		BrandName: brand.Name,
		ModelID:   model.ID,
		ModelName: model.Name,
	}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return brands, nil
}

func (s *service) ListModels(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error) {
	if brandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	vehicleModels, err := s.repo.ListModels(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list models")
	}
	return vehicleModels, nil
}
