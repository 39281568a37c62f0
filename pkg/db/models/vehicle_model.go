package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleModel is a catalog entry for a model under a brand.
type VehicleModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BrandID   uuid.UUID `gorm:"column:brand_id;type:uuid;not null;uniqueIndex:idx_vehicle_models_brand_name"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_vehicle_models_brand_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
