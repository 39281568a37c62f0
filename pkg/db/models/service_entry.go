package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/enums"
)

// ServiceEntry records preparation work performed on a vehicle while in the yard.
type ServiceEntry struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID    uuid.UUID         `gorm:"column:vehicle_id;type:uuid;not null;index"`
	ServiceType  enums.ServiceType `gorm:"column:service_type;not null"`
	Description  string            `gorm:"column:description;not null"`
	ServiceValue decimal.Decimal   `gorm:"column:service_value;type:numeric(12,2);not null"`
	PerformedAt  time.Time         `gorm:"column:performed_at;type:date;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
