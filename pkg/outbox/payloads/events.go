package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/enums"
)

// VehicleCreatedEvent signals a vehicle entering the lot.
type VehicleCreatedEvent struct {
	VehicleID      uuid.UUID            `json:"vehicle_id"`
	LicensePlate   string               `json:"license_plate"`
	SupplierSource enums.SupplierSource `json:"supplier_source"`
	PurchasePrice  decimal.Decimal      `json:"purchase_price"`
}

// VehicleDistributedEvent is emitted when a vehicle is handed to a partner.
type VehicleDistributedEvent struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	LicensePlate  string    `json:"license_plate"`
	PartnerID     uuid.UUID `json:"partner_id"`
	DistributedAt time.Time `json:"distributed_at"`
}

// VehicleSoldEvent surfaces the final sale figures.
type VehicleSoldEvent struct {
	VehicleID    uuid.UUID       `json:"vehicle_id"`
	LicensePlate string          `json:"license_plate"`
	PartnerID    uuid.UUID       `json:"partner_id"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	SoldAt       time.Time       `json:"sold_at"`
}

// PartnerCreatedEvent signals a new resale partner.
type PartnerCreatedEvent struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
}
