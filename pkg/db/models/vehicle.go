package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/errors"
)

// Vehicle represents a unit in the resale pipeline, from lot intake to sale.
type Vehicle struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LicensePlate       string               `gorm:"column:license_plate;not null;uniqueIndex:idx_vehicles_license_plate"`
	Renavam            *string              `gorm:"column:renavam;uniqueIndex:idx_vehicles_renavam"`
	VIN                *string              `gorm:"column:vin;uniqueIndex:idx_vehicles_vin"`
	Year               int                  `gorm:"column:year;not null"`
	Color              string               `gorm:"column:color;not null"`
	ModelName          string               `gorm:"column:model_name;not null"`
	BrandName          string               `gorm:"column:brand_name;not null"`
	BrandID            *uuid.UUID           `gorm:"column:brand_id;type:uuid"`
	ModelID            *uuid.UUID           `gorm:"column:model_id;type:uuid"`
	SupplierSource     enums.SupplierSource `gorm:"column:supplier_source;not null"`
	PurchasePrice      decimal.Decimal      `gorm:"column:purchase_price;type:numeric(12,2);not null"`
	FreightCost        decimal.Decimal      `gorm:"column:freight_cost;type:numeric(12,2);not null;default:0"`
	PurchaseCommission decimal.Decimal      `gorm:"column:purchase_commission;type:numeric(12,2);not null;default:0"`
	SellingPrice       decimal.Decimal      `gorm:"column:selling_price;type:numeric(12,2);not null;default:0"`

	PurchaseInvoiceDocumentID        *uuid.UUID `gorm:"column:purchase_invoice_document_id;type:uuid"`
	PurchasePaymentReceiptDocumentID *uuid.UUID `gorm:"column:purchase_payment_receipt_document_id;type:uuid"`

	Status            enums.VehicleStatus `gorm:"column:status;not null"`
	AssignedPartnerID *uuid.UUID          `gorm:"column:assigned_partner_id;type:uuid"`
	AssignedPartner   *Partner            `gorm:"foreignKey:AssignedPartnerID"`
	DistributedAt     *time.Time          `gorm:"column:distributed_at"`

	ServiceEntries []ServiceEntry `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
	Documents      []Document     `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TransitionStatus moves the vehicle to target, enforcing the forward-only
// pipeline order. Distribution requires a partner; falling back to a
// pre-distribution state clears it.
func (v *Vehicle) TransitionStatus(target enums.VehicleStatus, partnerID *uuid.UUID) error {
	if !v.Status.CanTransitionTo(target) {
		return errors.New(errors.CodeStateConflict,
			"vehicle in status "+v.Status.String()+" cannot move to "+target.String())
	}

	switch {
	case target == enums.VehicleStatusDistributed:
		if partnerID == nil && v.AssignedPartnerID == nil {
			return errors.New(errors.CodeStateConflict, "assigned partner is required when distributing a vehicle")
		}
		if partnerID != nil {
			v.AssignedPartnerID = partnerID
		}
		v.stampDistributedAt()
	case target == enums.VehicleStatusSold:
		if v.AssignedPartnerID == nil {
			return errors.New(errors.CodeStateConflict, "vehicle must be distributed to a partner before it can be sold")
		}
		if !v.SellingPrice.IsPositive() {
			return errors.New(errors.CodeStateConflict, "selling price must be set before the vehicle can be sold")
		}
	default:
		v.AssignedPartnerID = nil
	}

	v.Status = target
	return nil
}

// AssignPartner distributes the vehicle to a partner. Only vehicles that are
// ready for distribution accept an assignment.
func (v *Vehicle) AssignPartner(partnerID uuid.UUID) error {
	if v.Status != enums.VehicleStatusReadyForDistribution {
		return errors.New(errors.CodeStateConflict, "vehicle must be ready for distribution")
	}
	v.AssignedPartnerID = &partnerID
	v.Status = enums.VehicleStatusDistributed
	v.stampDistributedAt()
	return nil
}

// stampDistributedAt records when the vehicle first reached the partner.
// Later transitions never move the stamp.
func (v *Vehicle) stampDistributedAt() {
	if v.DistributedAt == nil {
		now := time.Now().UTC()
		v.DistributedAt = &now
	}
}

// EnsureServicesEditable rejects service mutations once the vehicle has moved
// past the preparation phase.
func (v *Vehicle) EnsureServicesEditable() error {
	if v.Status.AlreadyDistributed() {
		return errors.New(errors.CodeStateConflict, "services are read-only after distribution")
	}
	return nil
}

// EnsureDistributionInvariant verifies the partner assignment matches the
// status: distributed and sold vehicles have a partner, earlier states do not.
func (v *Vehicle) EnsureDistributionInvariant() error {
	if v.Status.AlreadyDistributed() && v.AssignedPartnerID == nil {
		return errors.New(errors.CodeStateConflict, "assigned partner is required when vehicle is distributed")
	}
	if !v.Status.AlreadyDistributed() && v.AssignedPartnerID != nil {
		return errors.New(errors.CodeStateConflict, "assigned partner can only be set when vehicle is distributed")
	}
	return nil
}

// TotalYardDays counts whole days the vehicle spent in the yard, from intake
// until distribution or, when still in preparation, until now.
func (v *Vehicle) TotalYardDays() int {
	last := time.Now().UTC()
	if v.Status.AlreadyDistributed() {
		if v.DistributedAt == nil {
			return 0
		}
		last = *v.DistributedAt
	}

	days := int(last.Sub(v.CreatedAt) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// ServicesTotal sums the cost of every recorded service entry.
func (v *Vehicle) ServicesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range v.ServiceEntries {
		total = total.Add(entry.ServiceValue)
	}
	return total
}
