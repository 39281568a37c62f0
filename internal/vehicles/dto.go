package vehicles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
)

// VehicleDTO exposes vehicle data in API responses.
type VehicleDTO struct {
	ID                 uuid.UUID            `json:"id"`
	LicensePlate       string               `json:"license_plate"`
	Renavam            *string              `json:"renavam,omitempty"`
	VIN                *string              `json:"vin,omitempty"`
	Year               int                  `json:"year"`
	Color              string               `json:"color"`
	BrandName          string               `json:"brand_name"`
	ModelName          string               `json:"model_name"`
	SupplierSource     enums.SupplierSource `json:"supplier_source"`
	PurchasePrice      decimal.Decimal      `json:"purchase_price"`
	FreightCost        decimal.Decimal      `json:"freight_cost"`
	PurchaseCommission decimal.Decimal      `json:"purchase_commission"`
	SellingPrice       decimal.Decimal      `json:"selling_price"`
	Status             enums.VehicleStatus  `json:"status"`
	AssignedPartnerID  *uuid.UUID           `json:"assigned_partner_id,omitempty"`
	AssignedPartner    *string              `json:"assigned_partner,omitempty"`
	DistributedAt      *time.Time           `json:"distributed_at,omitempty"`
	TotalYardDays      int                  `json:"total_yard_days"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`

	PurchaseInvoiceDocumentID        *uuid.UUID `json:"purchase_invoice_document_id,omitempty"`
	PurchasePaymentReceiptDocumentID *uuid.UUID `json:"purchase_payment_receipt_document_id,omitempty"`
}

// VehicleDetailDTO adds the derived cost figures to the base DTO.
type VehicleDetailDTO struct {
	VehicleDTO
	ServicesTotal decimal.Decimal `json:"services_total"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	DocumentCount int             `json:"document_count"`
}

// FromModel maps the persisted vehicle into a DTO.
func FromModel(m *models.Vehicle) *VehicleDTO {
	if m == nil {
		return nil
	}
	dto := &VehicleDTO{
		ID:                 m.ID,
		LicensePlate:       m.LicensePlate,
		Renavam:            m.Renavam,
		VIN:                m.VIN,
		Year:               m.Year,
		Color:              m.Color,
		BrandName:          m.BrandName,
		ModelName:          m.ModelName,
		SupplierSource:     m.SupplierSource,
		PurchasePrice:      m.PurchasePrice,
		FreightCost:        m.FreightCost,
		PurchaseCommission: m.PurchaseCommission,
		SellingPrice:       m.SellingPrice,
		Status:             m.Status,
		AssignedPartnerID:  m.AssignedPartnerID,
		DistributedAt:      m.DistributedAt,
		TotalYardDays:      m.TotalYardDays(),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,

		PurchaseInvoiceDocumentID:        m.PurchaseInvoiceDocumentID,
		PurchasePaymentReceiptDocumentID: m.PurchasePaymentReceiptDocumentID,
	}
	if m.AssignedPartner != nil {
		name := m.AssignedPartner.Name
		dto.AssignedPartner = &name
	}
	return dto
}

// DetailFromModel maps a preloaded vehicle into the detail DTO.
func DetailFromModel(m *models.Vehicle) *VehicleDetailDTO {
	if m == nil {
		return nil
	}
	servicesTotal := m.ServicesTotal()
	return &VehicleDetailDTO{
		VehicleDTO:    *FromModel(m),
		ServicesTotal: servicesTotal,
		TotalCost:     m.PurchasePrice.Add(m.FreightCost).Add(servicesTotal),
		DocumentCount: len(m.Documents),
	}
}
