package partners

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/db/models"
)

// PartnerDTO exposes partner data in API responses.
type PartnerDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	City           string          `json:"city"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreatePartnerDTO holds creation-time data for a new partner.
type CreatePartnerDTO struct {
	Name           string
	City           string
	CommissionRate decimal.Decimal
}

// FromModel maps the persisted partner into a DTO.
func FromModel(m *models.Partner) *PartnerDTO {
	if m == nil {
		return nil
	}
	return &PartnerDTO{
		ID:             m.ID,
		Name:           m.Name,
		City:           m.City,
		CommissionRate: m.CommissionRate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreatePartnerDTO) ToModel() *models.Partner {
	return &models.Partner{
		Name:           c.Name,
		City:           c.City,
		CommissionRate: c.CommissionRate,
	}
}
