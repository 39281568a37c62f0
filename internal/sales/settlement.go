package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SoldVehicleRow is the raw per-vehicle record for a completed sale, as
// produced by the reporting queries.
type SoldVehicleRow struct {
	VehicleID          uuid.UUID
	LicensePlate       string
	BrandName          string
	ModelName          string
	PartnerName        string
	SoldAt             time.Time
	PurchasePrice      decimal.Decimal
	PurchaseCommission decimal.Decimal
	FreightCost        decimal.Decimal
	SellingPrice       decimal.Decimal
	ServicesTotal      decimal.Decimal
}

// SettlementItem is the computed financial outcome for one sold vehicle.
type SettlementItem struct {
	VehicleID           uuid.UUID       `json:"vehicleId"`
	LicensePlate        string          `json:"licensePlate"`
	BrandName           string          `json:"brandName"`
	ModelName           string          `json:"modelName"`
	PartnerName         string          `json:"partnerName"`
	SoldAt              time.Time       `json:"soldAt"`
	SellingPrice        decimal.Decimal `json:"sellingPrice"`
	PurchasePrice       decimal.Decimal `json:"purchasePrice"`
	FreightCost         decimal.Decimal `json:"freightCost"`
	ServicesTotal       decimal.Decimal `json:"servicesTotal"`
	PurchaseCommission  decimal.Decimal `json:"purchaseCommission"`
	CommissionIncomeTax decimal.Decimal `json:"commissionIncomeTax"`
	Taxes               TaxBreakdown    `json:"taxes"`
	Profit              decimal.Decimal `json:"profit"`
}

// SettlementReport aggregates the settlement of a batch of sold vehicles.
type SettlementReport struct {
	Items           []SettlementItem `json:"items"`
	Count           int              `json:"count"`
	TotalSoldValue  decimal.Decimal  `json:"totalSoldValue"`
	TotalTaxes      decimal.Decimal  `json:"totalTaxes"`
	TotalServices   decimal.Decimal  `json:"totalServices"`
	TotalCommission decimal.Decimal  `json:"totalCommission"`
	TotalProfit     decimal.Decimal  `json:"totalProfit"`
}

// BuildSettlementReport settles each sold vehicle and accumulates batch
// totals. Profit is summed per row rather than recomputed from the totals, so
// the report total always matches the sum of its lines. An empty batch yields
// zero totals and an empty item list.
func (c *Calculator) BuildSettlementReport(rows []SoldVehicleRow) SettlementReport {
	report := SettlementReport{
		Items:           make([]SettlementItem, 0, len(rows)),
		TotalSoldValue:  decimal.Zero,
		TotalTaxes:      decimal.Zero,
		TotalServices:   decimal.Zero,
		TotalCommission: decimal.Zero,
		TotalProfit:     decimal.Zero,
	}

	for _, row := range rows {
		item := c.settle(row)
		report.Items = append(report.Items, item)
		report.TotalSoldValue = report.TotalSoldValue.Add(item.SellingPrice)
		report.TotalTaxes = report.TotalTaxes.Add(item.Taxes.Total)
		report.TotalServices = report.TotalServices.Add(item.ServicesTotal)
		report.TotalCommission = report.TotalCommission.Add(item.PurchaseCommission)
		report.TotalProfit = report.TotalProfit.Add(item.Profit)
	}

	report.Count = len(report.Items)
	return report
}

func (c *Calculator) settle(row SoldVehicleRow) SettlementItem {
	baseProfit := row.SellingPrice.Sub(row.PurchasePrice)

	taxableMargin := baseProfit
	if taxableMargin.IsNegative() {
		taxableMargin = decimal.Zero
	}

	taxes := c.CalculateTaxes(row.SellingPrice, taxableMargin)
	commissionTax := c.CommissionIncomeTax(row.PurchaseCommission)

	profit := baseProfit.
		Sub(taxes.Total).
		Sub(row.FreightCost).
		Sub(row.ServicesTotal).
		Sub(commissionTax)

	return SettlementItem{
		VehicleID:           row.VehicleID,
		LicensePlate:        row.LicensePlate,
		BrandName:           row.BrandName,
		ModelName:           row.ModelName,
		PartnerName:         row.PartnerName,
		SoldAt:              row.SoldAt,
		SellingPrice:        row.SellingPrice,
		PurchasePrice:       row.PurchasePrice,
		FreightCost:         row.FreightCost,
		ServicesTotal:       row.ServicesTotal,
		PurchaseCommission:  row.PurchaseCommission,
		CommissionIncomeTax: commissionTax,
		Taxes:               taxes,
		Profit:              profit,
	}
}
