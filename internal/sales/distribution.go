package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DistributedVehicleRow is the raw record for a vehicle currently with a
// partner, as produced by the reporting queries. Rows arrive pre-filtered.
type DistributedVehicleRow struct {
	PartnerID     uuid.UUID
	PartnerName   string
	VehicleID     uuid.UUID
	LicensePlate  string
	BrandName     string
	ModelName     string
	DistributedAt time.Time
	PurchasePrice decimal.Decimal
	FreightCost   decimal.Decimal
	ServicesTotal decimal.Decimal
}

// DistributedVehicleItem is one vehicle line inside a partner group.
type DistributedVehicleItem struct {
	VehicleID     uuid.UUID       `json:"vehicleId"`
	LicensePlate  string          `json:"licensePlate"`
	BrandName     string          `json:"brandName"`
	ModelName     string          `json:"modelName"`
	DistributedAt time.Time       `json:"distributedAt"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	FreightCost   decimal.Decimal `json:"freightCost"`
	ServicesTotal decimal.Decimal `json:"servicesTotal"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

// PartnerGroup aggregates the vehicles currently held by one partner.
type PartnerGroup struct {
	PartnerID          uuid.UUID                `json:"partnerId"`
	PartnerName        string                   `json:"partnerName"`
	Vehicles           []DistributedVehicleItem `json:"vehicles"`
	VehicleCount       int                      `json:"vehicleCount"`
	VehiclesTotalValue decimal.Decimal          `json:"vehiclesTotalValue"`
}

// DistributionReport groups distributed vehicles by partner in first-seen
// order.
type DistributionReport struct {
	Partners           []PartnerGroup  `json:"partners"`
	VehicleCount       int             `json:"vehicleCount"`
	VehiclesTotalValue decimal.Decimal `json:"vehiclesTotalValue"`
}

// BuildDistributionReport groups the rows by partner, preserving the order in
// which partners first appear. The partner total sums purchase prices only;
// freight and services show up in the per-vehicle total cost.
func BuildDistributionReport(rows []DistributedVehicleRow) DistributionReport {
	report := DistributionReport{
		Partners:           make([]PartnerGroup, 0),
		VehiclesTotalValue: decimal.Zero,
	}
	index := make(map[uuid.UUID]int)

	for _, row := range rows {
		at, seen := index[row.PartnerID]
		if !seen {
			at = len(report.Partners)
			index[row.PartnerID] = at
			report.Partners = append(report.Partners, PartnerGroup{
				PartnerID:          row.PartnerID,
				PartnerName:        row.PartnerName,
				Vehicles:           make([]DistributedVehicleItem, 0),
				VehiclesTotalValue: decimal.Zero,
			})
		}

		item := DistributedVehicleItem{
			VehicleID:     row.VehicleID,
			LicensePlate:  row.LicensePlate,
			BrandName:     row.BrandName,
			ModelName:     row.ModelName,
			DistributedAt: row.DistributedAt,
			PurchasePrice: row.PurchasePrice,
			FreightCost:   row.FreightCost,
			ServicesTotal: row.ServicesTotal,
			TotalCost:     row.PurchasePrice.Add(row.FreightCost).Add(row.ServicesTotal),
		}

		group := &report.Partners[at]
		group.Vehicles = append(group.Vehicles, item)
		group.VehicleCount++
		group.VehiclesTotalValue = group.VehiclesTotalValue.Add(row.PurchasePrice)

		report.VehicleCount++
		report.VehiclesTotalValue = report.VehiclesTotalValue.Add(row.PurchasePrice)
	}

	return report
}
