package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func soldRow(plate, purchase, commission, freight, selling, services string) SoldVehicleRow {
	return SoldVehicleRow{
		VehicleID:          uuid.New(),
		LicensePlate:       plate,
		BrandName:          "Fiat",
		ModelName:          "Argo",
		PartnerName:        "Auto Center Sul",
		SoldAt:             time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		PurchasePrice:      decimal.RequireFromString(purchase),
		PurchaseCommission: decimal.RequireFromString(commission),
		FreightCost:        decimal.RequireFromString(freight),
		SellingPrice:       decimal.RequireFromString(selling),
		ServicesTotal:      decimal.RequireFromString(services),
	}
}

func TestBuildSettlementReport_SingleSale(t *testing.T) {
	calc := NewCalculator(defaultRates())

	report := calc.BuildSettlementReport([]SoldVehicleRow{
		soldRow("ABC1234", "10000.00", "1000.00", "500.00", "15000.00", "300.00"),
	})

	if report.Count != 1 {
		t.Fatalf("expected 1 item, got %d", report.Count)
	}

	item := report.Items[0]
	assertDecimal(t, "taxes total", item.Taxes.Total, "656.50")
	assertDecimal(t, "commission income tax", item.CommissionIncomeTax, "150.00")
	assertDecimal(t, "profit", item.Profit, "3393.50")

	assertDecimal(t, "total sold value", report.TotalSoldValue, "15000.00")
	assertDecimal(t, "total taxes", report.TotalTaxes, "656.50")
	assertDecimal(t, "total services", report.TotalServices, "300.00")
	assertDecimal(t, "total commission", report.TotalCommission, "1000.00")
	assertDecimal(t, "total profit", report.TotalProfit, "3393.50")
}

func TestBuildSettlementReport_LossMakingSale(t *testing.T) {
	calc := NewCalculator(defaultRates())

	report := calc.BuildSettlementReport([]SoldVehicleRow{
		soldRow("XYZ9876", "10000.00", "0.00", "200.00", "8000.00", "100.00"),
	})

	item := report.Items[0]
	// Loss clamps the margin, so only ICMS applies.
	assertDecimal(t, "taxes total", item.Taxes.Total, "48.00")
	assertDecimal(t, "profit", item.Profit, "-2348.00")
}

func TestBuildSettlementReport_TotalsSumPerRow(t *testing.T) {
	calc := NewCalculator(defaultRates())

	rows := []SoldVehicleRow{
		soldRow("AAA1111", "10000.00", "1000.00", "500.00", "15000.00", "300.00"),
		soldRow("BBB2222", "20000.00", "500.00", "250.00", "22500.00", "750.00"),
		soldRow("CCC3333", "9000.00", "0.00", "0.00", "8500.00", "120.00"),
	}

	report := calc.BuildSettlementReport(rows)

	if report.Count != 3 {
		t.Fatalf("expected 3 items, got %d", report.Count)
	}

	profit := decimal.Zero
	taxes := decimal.Zero
	sold := decimal.Zero
	for _, item := range report.Items {
		profit = profit.Add(item.Profit)
		taxes = taxes.Add(item.Taxes.Total)
		sold = sold.Add(item.SellingPrice)
	}
	if !report.TotalProfit.Equal(profit) {
		t.Fatalf("total profit %s != per-row sum %s", report.TotalProfit, profit)
	}
	if !report.TotalTaxes.Equal(taxes) {
		t.Fatalf("total taxes %s != per-row sum %s", report.TotalTaxes, taxes)
	}
	if !report.TotalSoldValue.Equal(sold) {
		t.Fatalf("total sold value %s != per-row sum %s", report.TotalSoldValue, sold)
	}
}

func TestBuildSettlementReport_Empty(t *testing.T) {
	calc := NewCalculator(defaultRates())

	report := calc.BuildSettlementReport(nil)

	if report.Count != 0 {
		t.Fatalf("expected 0 items, got %d", report.Count)
	}
	if report.Items == nil || len(report.Items) != 0 {
		t.Fatalf("expected empty item list, got %v", report.Items)
	}
	assertDecimal(t, "total sold value", report.TotalSoldValue, "0")
	assertDecimal(t, "total taxes", report.TotalTaxes, "0")
	assertDecimal(t, "total services", report.TotalServices, "0")
	assertDecimal(t, "total commission", report.TotalCommission, "0")
	assertDecimal(t, "total profit", report.TotalProfit, "0")
}
