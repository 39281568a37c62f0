package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/internal/sales"
	"github.com/lotmotors/resale-backend/pkg/config"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
)

type stubReportsRepo struct {
	soldRows        []sales.SoldVehicleRow
	distributedRows []sales.DistributedVehicleRow
	lastFilters     ReportFilters
	err             error
}

func (s *stubReportsRepo) SoldVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.SoldVehicleRow, error) {
	s.lastFilters = filters
	if s.err != nil {
		return nil, s.err
	}
	return s.soldRows, nil
}

func (s *stubReportsRepo) DistributedVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.DistributedVehicleRow, error) {
	s.lastFilters = filters
	if s.err != nil {
		return nil, s.err
	}
	return s.distributedRows, nil
}

func testCalculator() *sales.Calculator {
	return sales.NewCalculator(config.TaxConfig{
		ICMSRate:          decimal.RequireFromString("0.12"),
		ICMSBaseRate:      decimal.RequireFromString("0.05"),
		PISRate:           decimal.RequireFromString("0.0065"),
		COFINSRate:        decimal.RequireFromString("0.03"),
		CSLLRate:          decimal.RequireFromString("0.0288"),
		IRPJRate:          decimal.RequireFromString("0.048"),
		CommissionTaxRate: decimal.RequireFromString("0.15"),
	})
}

func TestSoldVehiclesBuildsSettlement(t *testing.T) {
	repo := &stubReportsRepo{soldRows: []sales.SoldVehicleRow{{
		VehicleID:          uuid.New(),
		LicensePlate:       "ABC1234",
		PartnerName:        "Autos do Sul",
		SoldAt:             time.Now().UTC(),
		PurchasePrice:      decimal.RequireFromString("10000"),
		PurchaseCommission: decimal.RequireFromString("1000"),
		FreightCost:        decimal.RequireFromString("500"),
		SellingPrice:       decimal.RequireFromString("15000"),
		ServicesTotal:      decimal.RequireFromString("300"),
	}}}
	svc, err := NewService(repo, testCalculator(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	report, err := svc.SoldVehicles(context.Background(), ReportFilters{})
	if err != nil {
		t.Fatalf("sold vehicles: %v", err)
	}
	if report.Count != 1 {
		t.Fatalf("expected 1 sale got %d", report.Count)
	}
	if got := report.TotalProfit.StringFixed(2); got != "3393.50" {
		t.Fatalf("expected total profit 3393.50 got %s", got)
	}
	if got := report.TotalTaxes.StringFixed(2); got != "656.50" {
		t.Fatalf("expected total taxes 656.50 got %s", got)
	}
}

func TestDistributedVehiclesGroupsByPartner(t *testing.T) {
	partnerA := uuid.New()
	partnerB := uuid.New()
	repo := &stubReportsRepo{distributedRows: []sales.DistributedVehicleRow{
		{PartnerID: partnerA, PartnerName: "Autos do Sul", VehicleID: uuid.New(), PurchasePrice: decimal.RequireFromString("10000")},
		{PartnerID: partnerB, PartnerName: "Autos do Norte", VehicleID: uuid.New(), PurchasePrice: decimal.RequireFromString("20000")},
		{PartnerID: partnerA, PartnerName: "Autos do Sul", VehicleID: uuid.New(), PurchasePrice: decimal.RequireFromString("12000")},
	}}
	svc, _ := NewService(repo, testCalculator(), nil)

	report, err := svc.DistributedVehicles(context.Background(), ReportFilters{})
	if err != nil {
		t.Fatalf("distributed vehicles: %v", err)
	}
	if len(report.Partners) != 2 {
		t.Fatalf("expected 2 partner groups got %d", len(report.Partners))
	}
	if report.Partners[0].PartnerID != partnerA {
		t.Fatal("expected first-seen partner order preserved")
	}
	if got := report.Partners[0].VehiclesTotalValue.StringFixed(2); got != "22000.00" {
		t.Fatalf("expected partner total 22000.00 got %s", got)
	}
}

func TestEmptyReportsReturnZeroTotals(t *testing.T) {
	svc, _ := NewService(&stubReportsRepo{}, testCalculator(), nil)

	sold, err := svc.SoldVehicles(context.Background(), ReportFilters{})
	if err != nil {
		t.Fatalf("sold vehicles: %v", err)
	}
	if sold.Count != 0 || !sold.TotalProfit.IsZero() {
		t.Fatalf("expected zeroed sold report, got %+v", sold)
	}

	distributed, err := svc.DistributedVehicles(context.Background(), ReportFilters{})
	if err != nil {
		t.Fatalf("distributed vehicles: %v", err)
	}
	if distributed.VehicleCount != 0 || !distributed.VehiclesTotalValue.IsZero() {
		t.Fatalf("expected zeroed distribution report, got %+v", distributed)
	}
}

func TestRejectsInvertedDateRange(t *testing.T) {
	svc, _ := NewService(&stubReportsRepo{}, testCalculator(), nil)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, err := svc.SoldVehicles(context.Background(), ReportFilters{From: &from, To: &to})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDependencyErrorsAreWrapped(t *testing.T) {
	repo := &stubReportsRepo{err: errors.New("connection refused")}
	svc, _ := NewService(repo, testCalculator(), nil)

	_, err := svc.SoldVehicles(context.Background(), ReportFilters{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
