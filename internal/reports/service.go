package reports

import (
	"context"
	"fmt"

	"github.com/lotmotors/resale-backend/internal/sales"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/metrics"
)

// Service builds the management reports from raw SQL rows.
type Service interface {
	SoldVehicles(ctx context.Context, filters ReportFilters) (*sales.SettlementReport, error)
	DistributedVehicles(ctx context.Context, filters ReportFilters) (*sales.DistributionReport, error)
}

type service struct {
	repo       Repository
	calculator *sales.Calculator
	metrics    *metrics.LifecycleMetrics
}

// NewService builds a reports service. Metrics may be nil.
func NewService(repo Repository, calculator *sales.Calculator, lifecycleMetrics *metrics.LifecycleMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if calculator == nil {
		return nil, fmt.Errorf("tax calculator required")
	}
	return &service{repo: repo, calculator: calculator, metrics: lifecycleMetrics}, nil
}

func validateFilters(filters ReportFilters) error {
	if filters.From != nil && filters.To != nil && filters.To.Before(*filters.From) {
		return pkgerrors.New(pkgerrors.CodeValidation, "date range end precedes start")
	}
	return nil
}

func (s *service) SoldVehicles(ctx context.Context, filters ReportFilters) (*sales.SettlementReport, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	rows, err := s.repo.SoldVehicleRows(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sold vehicle rows")
	}

	report := s.calculator.BuildSettlementReport(rows)
	s.metrics.IncReport("sold")
	return &report, nil
}

func (s *service) DistributedVehicles(ctx context.Context, filters ReportFilters) (*sales.DistributionReport, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	rows, err := s.repo.DistributedVehicleRows(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load distributed vehicle rows")
	}

	report := sales.BuildDistributionReport(rows)
	s.metrics.IncReport("distribution")
	return &report, nil
}
