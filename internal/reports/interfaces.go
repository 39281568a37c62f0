package reports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lotmotors/resale-backend/internal/sales"
)

// ReportFilters narrows the reporting row queries. Zero values mean "no
// filter"; brand and model match case-insensitively as substrings.
type ReportFilters struct {
	From      *time.Time
	To        *time.Time
	Brand     string
	Model     string
	PartnerID *uuid.UUID
}

// Repository sources raw per-vehicle reporting rows from SQL.
type Repository interface {
	SoldVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.SoldVehicleRow, error)
	DistributedVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.DistributedVehicleRow, error)
}
