package reports

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/internal/sales"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to the reporting queries.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

const soldRowsQuery = `
SELECT
    v.id AS vehicle_id,
    v.license_plate,
    v.brand_name,
    v.model_name,
    p.name AS partner_name,
    v.updated_at AS sold_at,
    v.purchase_price,
    v.purchase_commission,
    v.freight_cost,
    v.selling_price,
    COALESCE(se.total, 0) AS services_total
FROM vehicles v
JOIN partners p ON p.id = v.assigned_partner_id
LEFT JOIN (
    SELECT vehicle_id, SUM(service_value) AS total
    FROM service_entries
    GROUP BY vehicle_id
) se ON se.vehicle_id = v.id
WHERE v.status = 'SOLD'`

const distributedRowsQuery = `
SELECT
    p.id AS partner_id,
    p.name AS partner_name,
    v.id AS vehicle_id,
    v.license_plate,
    v.brand_name,
    v.model_name,
    v.distributed_at,
    v.purchase_price,
    v.freight_cost,
    COALESCE(se.total, 0) AS services_total
FROM vehicles v
JOIN partners p ON p.id = v.assigned_partner_id
LEFT JOIN (
    SELECT vehicle_id, SUM(service_value) AS total
    FROM service_entries
    GROUP BY vehicle_id
) se ON se.vehicle_id = v.id
WHERE v.status = 'DISTRIBUTED'`

// appendFilters adds the shared WHERE clauses. dateColumn carries the
// report-specific timestamp the range filter applies to.
func appendFilters(query string, args []interface{}, filters ReportFilters, dateColumn string) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(query)

	if filters.From != nil {
		b.WriteString(" AND " + dateColumn + " >= ?")
		args = append(args, *filters.From)
	}
	if filters.To != nil {
		b.WriteString(" AND " + dateColumn + " < ?")
		args = append(args, *filters.To)
	}
	if brand := strings.TrimSpace(filters.Brand); brand != "" {
		b.WriteString(" AND LOWER(v.brand_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(brand)+"%")
	}
	if model := strings.TrimSpace(filters.Model); model != "" {
		b.WriteString(" AND LOWER(v.model_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(model)+"%")
	}
	if filters.PartnerID != nil {
		b.WriteString(" AND v.assigned_partner_id = ?")
		args = append(args, *filters.PartnerID)
	}
	return b.String(), args
}

func (r *gormRepository) SoldVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.SoldVehicleRow, error) {
	query, args := appendFilters(soldRowsQuery, nil, filters, "v.updated_at")
	query += " ORDER BY v.updated_at ASC"

	var rows []sales.SoldVehicleRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) DistributedVehicleRows(ctx context.Context, filters ReportFilters) ([]sales.DistributedVehicleRow, error) {
	query, args := appendFilters(distributedRowsQuery, nil, filters, "v.distributed_at")
	query += " ORDER BY v.distributed_at ASC"

	var rows []sales.DistributedVehicleRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
