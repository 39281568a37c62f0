package vehicles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

func setupVehiclesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	partnersTable := `
CREATE TABLE IF NOT EXISTS partners (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  city TEXT NOT NULL,
  commission_rate NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	vehiclesTable := `
CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  license_plate TEXT NOT NULL UNIQUE,
  renavam TEXT,
  vin TEXT,
  year INTEGER NOT NULL,
  color TEXT NOT NULL,
  model_name TEXT NOT NULL,
  brand_name TEXT NOT NULL,
  brand_id TEXT,
  model_id TEXT,
  supplier_source TEXT NOT NULL,
  purchase_price NUMERIC NOT NULL DEFAULT 0,
  freight_cost NUMERIC NOT NULL DEFAULT 0,
  purchase_commission NUMERIC NOT NULL DEFAULT 0,
  selling_price NUMERIC NOT NULL DEFAULT 0,
  purchase_invoice_document_id TEXT,
  purchase_payment_receipt_document_id TEXT,
  status TEXT NOT NULL,
  assigned_partner_id TEXT,
  distributed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(partnersTable).Error)
	require.NoError(t, db.Exec(vehiclesTable).Error)
	return db
}

func seedVehicle(t *testing.T, db *gorm.DB, plate, brand, model string, status enums.VehicleStatus, partnerID *uuid.UUID) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		ID:                uuid.New(),
		LicensePlate:      plate,
		Year:              2020,
		Color:             "Preto",
		BrandName:         brand,
		ModelName:         model,
		SupplierSource:    enums.SupplierSourceAuction,
		PurchasePrice:     decimal.RequireFromString("30000.00"),
		Status:            status,
		AssignedPartnerID: partnerID,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	seedVehicle(t, db, "ABC1234", "Fiat", "Argo", enums.VehicleStatusInLot, nil)
	seedVehicle(t, db, "DEF5678", "Fiat", "Mobi", enums.VehicleStatusInService, nil)

	status := enums.VehicleStatusInService
	rows, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Size: 10}, ListFilters{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "DEF5678", rows[0].LicensePlate)
}

func TestRepositoryListSearchesPlateBrandModel(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	seedVehicle(t, db, "ABC1234", "Volkswagen", "Polo", enums.VehicleStatusInLot, nil)
	seedVehicle(t, db, "DEF5678", "Chevrolet", "Onix", enums.VehicleStatusInLot, nil)

	rows, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Size: 10}, ListFilters{Search: "onix"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chevrolet", rows[0].BrandName)

	rows, total, err = repo.List(context.Background(), pagination.Params{Page: 1, Size: 10}, ListFilters{Search: "abc1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC1234", rows[0].LicensePlate)
}

func TestRepositoryListFiltersByPartner(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	partner := &models.Partner{ID: uuid.New(), Name: "Auto Center Sul", City: "Curitiba"}
	require.NoError(t, db.Create(partner).Error)

	seedVehicle(t, db, "ABC1234", "Fiat", "Argo", enums.VehicleStatusDistributed, &partner.ID)
	seedVehicle(t, db, "DEF5678", "Fiat", "Mobi", enums.VehicleStatusInLot, nil)

	rows, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Size: 10}, ListFilters{PartnerID: &partner.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AssignedPartner)
	assert.Equal(t, "Auto Center Sul", rows[0].AssignedPartner.Name)
}

func TestRepositoryCountByStatus(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	seedVehicle(t, db, "AAA1111", "Fiat", "Argo", enums.VehicleStatusInLot, nil)
	seedVehicle(t, db, "BBB2222", "Fiat", "Mobi", enums.VehicleStatusInLot, nil)
	seedVehicle(t, db, "CCC3333", "Ford", "Ka", enums.VehicleStatusInService, nil)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.VehicleStatusInLot])
	assert.Equal(t, int64(1), counts[enums.VehicleStatusInService])
	assert.NotContains(t, counts, enums.VehicleStatusSold)
}

func TestRepositoryFindByIDPreloadsPartner(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	partner := &models.Partner{ID: uuid.New(), Name: "Garagem Norte", City: "Recife"}
	require.NoError(t, db.Create(partner).Error)
	seeded := seedVehicle(t, db, "ABC1234", "Fiat", "Argo", enums.VehicleStatusDistributed, &partner.ID)

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.AssignedPartner)
	assert.Equal(t, partner.ID, found.AssignedPartner.ID)
}
