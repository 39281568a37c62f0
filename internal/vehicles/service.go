package vehicles

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/internal/catalog"
	"github.com/lotmotors/resale-backend/internal/sales"
	"github.com/lotmotors/resale-backend/pkg/config"
	dbpkg "github.com/lotmotors/resale-backend/pkg/db"
	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/metrics"
	"github.com/lotmotors/resale-backend/pkg/outbox"
	"github.com/lotmotors/resale-backend/pkg/outbox/payloads"
	"github.com/lotmotors/resale-backend/pkg/pagination"
	"github.com/lotmotors/resale-backend/pkg/types"
)

// licensePlateRE accepts the legacy AAA9999 format and the Mercosul AAA9A99 format.
var licensePlateRE = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$|^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Actor identifies the authenticated user performing a mutation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// Service exposes vehicle lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleDetailDTO, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]VehicleDTO, pagination.Meta, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, input UpdateVehicleInput) (*VehicleDTO, error)
	UpdateSellingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, actor Actor) (*VehicleDTO, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target enums.VehicleStatus, partnerID *uuid.UUID, actor Actor) (*VehicleDTO, error)
	AssignPartner(ctx context.Context, id, partnerID uuid.UUID, actor Actor) (*VehicleDTO, error)
	GetVehicleTaxes(ctx context.Context, id uuid.UUID) (*sales.TaxBreakdown, error)
}

type service struct {
	repo       Repository
	partners   partnerFinder
	documents  documentFinder
	catalog    catalog.Service
	tx         txRunner
	outbox     outboxPublisher
	metrics    *metrics.LifecycleMetrics
	calculator *sales.Calculator
	lifecycle  config.LifecycleConfig
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Repo       Repository
	Partners   partnerFinder
	Documents  documentFinder
	Catalog    catalog.Service
	Tx         txRunner
	Outbox     outboxPublisher
	Metrics    *metrics.LifecycleMetrics
	Calculator *sales.Calculator
	Lifecycle  config.LifecycleConfig
}

// NewService builds a vehicle service with the required dependencies.
// Metrics may be nil; every other dependency is mandatory.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	if params.Partners == nil {
		return nil, fmt.Errorf("partner finder required")
	}
	if params.Documents == nil {
		return nil, fmt.Errorf("document finder required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Calculator == nil {
		return nil, fmt.Errorf("tax calculator required")
	}
	return &service{
		repo:       params.Repo,
		partners:   params.Partners,
		documents:  params.Documents,
		catalog:    params.Catalog,
		tx:         params.Tx,
		outbox:     params.Outbox,
		metrics:    params.Metrics,
		calculator: params.Calculator,
		lifecycle:  params.Lifecycle,
	}, nil
}

// CreateVehicleInput captures intake data for a vehicle entering the lot.
type CreateVehicleInput struct {
	LicensePlate       string
	Renavam            *string
	VIN                *string
	Year               int
	Color              string
	BrandName          string
	ModelName          string
	SupplierSource     enums.SupplierSource
	PurchasePrice      decimal.Decimal
	FreightCost        decimal.Decimal
	PurchaseCommission decimal.Decimal
	Actor              Actor
}

// UpdateVehicleInput captures the mutable vehicle fields. Document references
// use NullableUUID so callers can clear a link with an explicit null.
type UpdateVehicleInput struct {
	Renavam            *string
	VIN                *string
	Year               *int
	Color              *string
	BrandName          *string
	ModelName          *string
	FreightCost        *decimal.Decimal
	PurchaseCommission *decimal.Decimal

	PurchaseInvoiceDocumentID        types.NullableUUID
	PurchasePaymentReceiptDocumentID types.NullableUUID
}

// NormalizeLicensePlate strips separators and uppercases the plate.
func NormalizeLicensePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, "-", "")
	return strings.ReplaceAll(plate, " ", "")
}

func validatePlate(plate string) error {
	if plate == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "license plate is required")
	}
	if !licensePlateRE.MatchString(plate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "license plate format not recognized").
			WithDetails(map[string]string{"license_plate": plate})
	}
	return nil
}

func validateMoney(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, field+" cannot be negative").
			WithDetails(map[string]string{"field": field})
	}
	return nil
}

func mapVehicleUniqueViolation(err error) error {
	switch {
	case dbpkg.IsUniqueViolation(err, "idx_vehicles_license_plate"):
		return pkgerrors.New(pkgerrors.CodeConflict, "license plate already registered")
	case dbpkg.IsUniqueViolation(err, "idx_vehicles_renavam"):
		return pkgerrors.New(pkgerrors.CodeConflict, "renavam already registered")
	case dbpkg.IsUniqueViolation(err, "idx_vehicles_vin"):
		return pkgerrors.New(pkgerrors.CodeConflict, "vin already registered")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error) {
	plate := NormalizeLicensePlate(input.LicensePlate)
	if err := validatePlate(plate); err != nil {
		return nil, err
	}
	if !input.SupplierSource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid supplier source")
	}
	if !input.PurchasePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase price must be positive")
	}
	for field, value := range map[string]decimal.Decimal{
		"freight_cost":        input.FreightCost,
		"purchase_commission": input.PurchaseCommission,
	} {
		if err := validateMoney(field, value); err != nil {
			return nil, err
		}
	}

	var created *models.Vehicle
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		entry, err := s.catalog.ResolveTx(ctx, tx, input.BrandName, input.ModelName)
		if err != nil {
			return err
		}

		vehicle := &models.Vehicle{
			LicensePlate:       plate,
			Renavam:            input.Renavam,
			VIN:                input.VIN,
			Year:               input.Year,
			Color:              strings.TrimSpace(input.Color),
			BrandName:          entry.BrandName,
			ModelName:          entry.ModelName,
			BrandID:            &entry.BrandID,
			ModelID:            &entry.ModelID,
			SupplierSource:     input.SupplierSource,
			PurchasePrice:      input.PurchasePrice,
			FreightCost:        input.FreightCost,
			PurchaseCommission: input.PurchaseCommission,
			SellingPrice:       decimal.Zero,
			Status:             enums.VehicleStatusInLot,
		}

		if err := s.repo.WithTx(tx).Create(ctx, vehicle); err != nil {
			if mapped := mapVehicleUniqueViolation(err); mapped != nil {
				return mapped
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
		}
		created = vehicle

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventVehicleCreated,
			AggregateType: enums.AggregateVehicle,
			AggregateID:   vehicle.ID,
			Version:       1,
			Actor:         buildActor(input.Actor),
			Data: payloads.VehicleCreatedEvent{
				VehicleID:      vehicle.ID,
				LicensePlate:   vehicle.LicensePlate,
				SupplierSource: vehicle.SupplierSource,
				PurchasePrice:  vehicle.PurchasePrice,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*VehicleDetailDTO, error) {
	vehicle, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	return DetailFromModel(vehicle), nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]VehicleDTO, pagination.Meta, error) {
	params = pagination.Normalize(params)
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}

	dtos := make([]VehicleDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, pagination.NewMeta(params, total), nil
}

func (s *service) UpdateDetails(ctx context.Context, id uuid.UUID, input UpdateVehicleInput) (*VehicleDTO, error) {
	if (input.BrandName == nil) != (input.ModelName == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand and model must be updated together")
	}
	if input.FreightCost != nil {
		if err := validateMoney("freight_cost", *input.FreightCost); err != nil {
			return nil, err
		}
	}
	if input.PurchaseCommission != nil {
		if err := validateMoney("purchase_commission", *input.PurchaseCommission); err != nil {
			return nil, err
		}
	}

	var updated *models.Vehicle
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vehicle, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}
		if vehicle.Status == enums.VehicleStatusSold {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "sold vehicles are read-only")
		}

		if input.Renavam != nil {
			vehicle.Renavam = cloneStringPtr(input.Renavam)
		}
		if input.VIN != nil {
			vehicle.VIN = cloneStringPtr(input.VIN)
		}
		if input.Year != nil {
			vehicle.Year = *input.Year
		}
		if input.Color != nil {
			vehicle.Color = strings.TrimSpace(*input.Color)
		}
		if input.FreightCost != nil {
			vehicle.FreightCost = *input.FreightCost
		}
		if input.PurchaseCommission != nil {
			vehicle.PurchaseCommission = *input.PurchaseCommission
		}
		if input.BrandName != nil {
			entry, err := s.catalog.ResolveTx(ctx, tx, *input.BrandName, *input.ModelName)
			if err != nil {
				return err
			}
			vehicle.BrandName = entry.BrandName
			vehicle.ModelName = entry.ModelName
			vehicle.BrandID = &entry.BrandID
			vehicle.ModelID = &entry.ModelID
		}

		if err := s.applyDocumentLink(ctx, vehicle, input.PurchaseInvoiceDocumentID, &vehicle.PurchaseInvoiceDocumentID); err != nil {
			return err
		}
		if err := s.applyDocumentLink(ctx, vehicle, input.PurchasePaymentReceiptDocumentID, &vehicle.PurchasePaymentReceiptDocumentID); err != nil {
			return err
		}

		if err := vehicle.EnsureDistributionInvariant(); err != nil {
			return err
		}
		if err := repo.Update(ctx, vehicle); err != nil {
			if mapped := mapVehicleUniqueViolation(err); mapped != nil {
				return mapped
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
		}
		updated = vehicle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// applyDocumentLink updates a document reference when the caller supplied the
// field. Linked documents must belong to the vehicle being updated.
func (s *service) applyDocumentLink(ctx context.Context, vehicle *models.Vehicle, link types.NullableUUID, target **uuid.UUID) error {
	if !link.Valid {
		return nil
	}
	if link.Value == nil {
		*target = nil
		return nil
	}

	document, err := s.documents.FindByID(ctx, *link.Value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	if document.VehicleID != vehicle.ID {
		return pkgerrors.New(pkgerrors.CodeValidation, "document does not belong to this vehicle")
	}
	id := document.ID
	*target = &id
	return nil
}

func (s *service) UpdateSellingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, actor Actor) (*VehicleDTO, error) {
	if !price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must be positive")
	}

	var updated *models.Vehicle
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vehicle, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}
		if vehicle.Status == enums.VehicleStatusSold {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "selling price is final once the vehicle is sold")
		}

		vehicle.SellingPrice = price

		if s.lifecycle.SellOnPriceUpdate {
			from := vehicle.Status
			if err := vehicle.TransitionStatus(enums.VehicleStatusSold, nil); err != nil {
				return err
			}
			if err := vehicle.EnsureDistributionInvariant(); err != nil {
				return err
			}
			if err := repo.Update(ctx, vehicle); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
			}
			updated = vehicle
			s.metrics.ObserveTransition(from, enums.VehicleStatusSold)
			return s.emitSold(ctx, tx, vehicle, actor)
		}

		if err := vehicle.EnsureDistributionInvariant(); err != nil {
			return err
		}
		if err := repo.Update(ctx, vehicle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
		}
		updated = vehicle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) TransitionStatus(ctx context.Context, id uuid.UUID, target enums.VehicleStatus, partnerID *uuid.UUID, actor Actor) (*VehicleDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	if partnerID != nil {
		if err := s.ensurePartnerExists(ctx, *partnerID); err != nil {
			return nil, err
		}
	}

	var updated *models.Vehicle
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vehicle, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}

		from := vehicle.Status
		if err := vehicle.TransitionStatus(target, partnerID); err != nil {
			return err
		}
		if err := vehicle.EnsureDistributionInvariant(); err != nil {
			return err
		}
		if err := repo.Update(ctx, vehicle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
		}
		updated = vehicle
		s.metrics.ObserveTransition(from, target)

		switch {
		case target == enums.VehicleStatusDistributed && from != enums.VehicleStatusDistributed:
			s.metrics.ObserveYardDays(vehicle.TotalYardDays())
			return s.emitDistributed(ctx, tx, vehicle, actor)
		case target == enums.VehicleStatusSold && from != enums.VehicleStatusSold:
			return s.emitSold(ctx, tx, vehicle, actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) AssignPartner(ctx context.Context, id, partnerID uuid.UUID, actor Actor) (*VehicleDTO, error) {
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id required")
	}
	if err := s.ensurePartnerExists(ctx, partnerID); err != nil {
		return nil, err
	}

	var updated *models.Vehicle
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vehicle, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}

		from := vehicle.Status
		if err := vehicle.AssignPartner(partnerID); err != nil {
			return err
		}
		if err := vehicle.EnsureDistributionInvariant(); err != nil {
			return err
		}
		if err := repo.Update(ctx, vehicle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
		}
		updated = vehicle
		s.metrics.ObserveTransition(from, enums.VehicleStatusDistributed)
		s.metrics.ObserveYardDays(vehicle.TotalYardDays())
		return s.emitDistributed(ctx, tx, vehicle, actor)
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) GetVehicleTaxes(ctx context.Context, id uuid.UUID) (*sales.TaxBreakdown, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	margin := vehicle.SellingPrice.Sub(vehicle.PurchasePrice)
	breakdown := s.calculator.CalculateTaxes(vehicle.SellingPrice, margin)
	return &breakdown, nil
}

func (s *service) ensurePartnerExists(ctx context.Context, partnerID uuid.UUID) error {
	if _, err := s.partners.FindByID(ctx, partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	return nil
}

func (s *service) emitDistributed(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle, actor Actor) error {
	if vehicle.AssignedPartnerID == nil || vehicle.DistributedAt == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "distributed vehicle missing partner or timestamp")
	}
	// Distribution happens once per vehicle; reassigning the partner must
	// not queue a second event.
	return s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventVehicleDistributed,
		AggregateType: enums.AggregateVehicle,
		AggregateID:   vehicle.ID,
		Version:       1,
		Actor:         buildActor(actor),
		Data: payloads.VehicleDistributedEvent{
			VehicleID:     vehicle.ID,
			LicensePlate:  vehicle.LicensePlate,
			PartnerID:     *vehicle.AssignedPartnerID,
			DistributedAt: *vehicle.DistributedAt,
		},
	})
}

func (s *service) emitSold(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle, actor Actor) error {
	if vehicle.AssignedPartnerID == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "sold vehicle missing partner")
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventVehicleSold,
		AggregateType: enums.AggregateVehicle,
		AggregateID:   vehicle.ID,
		Version:       1,
		Actor:         buildActor(actor),
		Data: payloads.VehicleSoldEvent{
			VehicleID:    vehicle.ID,
			LicensePlate: vehicle.LicensePlate,
			PartnerID:    *vehicle.AssignedPartnerID,
			SellingPrice: vehicle.SellingPrice,
			SoldAt:       time.Now().UTC(),
		},
	})
}

func buildActor(actor Actor) *outbox.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role}
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
