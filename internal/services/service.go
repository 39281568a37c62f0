package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
)

// Service exposes preparation cost tracking for vehicles in the yard.
// Entries become read-only once the vehicle is distributed or sold.
type Service interface {
	Add(ctx context.Context, vehicleID uuid.UUID, input ServiceEntryInput) (*ServiceEntryDTO, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) (*ServiceEntryListDTO, error)
	Update(ctx context.Context, vehicleID, entryID uuid.UUID, input ServiceEntryInput) (*ServiceEntryDTO, error)
	Delete(ctx context.Context, vehicleID, entryID uuid.UUID) error
}

type service struct {
	repo     Repository
	vehicles vehicleFinder
}

// NewService builds a service entry service.
func NewService(repo Repository, vehicles vehicleFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("service entries repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle finder required")
	}
	return &service{repo: repo, vehicles: vehicles}, nil
}

// ServiceEntryInput captures a preparation cost line.
type ServiceEntryInput struct {
	ServiceType  enums.ServiceType
	Description  string
	ServiceValue decimal.Decimal
	PerformedAt  time.Time
}

// ServiceEntryDTO exposes a single cost line.
type ServiceEntryDTO struct {
	ID           uuid.UUID         `json:"id"`
	VehicleID    uuid.UUID         `json:"vehicle_id"`
	ServiceType  enums.ServiceType `json:"service_type"`
	Description  string            `json:"description"`
	ServiceValue decimal.Decimal   `json:"service_value"`
	PerformedAt  time.Time         `json:"performed_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ServiceEntryListDTO is the per-vehicle listing with the running total.
type ServiceEntryListDTO struct {
	Entries []ServiceEntryDTO `json:"entries"`
	Total   decimal.Decimal   `json:"total"`
}

func entryFromModel(m *models.ServiceEntry) *ServiceEntryDTO {
	if m == nil {
		return nil
	}
	return &ServiceEntryDTO{
		ID:           m.ID,
		VehicleID:    m.VehicleID,
		ServiceType:  m.ServiceType,
		Description:  m.Description,
		ServiceValue: m.ServiceValue,
		PerformedAt:  m.PerformedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func validateInput(input ServiceEntryInput) error {
	if !input.ServiceType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.ServiceValue.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "service value cannot be negative")
	}
	if input.PerformedAt.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "performed_at is required")
	}
	return nil
}

// loadEditableVehicle loads the vehicle and enforces the edit-lock.
func (s *service) loadEditableVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	if err := vehicle.EnsureServicesEditable(); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *service) Add(ctx context.Context, vehicleID uuid.UUID, input ServiceEntryInput) (*ServiceEntryDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.loadEditableVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	entry := &models.ServiceEntry{
		VehicleID:    vehicleID,
		ServiceType:  input.ServiceType,
		Description:  strings.TrimSpace(input.Description),
		ServiceValue: input.ServiceValue,
		PerformedAt:  input.PerformedAt,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service entry")
	}
	return entryFromModel(entry), nil
}

func (s *service) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) (*ServiceEntryListDTO, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	entries, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service entries")
	}

	list := &ServiceEntryListDTO{
		Entries: make([]ServiceEntryDTO, 0, len(entries)),
		Total:   decimal.Zero,
	}
	for i := range entries {
		list.Entries = append(list.Entries, *entryFromModel(&entries[i]))
		list.Total = list.Total.Add(entries[i].ServiceValue)
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, vehicleID, entryID uuid.UUID, input ServiceEntryInput) (*ServiceEntryDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.loadEditableVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	entry, err := s.findOwnedEntry(ctx, vehicleID, entryID)
	if err != nil {
		return nil, err
	}

	entry.ServiceType = input.ServiceType
	entry.Description = strings.TrimSpace(input.Description)
	entry.ServiceValue = input.ServiceValue
	entry.PerformedAt = input.PerformedAt

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service entry")
	}
	return entryFromModel(entry), nil
}

func (s *service) Delete(ctx context.Context, vehicleID, entryID uuid.UUID) error {
	if _, err := s.loadEditableVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if _, err := s.findOwnedEntry(ctx, vehicleID, entryID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service entry")
	}
	return nil
}

func (s *service) findOwnedEntry(ctx context.Context, vehicleID, entryID uuid.UUID) (*models.ServiceEntry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service entry")
	}
	if entry.VehicleID != vehicleID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service entry does not belong to this vehicle")
	}
	return entry, nil
}
