package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbpkg "github.com/lotmotors/resale-backend/pkg/db"
	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/outbox"
	"github.com/lotmotors/resale-backend/pkg/outbox/payloads"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes partner operations.
type Service interface {
	Create(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PartnerDTO, error)
	List(ctx context.Context, params pagination.Params) ([]PartnerDTO, pagination.Meta, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePartnerInput) (*PartnerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a partner service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("partners repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc}, nil
}

// CreatePartnerInput captures the data required to register a partner.
type CreatePartnerInput struct {
	Name           string
	City           string
	CommissionRate decimal.Decimal
	ActorUserID    uuid.UUID
	ActorRole      string
}

// UpdatePartnerInput captures the allowed partner fields for mutation.
type UpdatePartnerInput struct {
	Name           *string
	City           *string
	CommissionRate *decimal.Decimal
}

func (s *service) Create(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
	}
	if input.CommissionRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission rate cannot be negative")
	}

	var created *models.Partner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		partner, err := repo.Create(ctx, CreatePartnerDTO{
			Name:           name,
			City:           strings.TrimSpace(input.City),
			CommissionRate: input.CommissionRate,
		})
		if err != nil {
			if dbpkg.IsUniqueViolation(err, "idx_partners_name") {
				return pkgerrors.New(pkgerrors.CodeConflict, "partner name already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
		}
		created = partner

		event := outbox.DomainEvent{
			EventType:     enums.EventPartnerCreated,
			AggregateType: enums.AggregatePartner,
			AggregateID:   partner.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.PartnerCreatedEvent{
				PartnerID: partner.ID,
				Name:      partner.Name,
				City:      partner.City,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PartnerDTO, error) {
	partner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	return FromModel(partner), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]PartnerDTO, pagination.Meta, error) {
	params = pagination.Normalize(params)
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}

	dtos := make([]PartnerDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, pagination.NewMeta(params, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePartnerInput) (*PartnerDTO, error) {
	partner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name cannot be empty")
		}
		partner.Name = name
	}
	if input.City != nil {
		partner.City = strings.TrimSpace(*input.City)
	}
	if input.CommissionRate != nil {
		if input.CommissionRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission rate cannot be negative")
		}
		partner.CommissionRate = *input.CommissionRate
	}

	if err := s.repo.Update(ctx, partner); err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_partners_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "partner name already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner")
	}
	return FromModel(partner), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	assigned, err := s.repo.CountAssignedVehicles(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count assigned vehicles")
	}
	if assigned > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "partner still has assigned vehicles")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete partner")
	}
	return nil
}

func buildActor(userID uuid.UUID, role string) *outbox.ActorRef {
	if userID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID, Role: role}
}
