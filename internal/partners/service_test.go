package partners

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/outbox"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

type stubPartnersRepo struct {
	partner       *models.Partner
	list          []models.Partner
	total         int64
	assignedCount int64
	err           error
	createErr     error
	updateErr     error
	deleteErr     error
	deleted       uuid.UUID
}

func (s *stubPartnersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubPartnersRepo) Create(ctx context.Context, dto CreatePartnerDTO) (*models.Partner, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	partner := dto.ToModel()
	partner.ID = uuid.New()
	s.partner = partner
	return partner, nil
}

func (s *stubPartnersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.partner, nil
}

func (s *stubPartnersRepo) List(ctx context.Context, params pagination.Params) ([]models.Partner, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.list, s.total, nil
}

func (s *stubPartnersRepo) Update(ctx context.Context, partner *models.Partner) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.partner = partner
	return nil
}

func (s *stubPartnersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = id
	return nil
}

func (s *stubPartnersRepo) CountAssignedVehicles(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	return s.assignedCount, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubOutboxPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func basePartner() *models.Partner {
	return &models.Partner{
		ID:             uuid.New(),
		Name:           "Autos do Sul",
		City:           "Porto Alegre",
		CommissionRate: decimal.RequireFromString("0.05"),
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubTxRunner{}, &stubOutboxPublisher{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubPartnersRepo{}, nil, &stubOutboxPublisher{}); err == nil {
		t.Fatal("expected error creating service without tx runner")
	}
	if _, err := NewService(&stubPartnersRepo{}, stubTxRunner{}, nil); err == nil {
		t.Fatal("expected error creating service without outbox")
	}
}

func TestServiceGetByIDSuccess(t *testing.T) {
	partner := basePartner()
	repo := &stubPartnersRepo{partner: partner}
	svc, err := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetByID(context.Background(), partner.ID)
	if err != nil {
		t.Fatalf("get partner: %v", err)
	}
	if dto.ID != partner.ID {
		t.Fatalf("expected id %s got %s", partner.ID, dto.ID)
	}
	if dto.Name != partner.Name {
		t.Fatalf("expected name %q got %q", partner.Name, dto.Name)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	repo := &stubPartnersRepo{err: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceListNormalizesPagination(t *testing.T) {
	repo := &stubPartnersRepo{
		list:  []models.Partner{*basePartner(), *basePartner()},
		total: 2,
	}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	dtos, meta, err := svc.List(context.Background(), pagination.Params{Page: 0, Size: -5})
	if err != nil {
		t.Fatalf("list partners: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 partners got %d", len(dtos))
	}
	if meta.Page != 1 || meta.Size != pagination.DefaultSize {
		t.Fatalf("expected normalized meta, got %+v", meta)
	}
	if meta.TotalItems != 2 {
		t.Fatalf("expected total 2 got %d", meta.TotalItems)
	}
}

func TestServiceUpdateValidatesName(t *testing.T) {
	repo := &stubPartnersRepo{partner: basePartner()}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	empty := "   "
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdatePartnerInput{Name: &empty})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceUpdateNameConflict(t *testing.T) {
	repo := &stubPartnersRepo{
		partner:   basePartner(),
		updateErr: errors.New(`duplicate key value violates unique constraint "idx_partners_name"`),
	}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	name := "Autos do Norte"
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdatePartnerInput{Name: &name})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", gotErr)
	}
}

func TestServiceUpdateAppliesFields(t *testing.T) {
	repo := &stubPartnersRepo{partner: basePartner()}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	city := "Curitiba"
	rate := decimal.RequireFromString("0.07")
	dto, err := svc.Update(context.Background(), uuid.New(), UpdatePartnerInput{City: &city, CommissionRate: &rate})
	if err != nil {
		t.Fatalf("update partner: %v", err)
	}
	if dto.City != city {
		t.Fatalf("expected city %q got %q", city, dto.City)
	}
	if !dto.CommissionRate.Equal(rate) {
		t.Fatalf("expected rate %s got %s", rate, dto.CommissionRate)
	}
}

func TestServiceDeleteBlockedByAssignedVehicles(t *testing.T) {
	repo := &stubPartnersRepo{assignedCount: 3}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", gotErr)
	}
}

func TestServiceDeleteSuccess(t *testing.T) {
	repo := &stubPartnersRepo{}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	id := uuid.New()
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete partner: %v", err)
	}
	if repo.deleted != id {
		t.Fatalf("expected delete call for %s got %s", id, repo.deleted)
	}
}

func TestServiceCreateValidatesInput(t *testing.T) {
	svc, _ := NewService(&stubPartnersRepo{}, stubTxRunner{}, &stubOutboxPublisher{})

	_, gotErr := svc.Create(context.Background(), CreatePartnerInput{Name: "  "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}

	_, gotErr = svc.Create(context.Background(), CreatePartnerInput{
		Name:           "Autos do Sul",
		CommissionRate: decimal.RequireFromString("-0.01"),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative rate, got %v", gotErr)
	}
}

func TestServiceCreateEmitsPartnerCreatedEvent(t *testing.T) {
	repo := &stubPartnersRepo{}
	publisher := &stubOutboxPublisher{}
	svc, _ := NewService(repo, stubTxRunner{}, publisher)

	actorID := uuid.New()
	dto, err := svc.Create(context.Background(), CreatePartnerInput{
		Name:           "  Autos do Sul  ",
		City:           "Porto Alegre",
		CommissionRate: decimal.RequireFromString("0.05"),
		ActorUserID:    actorID,
		ActorRole:      enums.RoleAdmin.String(),
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}
	if dto.Name != "Autos do Sul" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 outbox event got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.EventType != enums.EventPartnerCreated {
		t.Fatalf("expected partner_created event got %s", event.EventType)
	}
	if event.AggregateID != dto.ID {
		t.Fatalf("expected aggregate %s got %s", dto.ID, event.AggregateID)
	}
	if event.Actor == nil || event.Actor.UserID != actorID {
		t.Fatalf("expected actor %s got %+v", actorID, event.Actor)
	}
}

func TestServiceCreateDuplicateNameConflict(t *testing.T) {
	repo := &stubPartnersRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_partners_name"`),
	}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutboxPublisher{})

	_, gotErr := svc.Create(context.Background(), CreatePartnerInput{
		Name:           "Autos do Sul",
		CommissionRate: decimal.RequireFromString("0.05"),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", gotErr)
	}
}

func TestBuildActorOmitsAnonymous(t *testing.T) {
	if actor := buildActor(uuid.Nil, enums.RoleAdmin.String()); actor != nil {
		t.Fatalf("expected nil actor for anonymous user, got %+v", actor)
	}
	id := uuid.New()
	actor := buildActor(id, enums.RoleOperator.String())
	if actor == nil || actor.UserID != id {
		t.Fatalf("expected actor for %s got %+v", id, actor)
	}
}
