package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/errors"
)

func newYardVehicle(status enums.VehicleStatus) *Vehicle {
	return &Vehicle{
		ID:           uuid.New(),
		LicensePlate: "ABC1D23",
		Status:       status,
		CreatedAt:    time.Now().UTC().Add(-72 * time.Hour),
	}
}

func TestTransitionStatus_ForwardOnly(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusInLot)

	if err := v.TransitionStatus(enums.VehicleStatusInService, nil); err != nil {
		t.Fatalf("IN_LOT -> IN_SERVICE should be allowed: %v", err)
	}
	if v.Status != enums.VehicleStatusInService {
		t.Fatalf("expected IN_SERVICE, got %s", v.Status)
	}

	err := v.TransitionStatus(enums.VehicleStatusSold, nil)
	if err == nil {
		t.Fatal("expected skipping ahead to SOLD to fail")
	}
	coded := errors.As(err)
	if coded == nil || coded.Code() != errors.CodeStateConflict {
		t.Fatalf("expected state conflict error, got %v", err)
	}
}

func TestTransitionStatus_SelfTransition(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusInService)
	if err := v.TransitionStatus(enums.VehicleStatusInService, nil); err != nil {
		t.Fatalf("self transition should be a no-op: %v", err)
	}
}

func TestTransitionStatus_DistributedRequiresPartner(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusReadyForDistribution)

	if err := v.TransitionStatus(enums.VehicleStatusDistributed, nil); err == nil {
		t.Fatal("expected distribution without a partner to fail")
	}

	partnerID := uuid.New()
	if err := v.TransitionStatus(enums.VehicleStatusDistributed, &partnerID); err != nil {
		t.Fatalf("distribution with partner failed: %v", err)
	}
	if v.AssignedPartnerID == nil || *v.AssignedPartnerID != partnerID {
		t.Fatalf("expected partner %s to be assigned", partnerID)
	}
	if v.DistributedAt == nil {
		t.Fatal("expected distributedAt to be stamped")
	}
}

func TestTransitionStatus_DistributedAtStampedOnce(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusReadyForDistribution)
	partnerID := uuid.New()

	if err := v.TransitionStatus(enums.VehicleStatusDistributed, &partnerID); err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	first := *v.DistributedAt

	time.Sleep(5 * time.Millisecond)
	if err := v.TransitionStatus(enums.VehicleStatusDistributed, &partnerID); err != nil {
		t.Fatalf("repeat distribution failed: %v", err)
	}
	if !v.DistributedAt.Equal(first) {
		t.Fatalf("expected distributedAt to stay %v, got %v", first, *v.DistributedAt)
	}
}

func TestTransitionStatus_SoldKeepsPartner(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusDistributed)
	partnerID := uuid.New()
	v.AssignedPartnerID = &partnerID
	v.SellingPrice = decimal.RequireFromString("45000")

	if err := v.TransitionStatus(enums.VehicleStatusSold, nil); err != nil {
		t.Fatalf("sale failed: %v", err)
	}
	if v.AssignedPartnerID == nil || *v.AssignedPartnerID != partnerID {
		t.Fatal("expected partner to survive the sale")
	}
}

func TestTransitionStatus_SoldWithoutPartnerRejected(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusDistributed)
	v.SellingPrice = decimal.RequireFromString("45000")

	if err := v.TransitionStatus(enums.VehicleStatusSold, nil); err == nil {
		t.Fatal("expected sale without partner to fail")
	}
}

func TestTransitionStatus_SoldWithoutPriceRejected(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusDistributed)
	partnerID := uuid.New()
	v.AssignedPartnerID = &partnerID

	if err := v.TransitionStatus(enums.VehicleStatusSold, nil); err == nil {
		t.Fatal("expected sale without selling price to fail")
	}
	if v.Status != enums.VehicleStatusDistributed {
		t.Fatalf("expected status to stay DISTRIBUTED, got %s", v.Status)
	}
}

func TestAssignPartner(t *testing.T) {
	partnerID := uuid.New()

	v := newYardVehicle(enums.VehicleStatusInService)
	if err := v.AssignPartner(partnerID); err == nil {
		t.Fatal("expected assignment before READY_FOR_DISTRIBUTION to fail")
	}

	v = newYardVehicle(enums.VehicleStatusReadyForDistribution)
	if err := v.AssignPartner(partnerID); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	if v.Status != enums.VehicleStatusDistributed {
		t.Fatalf("expected DISTRIBUTED, got %s", v.Status)
	}
	if v.DistributedAt == nil {
		t.Fatal("expected distributedAt to be stamped")
	}
}

func TestEnsureServicesEditable(t *testing.T) {
	for _, status := range []enums.VehicleStatus{
		enums.VehicleStatusInLot,
		enums.VehicleStatusInService,
		enums.VehicleStatusReadyForDistribution,
	} {
		v := newYardVehicle(status)
		if err := v.EnsureServicesEditable(); err != nil {
			t.Fatalf("services should be editable in %s: %v", status, err)
		}
	}

	for _, status := range []enums.VehicleStatus{
		enums.VehicleStatusDistributed,
		enums.VehicleStatusSold,
	} {
		v := newYardVehicle(status)
		if err := v.EnsureServicesEditable(); err == nil {
			t.Fatalf("services should be locked in %s", status)
		}
	}
}

func TestEnsureDistributionInvariant(t *testing.T) {
	partnerID := uuid.New()

	v := newYardVehicle(enums.VehicleStatusDistributed)
	if err := v.EnsureDistributionInvariant(); err == nil {
		t.Fatal("distributed vehicle without partner should violate the invariant")
	}

	v.AssignedPartnerID = &partnerID
	if err := v.EnsureDistributionInvariant(); err != nil {
		t.Fatalf("distributed vehicle with partner should pass: %v", err)
	}

	v = newYardVehicle(enums.VehicleStatusInLot)
	v.AssignedPartnerID = &partnerID
	if err := v.EnsureDistributionInvariant(); err == nil {
		t.Fatal("partner on an undistributed vehicle should violate the invariant")
	}
}

func TestTotalYardDays(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusInService)
	if got := v.TotalYardDays(); got != 3 {
		t.Fatalf("expected 3 yard days while in service, got %d", got)
	}

	distributed := v.CreatedAt.Add(49 * time.Hour)
	v.Status = enums.VehicleStatusDistributed
	v.DistributedAt = &distributed
	if got := v.TotalYardDays(); got != 2 {
		t.Fatalf("expected 2 yard days after distribution, got %d", got)
	}

	v.DistributedAt = nil
	if got := v.TotalYardDays(); got != 0 {
		t.Fatalf("expected 0 yard days without distribution stamp, got %d", got)
	}

	v = newYardVehicle(enums.VehicleStatusInLot)
	v.CreatedAt = time.Now().UTC().Add(time.Hour)
	if got := v.TotalYardDays(); got != 0 {
		t.Fatalf("expected clock skew to floor at 0, got %d", got)
	}
}

func TestServicesTotal(t *testing.T) {
	v := newYardVehicle(enums.VehicleStatusInService)
	if !v.ServicesTotal().Equal(decimal.Zero) {
		t.Fatal("expected zero total with no entries")
	}

	v.ServiceEntries = []ServiceEntry{
		{ServiceValue: decimal.RequireFromString("150.50")},
		{ServiceValue: decimal.RequireFromString("49.50")},
	}
	if got := v.ServicesTotal(); !got.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("expected 200, got %s", got)
	}
}
