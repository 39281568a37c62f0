package enums

import "fmt"

// VehicleStatus tracks a vehicle from intake through final sale.
type VehicleStatus string

const (
	VehicleStatusInLot                VehicleStatus = "IN_LOT"
	VehicleStatusInService            VehicleStatus = "IN_SERVICE"
	VehicleStatusReadyForDistribution VehicleStatus = "READY_FOR_DISTRIBUTION"
	VehicleStatusDistributed          VehicleStatus = "DISTRIBUTED"
	VehicleStatusSold                 VehicleStatus = "SOLD"
)

var validVehicleStatuses = []VehicleStatus{
	VehicleStatusInLot,
	VehicleStatusInService,
	VehicleStatusReadyForDistribution,
	VehicleStatusDistributed,
	VehicleStatusSold,
}

// vehicleStatusSuccessor is the forward-only transition table. SOLD has no
// successor; self-transitions are handled separately in CanTransitionTo.
var vehicleStatusSuccessor = map[VehicleStatus]VehicleStatus{
	VehicleStatusInLot:                VehicleStatusInService,
	VehicleStatusInService:            VehicleStatusReadyForDistribution,
	VehicleStatusReadyForDistribution: VehicleStatusDistributed,
	VehicleStatusDistributed:          VehicleStatusSold,
}

// VehicleStatuses returns every valid status in pipeline order.
func VehicleStatuses() []VehicleStatus {
	statuses := make([]VehicleStatus, len(validVehicleStatuses))
	copy(statuses, validVehicleStatuses)
	return statuses
}

// String implements fmt.Stringer.
func (s VehicleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VehicleStatus.
func (s VehicleStatus) IsValid() bool {
	for _, candidate := range validVehicleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether target is reachable from s. Staying on the
// current status is always allowed; otherwise only the single successor is.
func (s VehicleStatus) CanTransitionTo(target VehicleStatus) bool {
	if !target.IsValid() {
		return false
	}
	if target == s {
		return true
	}
	return vehicleStatusSuccessor[s] == target
}

// AlreadyDistributed reports whether the vehicle has left the yard.
func (s VehicleStatus) AlreadyDistributed() bool {
	return s == VehicleStatusDistributed || s == VehicleStatusSold
}

// ParseVehicleStatus converts raw input into a VehicleStatus.
func ParseVehicleStatus(value string) (VehicleStatus, error) {
	for _, candidate := range validVehicleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle status %q", value)
}
