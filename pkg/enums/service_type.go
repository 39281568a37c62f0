package enums

import "fmt"

// ServiceType categorizes a maintenance or repair cost line.
type ServiceType string

const (
	ServiceTypeMechanical ServiceType = "MECHANICAL"
	ServiceTypeBodywork   ServiceType = "BODYWORK"
	ServiceTypePainting   ServiceType = "PAINTING"
	ServiceTypeElectrical ServiceType = "ELECTRICAL"
	ServiceTypeDetailing  ServiceType = "DETAILING"
	ServiceTypeDocuments  ServiceType = "DOCUMENTS"
	ServiceTypeOther      ServiceType = "OTHER"
)

var validServiceTypes = []ServiceType{
	ServiceTypeMechanical,
	ServiceTypeBodywork,
	ServiceTypePainting,
	ServiceTypeElectrical,
	ServiceTypeDetailing,
	ServiceTypeDocuments,
	ServiceTypeOther,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}
