package enums

import "fmt"

// SupplierSource identifies where a vehicle was purchased from.
type SupplierSource string

const (
	SupplierSourceAuction       SupplierSource = "AUCTION"
	SupplierSourceDealership    SupplierSource = "DEALERSHIP"
	SupplierSourcePrivateSeller SupplierSource = "PRIVATE_SELLER"
)

var validSupplierSources = []SupplierSource{
	SupplierSourceAuction,
	SupplierSourceDealership,
	SupplierSourcePrivateSeller,
}

// String implements fmt.Stringer.
func (s SupplierSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SupplierSource.
func (s SupplierSource) IsValid() bool {
	for _, candidate := range validSupplierSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSupplierSource converts raw input into a SupplierSource.
func ParseSupplierSource(value string) (SupplierSource, error) {
	for _, candidate := range validSupplierSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supplier source %q", value)
}
