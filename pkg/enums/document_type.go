package enums

import "fmt"

// DocumentType labels files attached to a vehicle.
type DocumentType string

const (
	DocumentTypePurchaseInvoice DocumentType = "PURCHASE_INVOICE"
	DocumentTypePaymentReceipt  DocumentType = "PAYMENT_RECEIPT"
	DocumentTypeRegistration    DocumentType = "REGISTRATION"
	DocumentTypeOther           DocumentType = "OTHER"
)

var validDocumentTypes = []DocumentType{
	DocumentTypePurchaseInvoice,
	DocumentTypePaymentReceipt,
	DocumentTypeRegistration,
	DocumentTypeOther,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
