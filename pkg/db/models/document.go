package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lotmotors/resale-backend/pkg/enums"
)

// Document is the metadata record for a file attached to a vehicle. The bytes
// live in document storage under StorageKey.
type Document struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID        uuid.UUID          `gorm:"column:vehicle_id;type:uuid;not null;index"`
	DocumentType     enums.DocumentType `gorm:"column:document_type;not null"`
	OriginalFileName string             `gorm:"column:original_file_name;not null"`
	ContentType      string             `gorm:"column:content_type;not null"`
	SizeBytes        int64              `gorm:"column:size_bytes;not null"`
	StorageKey       string             `gorm:"column:storage_key;not null;uniqueIndex:idx_documents_storage_key"`
	UploadedBy       string             `gorm:"column:uploaded_by;not null"`
	UploadedAt       time.Time          `gorm:"column:uploaded_at;autoCreateTime"`
}
