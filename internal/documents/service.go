package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotmotors/resale-backend/pkg/config"
	"github.com/lotmotors/resale-backend/pkg/db/models"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
)

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/webp":      {},
}

// Service manages vehicle document metadata and bytes.
type Service interface {
	Upload(ctx context.Context, vehicleID uuid.UUID, input UploadInput) (*DocumentDTO, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]DocumentDTO, error)
	Get(ctx context.Context, vehicleID, documentID uuid.UUID) (*DocumentDTO, error)
	Download(ctx context.Context, vehicleID, documentID uuid.UUID) (*DocumentDTO, io.ReadCloser, error)
	Delete(ctx context.Context, vehicleID, documentID uuid.UUID) error
}

type service struct {
	repo      Repository
	vehicles  vehicleFinder
	storage   Storage
	maxUpload int64
}

// NewService builds a document service backed by the provided storage.
func NewService(repo Repository, vehicles vehicleFinder, storage Storage, cfg config.DocumentsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("documents repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle finder required")
	}
	if storage == nil {
		return nil, fmt.Errorf("document storage required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		repo:      repo,
		vehicles:  vehicles,
		storage:   storage,
		maxUpload: int64(cfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// UploadInput carries the file metadata and content stream.
type UploadInput struct {
	DocumentType enums.DocumentType
	FileName     string
	ContentType  string
	SizeBytes    int64
	Content      io.Reader
	UploadedBy   string
}

// DocumentDTO exposes document metadata in API responses.
type DocumentDTO struct {
	ID               uuid.UUID          `json:"id"`
	VehicleID        uuid.UUID          `json:"vehicle_id"`
	DocumentType     enums.DocumentType `json:"document_type"`
	OriginalFileName string             `json:"original_file_name"`
	ContentType      string             `json:"content_type"`
	SizeBytes        int64              `json:"size_bytes"`
	UploadedBy       string             `json:"uploaded_by"`
	UploadedAt       time.Time          `json:"uploaded_at"`
}

func documentFromModel(m *models.Document) *DocumentDTO {
	if m == nil {
		return nil
	}
	return &DocumentDTO{
		ID:               m.ID,
		VehicleID:        m.VehicleID,
		DocumentType:     m.DocumentType,
		OriginalFileName: m.OriginalFileName,
		ContentType:      m.ContentType,
		SizeBytes:        m.SizeBytes,
		UploadedBy:       m.UploadedBy,
		UploadedAt:       m.UploadedAt,
	}
}

func (s *service) Upload(ctx context.Context, vehicleID uuid.UUID, input UploadInput) (*DocumentDTO, error) {
	if !input.DocumentType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid document type")
	}
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content_type not allowed")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	if input.SizeBytes > s.maxUpload {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("size_bytes must be at most %d bytes", s.maxUpload))
	}
	if input.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}

	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	documentID := uuid.New()
	storageKey := buildStorageKey(vehicleID, documentID, fileName)

	// Bound the stream: a client lying about size_bytes cannot exceed the cap.
	written, err := s.storage.Save(ctx, storageKey, io.LimitReader(input.Content, s.maxUpload+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document")
	}
	if written > s.maxUpload {
		_ = s.storage.Delete(ctx, storageKey)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit")
	}

	document := &models.Document{
		ID:               documentID,
		VehicleID:        vehicleID,
		DocumentType:     input.DocumentType,
		OriginalFileName: fileName,
		ContentType:      contentType,
		SizeBytes:        written,
		StorageKey:       storageKey,
		UploadedBy:       strings.TrimSpace(input.UploadedBy),
	}
	if err := s.repo.Create(ctx, document); err != nil {
		_ = s.storage.Delete(ctx, storageKey)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist document row")
	}
	return documentFromModel(document), nil
}

func (s *service) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]DocumentDTO, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	rows, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	dtos := make([]DocumentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *documentFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, vehicleID, documentID uuid.UUID) (*DocumentDTO, error) {
	document, err := s.findOwnedDocument(ctx, vehicleID, documentID)
	if err != nil {
		return nil, err
	}
	return documentFromModel(document), nil
}

func (s *service) Download(ctx context.Context, vehicleID, documentID uuid.UUID) (*DocumentDTO, io.ReadCloser, error) {
	document, err := s.findOwnedDocument(ctx, vehicleID, documentID)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.storage.Open(ctx, document.StorageKey)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open document")
	}
	return documentFromModel(document), reader, nil
}

func (s *service) Delete(ctx context.Context, vehicleID, documentID uuid.UUID) error {
	document, err := s.findOwnedDocument(ctx, vehicleID, documentID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, documentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete document row")
	}
	if err := s.storage.Delete(ctx, document.StorageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete document bytes")
	}
	return nil
}

func (s *service) findOwnedDocument(ctx context.Context, vehicleID, documentID uuid.UUID) (*models.Document, error) {
	document, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	if document.VehicleID != vehicleID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
	}
	return document, nil
}

func buildStorageKey(vehicleID, documentID uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = documentID.String()
	}
	return path.Join("vehicles", vehicleID.String(), documentID.String(), cleanName)
}

func sanitizeFileName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
