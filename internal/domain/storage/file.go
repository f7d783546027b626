package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// UploadStatus tracks the upload lifecycle of a stored file
type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "pending"
	UploadStatusUploaded UploadStatus = "uploaded"
	UploadStatusFailed   UploadStatus = "failed"
)

// StoredFile is a tenant-scoped file record. The record is created
// before the bytes arrive; MarkAsUploaded transitions it once the
// upload completes.
type StoredFile struct {
	shared.TenantAggregateRoot
	Name        string
	ContentType string
	SizeBytes   int64
	Status      UploadStatus
	UploadedAt  *time.Time
}

// FileSnapshot is the full-state primitive form of a StoredFile
type FileSnapshot struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    uuid.UUID    `json:"tenant_id"`
	Name        string       `json:"name"`
	ContentType string       `json:"content_type"`
	SizeBytes   int64        `json:"size_bytes"`
	Status      UploadStatus `json:"status"`
	UploadedAt  *time.Time   `json:"uploaded_at,omitempty"`
	Version     int          `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewStoredFile creates a new file record in pending status
func NewStoredFile(tenantID uuid.UUID, name, contentType string, sizeBytes int64) (*StoredFile, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "File name cannot be empty")
	}
	if len(name) > 500 {
		return nil, shared.NewDomainError("INVALID_NAME", "File name cannot exceed 500 characters")
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "File size cannot be negative")
	}

	file := &StoredFile{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ContentType:         contentType,
		SizeBytes:           sizeBytes,
		Status:              UploadStatusPending,
	}

	file.AddDomainEvent(NewFileCreatedEvent(file))

	return file, nil
}

// FileFromSnapshot reconstructs a file record without raising events
func FileFromSnapshot(s FileSnapshot) *StoredFile {
	file := &StoredFile{
		Name:        s.Name,
		ContentType: s.ContentType,
		SizeBytes:   s.SizeBytes,
		Status:      s.Status,
		UploadedAt:  s.UploadedAt,
	}
	file.ID = s.ID
	file.TenantID = s.TenantID
	file.Version = s.Version
	file.CreatedAt = s.CreatedAt
	file.UpdatedAt = s.UpdatedAt
	return file
}

// ToSnapshot returns the full primitive state of the file record
func (f *StoredFile) ToSnapshot() FileSnapshot {
	return FileSnapshot{
		ID:          f.ID,
		TenantID:    f.TenantID,
		Name:        f.Name,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		Status:      f.Status,
		UploadedAt:  f.UploadedAt,
		Version:     f.Version,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// MarkAsUploaded transitions a pending file to uploaded
func (f *StoredFile) MarkAsUploaded(sizeBytes int64) error {
	if f.Status != UploadStatusPending {
		return shared.NewDomainError("INVALID_STATE", "File can only be marked uploaded from pending status")
	}
	if sizeBytes < 0 {
		return shared.NewDomainError("INVALID_SIZE", "File size cannot be negative")
	}

	now := time.Now()
	f.Status = UploadStatusUploaded
	f.SizeBytes = sizeBytes
	f.UploadedAt = &now
	f.UpdatedAt = now
	f.IncrementVersion()

	f.AddDomainEvent(NewFileUpdatedEvent(f, []string{"status", "size_bytes", "uploaded_at"}))

	return nil
}

// MarkAsFailed transitions a pending file to failed
func (f *StoredFile) MarkAsFailed() error {
	if f.Status != UploadStatusPending {
		return shared.NewDomainError("INVALID_STATE", "File can only be marked failed from pending status")
	}

	f.Status = UploadStatusFailed
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFileUpdatedEvent(f, []string{"status"}))

	return nil
}

// MarkDeleted raises the deletion event
func (f *StoredFile) MarkDeleted() {
	f.AddDomainEvent(NewFileDeletedEvent(f))
}

// IsUploaded returns true once the file bytes have been stored
func (f *StoredFile) IsUploaded() bool {
	return f.Status == UploadStatusUploaded
}
