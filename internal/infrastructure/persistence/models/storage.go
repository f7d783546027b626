package models

import (
	"time"

	"github.com/promptdeck/backend/internal/domain/storage"
)

// FileModel is the persistence model for the StoredFile aggregate.
type FileModel struct {
	TenantAggregateModel
	Name        string               `gorm:"type:varchar(500);not null"`
	ContentType string               `gorm:"type:varchar(100)"`
	SizeBytes   int64                `gorm:"not null;default:0"`
	Status      storage.UploadStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedAt  *time.Time
}

// TableName returns the table name for GORM
func (FileModel) TableName() string {
	return "stored_files"
}

// ToDomain converts the persistence model to a domain StoredFile.
func (m *FileModel) ToDomain() *storage.StoredFile {
	f := &storage.StoredFile{
		Name:        m.Name,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		Status:      m.Status,
		UploadedAt:  m.UploadedAt,
	}
	m.PopulateTenantAggregateRoot(&f.TenantAggregateRoot)
	return f
}

// FromDomain populates the persistence model from a domain StoredFile.
func (m *FileModel) FromDomain(f *storage.StoredFile) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Name = f.Name
	m.ContentType = f.ContentType
	m.SizeBytes = f.SizeBytes
	m.Status = f.Status
	m.UploadedAt = f.UploadedAt
}

// FileModelFromDomain creates a new persistence model from a domain StoredFile.
func FileModelFromDomain(f *storage.StoredFile) *FileModel {
	m := &FileModel{}
	m.FromDomain(f)
	return m
}
