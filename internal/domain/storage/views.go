package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// FileView is the denormalized read model of a stored file
type FileView struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string       `gorm:"type:varchar(500);not null;index" json:"name"`
	ContentType string       `gorm:"type:varchar(200)" json:"content_type"`
	SizeBytes   int64        `gorm:"not null" json:"size_bytes"`
	Status      UploadStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UploadedAt  *time.Time   `json:"uploaded_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (FileView) TableName() string {
	return "file_views"
}

// NewFileView builds the view from a file snapshot
func NewFileView(s FileSnapshot) *FileView {
	return &FileView{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Name:        s.Name,
		ContentType: s.ContentType,
		SizeBytes:   s.SizeBytes,
		Status:      s.Status,
		UploadedAt:  s.UploadedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FileViewPatch carries partial updates for a FileView
type FileViewPatch struct {
	Name       *string
	SizeBytes  *int64
	Status     *UploadStatus
	UploadedAt **time.Time
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *FileView) Update(p FileViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.SizeBytes != nil {
		v.SizeBytes = *p.SizeBytes
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.UploadedAt != nil {
		v.UploadedAt = *p.UploadedAt
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *FileView) ApplySnapshot(s FileSnapshot) {
	v.Name = s.Name
	v.ContentType = s.ContentType
	v.SizeBytes = s.SizeBytes
	v.Status = s.Status
	v.UploadedAt = s.UploadedAt
	v.UpdatedAt = time.Now()
}

// FileRepository is the write-side store for file records
type FileRepository interface {
	shared.TenantRepository[StoredFile]
}
