package storage

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeFile = "StoredFile"

// Event type constants
const (
	EventTypeFileCreated = "StoredFileCreated"
	EventTypeFileUpdated = "StoredFileUpdated"
	EventTypeFileDeleted = "StoredFileDeleted"
)

// FileCreatedEvent is published when a new file record is created
type FileCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot FileSnapshot `json:"snapshot"`
}

// NewFileCreatedEvent creates a new FileCreatedEvent
func NewFileCreatedEvent(file *StoredFile) *FileCreatedEvent {
	return &FileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFileCreated, AggregateTypeFile, file.ID, file.TenantID),
		Snapshot:        file.ToSnapshot(),
	}
}

// FileUpdatedEvent is published when a file record is updated
type FileUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      FileSnapshot `json:"snapshot"`
	ChangedFields []string     `json:"changed_fields"`
}

// NewFileUpdatedEvent creates a new FileUpdatedEvent
func NewFileUpdatedEvent(file *StoredFile, changedFields []string) *FileUpdatedEvent {
	return &FileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFileUpdated, AggregateTypeFile, file.ID, file.TenantID),
		Snapshot:        file.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// FileDeletedEvent is published when a file record is deleted
type FileDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot FileSnapshot `json:"snapshot"`
}

// NewFileDeletedEvent creates a new FileDeletedEvent
func NewFileDeletedEvent(file *StoredFile) *FileDeletedEvent {
	return &FileDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFileDeleted, AggregateTypeFile, file.ID, file.TenantID),
		Snapshot:        file.ToSnapshot(),
	}
}
