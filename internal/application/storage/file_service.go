package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/domain/storage"
)

// RegisterFileInput contains input for registering a file record
type RegisterFileInput struct {
	Name        string `json:"name" binding:"required,max=500"`
	ContentType string `json:"content_type" binding:"max=200"`
	SizeBytes   int64  `json:"size_bytes" binding:"min=0"`
}

// FileDTO represents file record data in API responses
type FileDTO struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Name        string     `json:"name"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	Status      string     `json:"status"`
	UploadedAt  *time.Time `json:"uploaded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toFileDTO(f *storage.StoredFile) *FileDTO {
	return &FileDTO{
		ID:          f.ID,
		TenantID:    f.TenantID,
		Name:        f.Name,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		Status:      string(f.Status),
		UploadedAt:  f.UploadedAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FileService manages tenant-scoped file records.
// Records track upload lifecycle; the bytes themselves live elsewhere.
type FileService struct {
	fileRepo storage.FileRepository
	fileView shared.ViewRepository[storage.FileView]
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo storage.FileRepository,
	fileView shared.ViewRepository[storage.FileView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		fileView: fileView,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates a pending file record ahead of the upload
func (s *FileService) Register(ctx context.Context, tenantID uuid.UUID, input RegisterFileInput) (*FileDTO, error) {
	s.logger.Info("Registering file",
		zap.String("tenant_id", tenantID.String()),
		zap.String("name", input.Name))

	file, err := storage.NewStoredFile(tenantID, input.Name, input.ContentType, input.SizeBytes)
	if err != nil {
		return nil, err
	}

	if err := s.fileRepo.Save(ctx, tenantID, file); err != nil {
		s.logger.Error("Failed to register file", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to register file")
	}
	if err := s.publish(ctx, file); err != nil {
		return nil, err
	}

	return toFileDTO(file), nil
}

// MarkAsUploaded transitions a pending file record to uploaded
func (s *FileService) MarkAsUploaded(ctx context.Context, tenantID, id uuid.UUID, sizeBytes int64) (*FileDTO, error) {
	file, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := file.MarkAsUploaded(sizeBytes); err != nil {
		return nil, err
	}

	if err := s.fileRepo.Save(ctx, tenantID, file); err != nil {
		s.logger.Error("Failed to mark file uploaded", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to mark file uploaded")
	}
	if err := s.publish(ctx, file); err != nil {
		return nil, err
	}

	return toFileDTO(file), nil
}

// MarkAsFailed transitions a pending file record to failed
func (s *FileService) MarkAsFailed(ctx context.Context, tenantID, id uuid.UUID) (*FileDTO, error) {
	file, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := file.MarkAsFailed(); err != nil {
		return nil, err
	}

	if err := s.fileRepo.Save(ctx, tenantID, file); err != nil {
		s.logger.Error("Failed to mark file failed", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to mark file failed")
	}
	if err := s.publish(ctx, file); err != nil {
		return nil, err
	}

	return toFileDTO(file), nil
}

// Delete removes a file record from the write store
func (s *FileService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	file, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}

	file.MarkDeleted()

	if err := s.fileRepo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("Failed to delete file", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete file")
	}
	return s.publish(ctx, file)
}

// GetByID retrieves a file record from the write store
func (s *FileService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*FileDTO, error) {
	file, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toFileDTO(file), nil
}

// List retrieves a page of file views scoped to the tenant
func (s *FileService) List(ctx context.Context, tenantID uuid.UUID, criteria shared.Criteria) (shared.Paginated[storage.FileView], error) {
	criteria = criteria.WithFilter("tenant_id", tenantID)
	result, err := s.fileView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list file views", zap.Error(err))
		return shared.Paginated[storage.FileView]{}, shared.DomainErrorOrInternal(err, "Failed to list files")
	}
	return result, nil
}

func (s *FileService) load(ctx context.Context, tenantID, id uuid.UUID) (*storage.StoredFile, error) {
	file, err := s.fileRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FILE_NOT_FOUND", "File not found")
		}
		s.logger.Error("Failed to find file", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find file")
	}
	return file, nil
}

func (s *FileService) publish(ctx context.Context, file *storage.StoredFile) error {
	if err := s.eventBus.Publish(ctx, file.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish file events",
			zap.String("file_id", file.ID.String()),
			zap.Error(err))
		return err
	}
	file.ClearDomainEvents()
	return nil
}
