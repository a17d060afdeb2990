package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

// AttachmentService stores uploaded files on local disk under uploadDir and
// keeps their metadata in the attachment repository. Stored files get UUID
// names so colliding client file names never overwrite each other.
type AttachmentService struct {
	attachments ports.AttachmentRepository
	bugs        ports.BugRepository
	uploadDir   string
	logger      zerolog.Logger
}

func NewAttachmentService(attachments ports.AttachmentRepository, bugs ports.BugRepository, uploadDir string, logger zerolog.Logger) *AttachmentService {
	return &AttachmentService{attachments: attachments, bugs: bugs, uploadDir: uploadDir, logger: logger}
}

func (s *AttachmentService) Upload(ctx context.Context, input ports.UploadAttachmentInput) (*domain.BugAttachment, error) {
	if input.FileName == "" || input.Content == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}
	if _, err := s.bugs.FindByID(ctx, input.BugID); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	stored := uuid.NewString() + filepath.Ext(input.FileName)
	path := filepath.Join(s.uploadDir, stored)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}
	written, err := io.Copy(f, input.Content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	attachment := &domain.BugAttachment{
		BugID:        input.BugID,
		FileName:     input.FileName,
		FilePath:     path,
		UploadedBy:   input.UploadedBy,
		UploadedDate: time.Now().UTC(),
		FileType:     input.FileType,
		FileSize:     written,
	}

	created, err := s.attachments.Create(ctx, attachment)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	s.logger.Info().Int64("attachment_id", created.ID).Int64("bug_id", input.BugID).
		Str("file", input.FileName).Int64("bytes", written).Msg("attachment stored")
	return created, nil
}

func (s *AttachmentService) GetAttachment(ctx context.Context, id int64) (*domain.BugAttachment, error) {
	return s.attachments.FindByID(ctx, id)
}

func (s *AttachmentService) GetAllAttachments(ctx context.Context) ([]*domain.BugAttachment, error) {
	return s.attachments.FindAll(ctx)
}

func (s *AttachmentService) GetAttachmentsByBug(ctx context.Context, bugID int64) ([]*domain.BugAttachment, error) {
	return s.attachments.FindByBug(ctx, bugID)
}

// Open returns the stored file for streaming to the client.
func (s *AttachmentService) Open(ctx context.Context, id int64) (*domain.BugAttachment, io.ReadCloser, error) {
	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(attachment.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, domain.ErrAttachmentNotFound
		}
		return nil, nil, err
	}
	return attachment, f, nil
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, id int64) error {
	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attachments.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", attachment.FilePath).Msg("orphaned attachment file left on disk")
	}
	return nil
}
