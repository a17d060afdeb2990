package ports

import (
	"context"
	"io"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// AttachmentRepository defines persistence for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.BugAttachment) (*domain.BugAttachment, error)
	FindByID(ctx context.Context, id int64) (*domain.BugAttachment, error)
	FindAll(ctx context.Context) ([]*domain.BugAttachment, error)
	FindByBug(ctx context.Context, bugID int64) ([]*domain.BugAttachment, error)
	Delete(ctx context.Context, id int64) error
}

// UploadAttachmentInput carries an incoming file and its metadata.
type UploadAttachmentInput struct {
	BugID      int64
	FileName   string
	FileType   string
	FileSize   int64
	UploadedBy string
	Content    io.Reader
}

// AttachmentService defines use-case operations for bug attachments.
type AttachmentService interface {
	Upload(ctx context.Context, input UploadAttachmentInput) (*domain.BugAttachment, error)
	GetAttachment(ctx context.Context, id int64) (*domain.BugAttachment, error)
	GetAllAttachments(ctx context.Context) ([]*domain.BugAttachment, error)
	GetAttachmentsByBug(ctx context.Context, bugID int64) ([]*domain.BugAttachment, error)
	// Open returns the stored file content for download alongside its metadata.
	Open(ctx context.Context, id int64) (*domain.BugAttachment, io.ReadCloser, error)
	DeleteAttachment(ctx context.Context, id int64) error
}
