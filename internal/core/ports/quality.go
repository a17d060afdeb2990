package ports

import (
	"context"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// QualityRepository defines persistence operations for quality metrics.
type QualityRepository interface {
	Create(ctx context.Context, q *domain.Quality) (*domain.Quality, error)
	FindByID(ctx context.Context, id int64) (*domain.Quality, error)
	FindAll(ctx context.Context) ([]*domain.Quality, error)
	FindByProject(ctx context.Context, projectID int64) ([]*domain.Quality, error)
	Update(ctx context.Context, q *domain.Quality) error
	Delete(ctx context.Context, id int64) error
}

// QualityInput carries the fields for creating or updating a quality metric.
// A zero QualityScore is derived from the counts by the service.
type QualityInput struct {
	ProjectID     int64
	BugCount      int
	ResolvedCount int
	QualityScore  float64
}

// QualityService defines use-case operations for quality metrics.
type QualityService interface {
	AddQuality(ctx context.Context, input QualityInput) (*domain.Quality, error)
	GetQuality(ctx context.Context, id int64) (*domain.Quality, error)
	GetAllQualities(ctx context.Context) ([]*domain.Quality, error)
	GetQualitiesByProject(ctx context.Context, projectID int64) ([]*domain.Quality, error)
	UpdateQuality(ctx context.Context, id int64, input QualityInput) (*domain.Quality, error)
	DeleteQuality(ctx context.Context, id int64) error
}
