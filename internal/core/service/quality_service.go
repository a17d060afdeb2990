package service

import (
	"context"
	"fmt"
	"time"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type QualityService struct {
	qualities ports.QualityRepository
	projects  ports.ProjectRepository
}

func NewQualityService(qualities ports.QualityRepository, projects ports.ProjectRepository) *QualityService {
	return &QualityService{qualities: qualities, projects: projects}
}

// AddQuality records a quality metric for an existing project. When the
// caller supplies no score, it is derived as resolved/total * 100.
func (s *QualityService) AddQuality(ctx context.Context, input ports.QualityInput) (*domain.Quality, error) {
	if input.BugCount < 0 || input.ResolvedCount < 0 || input.ResolvedCount > input.BugCount {
		return nil, fmt.Errorf("%w: resolved count exceeds bug count", domain.ErrInvalidInput)
	}
	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	return s.qualities.Create(ctx, &domain.Quality{
		ProjectID:      input.ProjectID,
		BugCount:       input.BugCount,
		ResolvedCount:  input.ResolvedCount,
		QualityScore:   scoreOf(input),
		CalculatedDate: time.Now().UTC(),
	})
}

func (s *QualityService) GetQuality(ctx context.Context, id int64) (*domain.Quality, error) {
	return s.qualities.FindByID(ctx, id)
}

func (s *QualityService) GetAllQualities(ctx context.Context) ([]*domain.Quality, error) {
	return s.qualities.FindAll(ctx)
}

func (s *QualityService) GetQualitiesByProject(ctx context.Context, projectID int64) ([]*domain.Quality, error) {
	return s.qualities.FindByProject(ctx, projectID)
}

func (s *QualityService) UpdateQuality(ctx context.Context, id int64, input ports.QualityInput) (*domain.Quality, error) {
	q, err := s.qualities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.BugCount < 0 || input.ResolvedCount < 0 || input.ResolvedCount > input.BugCount {
		return nil, fmt.Errorf("%w: resolved count exceeds bug count", domain.ErrInvalidInput)
	}

	q.BugCount = input.BugCount
	q.ResolvedCount = input.ResolvedCount
	q.QualityScore = scoreOf(input)
	q.CalculatedDate = time.Now().UTC()

	if err := s.qualities.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QualityService) DeleteQuality(ctx context.Context, id int64) error {
	if _, err := s.qualities.FindByID(ctx, id); err != nil {
		return err
	}
	return s.qualities.Delete(ctx, id)
}

func scoreOf(input ports.QualityInput) float64 {
	if input.QualityScore > 0 {
		return input.QualityScore
	}
	if input.BugCount == 0 {
		return 100
	}
	return float64(input.ResolvedCount) / float64(input.BugCount) * 100
}
