package service

import (
	"context"
	"errors"
	"testing"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type stubQualityRepo struct {
	metrics map[int64]*domain.Quality
	nextID  int64
}

func newStubQualityRepo() *stubQualityRepo {
	return &stubQualityRepo{metrics: make(map[int64]*domain.Quality)}
}

func (r *stubQualityRepo) Create(_ context.Context, q *domain.Quality) (*domain.Quality, error) {
	r.nextID++
	clone := *q
	clone.MetricID = r.nextID
	r.metrics[clone.MetricID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQualityRepo) FindByID(_ context.Context, id int64) (*domain.Quality, error) {
	if q, ok := r.metrics[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, domain.ErrQualityNotFound
}

func (r *stubQualityRepo) FindAll(_ context.Context) ([]*domain.Quality, error) {
	out := make([]*domain.Quality, 0, len(r.metrics))
	for _, q := range r.metrics {
		clone := *q
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubQualityRepo) FindByProject(_ context.Context, projectID int64) ([]*domain.Quality, error) {
	var out []*domain.Quality
	for _, q := range r.metrics {
		if q.ProjectID == projectID {
			clone := *q
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubQualityRepo) Update(_ context.Context, q *domain.Quality) error {
	if _, ok := r.metrics[q.MetricID]; !ok {
		return domain.ErrQualityNotFound
	}
	clone := *q
	r.metrics[q.MetricID] = &clone
	return nil
}

func (r *stubQualityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.metrics[id]; !ok {
		return domain.ErrQualityNotFound
	}
	delete(r.metrics, id)
	return nil
}

func TestQualityService_AddQuality_DerivesScore(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewQualityService(newStubQualityRepo(), newStubProjectRepo(project))

	q, err := svc.AddQuality(context.Background(), ports.QualityInput{ProjectID: 1, BugCount: 10, ResolvedCount: 4})
	if err != nil {
		t.Fatalf("AddQuality returned error: %v", err)
	}
	if q.QualityScore != 40 {
		t.Fatalf("expected derived score 40, got %v", q.QualityScore)
	}
}

func TestQualityService_AddQuality_NoBugsIsPerfect(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewQualityService(newStubQualityRepo(), newStubProjectRepo(project))

	q, err := svc.AddQuality(context.Background(), ports.QualityInput{ProjectID: 1})
	if err != nil {
		t.Fatalf("AddQuality returned error: %v", err)
	}
	if q.QualityScore != 100 {
		t.Fatalf("expected score 100 with no bugs, got %v", q.QualityScore)
	}
}

func TestQualityService_AddQuality_ExplicitScoreWins(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewQualityService(newStubQualityRepo(), newStubProjectRepo(project))

	q, err := svc.AddQuality(context.Background(), ports.QualityInput{ProjectID: 1, BugCount: 10, ResolvedCount: 5, QualityScore: 87.5})
	if err != nil {
		t.Fatalf("AddQuality returned error: %v", err)
	}
	if q.QualityScore != 87.5 {
		t.Fatalf("expected explicit score kept, got %v", q.QualityScore)
	}
}

func TestQualityService_AddQuality_Validation(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewQualityService(newStubQualityRepo(), newStubProjectRepo(project))

	if _, err := svc.AddQuality(context.Background(), ports.QualityInput{ProjectID: 1, BugCount: 2, ResolvedCount: 5}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AddQuality(context.Background(), ports.QualityInput{ProjectID: 9}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
