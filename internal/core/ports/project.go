package ports

import (
	"context"
	"time"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// CreateProjectInput carries all data needed to create or update a project.
type CreateProjectInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	ManagerID int64
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	AddProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	GetAllProjects(ctx context.Context) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, input CreateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
