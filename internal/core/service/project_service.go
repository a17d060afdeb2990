package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

func (s *ProjectService) AddProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByID(ctx, input.ManagerID); err != nil {
		return nil, err
	}

	return s.projects.Create(ctx, &domain.Project{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		ManagerID: input.ManagerID,
	})
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) GetAllProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.FindAll(ctx)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id int64, input ports.CreateProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		project.Name = input.Name
	}
	if !input.StartDate.IsZero() {
		project.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		project.EndDate = input.EndDate
	}
	if input.ManagerID != 0 && input.ManagerID != project.ManagerID {
		if _, err := s.users.FindByID(ctx, input.ManagerID); err != nil {
			return nil, err
		}
		project.ManagerID = input.ManagerID
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}
