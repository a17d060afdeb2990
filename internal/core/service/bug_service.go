package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

const maxPageSize = 100

type BugService struct {
	bugs       ports.BugRepository
	projects   ports.ProjectRepository
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

// NewBugService builds a BugService. dispatcher may be nil when async
// notification delivery is not wanted (tests).
func NewBugService(bugs ports.BugRepository, projects ports.ProjectRepository, dispatcher ports.NotificationDispatcher, logger zerolog.Logger) *BugService {
	return &BugService{bugs: bugs, projects: projects, dispatcher: dispatcher, logger: logger}
}

// AddBug files a new bug against an existing project. The priority defaults
// to MEDIUM when omitted.
func (s *BugService) AddBug(ctx context.Context, input ports.CreateBugInput) (*domain.Bug, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	priority := domain.Priority(strings.ToUpper(strings.TrimSpace(input.Priority)))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, input.Priority)
	}

	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	bug := &domain.Bug{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		ProjectID:   project.ID,
		CreatedDate: time.Now().UTC(),
	}

	created, err := s.bugs.Create(ctx, bug)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create bug")
		return nil, err
	}

	s.logger.Info().Int64("bug_id", created.ID).Int64("project_id", project.ID).
		Str("priority", string(created.Priority)).Msg("bug created")

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(ports.NotificationDispatch{
			UserID:  project.ManagerID,
			Type:    "BUG_CREATED",
			Message: fmt.Sprintf("New %s bug filed on %s: %s", created.Priority, project.Name, created.Title),
		})
	}

	return created, nil
}

func (s *BugService) GetBug(ctx context.Context, id int64) (*domain.Bug, error) {
	return s.bugs.FindByID(ctx, id)
}

func (s *BugService) GetAllBugs(ctx context.Context) ([]*domain.Bug, error) {
	return s.bugs.FindAll(ctx)
}

func (s *BugService) GetBugsByProject(ctx context.Context, projectID int64) ([]*domain.Bug, error) {
	return s.bugs.FindByProject(ctx, projectID)
}

// ListBugs returns one page of bugs. Page size is capped at maxPageSize.
func (s *BugService) ListBugs(ctx context.Context, filter ports.ListBugsFilter) (*ports.BugPage, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = 10
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, filter.Priority)
	}

	items, total, err := s.bugs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &ports.BugPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages,
	}, nil
}

func (s *BugService) UpdateBug(ctx context.Context, id int64, input ports.CreateBugInput) (*domain.Bug, error) {
	bug, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		bug.Title = input.Title
	}
	if input.Description != "" {
		bug.Description = input.Description
	}
	if input.Priority != "" {
		priority := domain.Priority(strings.ToUpper(strings.TrimSpace(input.Priority)))
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, input.Priority)
		}
		bug.Priority = priority
	}
	if input.ProjectID != 0 && input.ProjectID != bug.ProjectID {
		if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
			return nil, err
		}
		bug.ProjectID = input.ProjectID
	}

	if err := s.bugs.Update(ctx, bug); err != nil {
		return nil, err
	}
	return bug, nil
}

func (s *BugService) DeleteBug(ctx context.Context, id int64) error {
	if _, err := s.bugs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.bugs.Delete(ctx, id)
}
