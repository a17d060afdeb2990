package ports

import (
	"context"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// ListBugsFilter carries all query parameters for the paginated bug listing.
type ListBugsFilter struct {
	ProjectID int64           // 0 = no project filter
	Priority  domain.Priority // empty = no priority filter
	Page      int             // 0-based, matching the original API
	Size      int             // rows per page (capped by the service)
	SortBy    string          // "priority", "title" or "createdDate"
	SortDesc  bool
}

// BugPage is one page of bugs plus pagination totals.
type BugPage struct {
	Items      []*domain.Bug `json:"content"`
	Total      int64         `json:"totalElements"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"totalPages"`
}

// BugRepository defines persistence operations for bugs.
type BugRepository interface {
	Create(ctx context.Context, bug *domain.Bug) (*domain.Bug, error)
	FindByID(ctx context.Context, id int64) (*domain.Bug, error)
	FindAll(ctx context.Context) ([]*domain.Bug, error)
	FindByProject(ctx context.Context, projectID int64) ([]*domain.Bug, error)
	List(ctx context.Context, filter ListBugsFilter) ([]*domain.Bug, int64, error)
	Update(ctx context.Context, bug *domain.Bug) error
	Delete(ctx context.Context, id int64) error
}

// CreateBugInput carries all data needed to file a bug.
type CreateBugInput struct {
	Title       string
	Description string
	Priority    string
	ProjectID   int64
}

// BugService defines use-case operations for bugs.
type BugService interface {
	AddBug(ctx context.Context, input CreateBugInput) (*domain.Bug, error)
	GetBug(ctx context.Context, id int64) (*domain.Bug, error)
	GetAllBugs(ctx context.Context) ([]*domain.Bug, error)
	GetBugsByProject(ctx context.Context, projectID int64) ([]*domain.Bug, error)
	ListBugs(ctx context.Context, filter ListBugsFilter) (*BugPage, error)
	UpdateBug(ctx context.Context, id int64, input CreateBugInput) (*domain.Bug, error)
	DeleteBug(ctx context.Context, id int64) error
}
