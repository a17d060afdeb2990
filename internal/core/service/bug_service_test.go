package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type stubBugRepo struct {
	bugs   map[int64]*domain.Bug
	nextID int64
}

func newStubBugRepo() *stubBugRepo {
	return &stubBugRepo{bugs: make(map[int64]*domain.Bug)}
}

func (r *stubBugRepo) Create(_ context.Context, bug *domain.Bug) (*domain.Bug, error) {
	r.nextID++
	clone := *bug
	clone.ID = r.nextID
	r.bugs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBugRepo) FindByID(_ context.Context, id int64) (*domain.Bug, error) {
	if b, ok := r.bugs[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBugNotFound
}

func (r *stubBugRepo) FindAll(_ context.Context) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0, len(r.bugs))
	for _, b := range r.bugs {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBugRepo) FindByProject(_ context.Context, projectID int64) ([]*domain.Bug, error) {
	var out []*domain.Bug
	for _, b := range r.bugs {
		if b.ProjectID == projectID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBugRepo) List(_ context.Context, filter ports.ListBugsFilter) ([]*domain.Bug, int64, error) {
	all, _ := r.FindAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubBugRepo) Update(_ context.Context, bug *domain.Bug) error {
	if _, ok := r.bugs[bug.ID]; !ok {
		return domain.ErrBugNotFound
	}
	clone := *bug
	r.bugs[bug.ID] = &clone
	return nil
}

func (r *stubBugRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bugs[id]; !ok {
		return domain.ErrBugNotFound
	}
	delete(r.bugs, id)
	return nil
}

type stubProjectRepo struct {
	projects map[int64]*domain.Project
}

func newStubProjectRepo(projects ...*domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[int64]*domain.Project)}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.projects[p.ID] = p
	return p, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) FindAll(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) error {
	delete(r.projects, id)
	return nil
}

type captureDispatcher struct {
	jobs []ports.NotificationDispatch
}

func (d *captureDispatcher) Enqueue(job ports.NotificationDispatch) {
	d.jobs = append(d.jobs, job)
}

func TestBugService_AddBug_Success(t *testing.T) {
	project := &domain.Project{ID: 7, Name: "Tracker", ManagerID: 42}
	dispatcher := &captureDispatcher{}
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(project), dispatcher, zerolog.Nop())

	bug, err := svc.AddBug(context.Background(), ports.CreateBugInput{
		Title:     "Crash on save",
		Priority:  "high",
		ProjectID: 7,
	})
	if err != nil {
		t.Fatalf("AddBug returned error: %v", err)
	}
	if bug.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if bug.Priority != domain.PriorityHigh {
		t.Fatalf("expected priority normalised to HIGH, got %s", bug.Priority)
	}
	if len(dispatcher.jobs) != 1 {
		t.Fatalf("expected one notification job, got %d", len(dispatcher.jobs))
	}
	if dispatcher.jobs[0].UserID != 42 {
		t.Fatalf("notification addressed to %d, want manager 42", dispatcher.jobs[0].UserID)
	}
}

func TestBugService_AddBug_DefaultsPriority(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(project), nil, zerolog.Nop())

	bug, err := svc.AddBug(context.Background(), ports.CreateBugInput{Title: "No priority", ProjectID: 1})
	if err != nil {
		t.Fatalf("AddBug returned error: %v", err)
	}
	if bug.Priority != domain.PriorityMedium {
		t.Fatalf("expected MEDIUM default, got %s", bug.Priority)
	}
}

func TestBugService_AddBug_Validation(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(project), nil, zerolog.Nop())

	if _, err := svc.AddBug(context.Background(), ports.CreateBugInput{Title: "  ", ProjectID: 1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := svc.AddBug(context.Background(), ports.CreateBugInput{Title: "x", Priority: "URGENT", ProjectID: 1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown priority, got %v", err)
	}
	if _, err := svc.AddBug(context.Background(), ports.CreateBugInput{Title: "x", ProjectID: 99}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestBugService_ListBugs_CapsPageSize(t *testing.T) {
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(), nil, zerolog.Nop())

	page, err := svc.ListBugs(context.Background(), ports.ListBugsFilter{Page: -3, Size: 5000})
	if err != nil {
		t.Fatalf("ListBugs returned error: %v", err)
	}
	if page.Page != 0 {
		t.Fatalf("expected page clamped to 0, got %d", page.Page)
	}
	if page.Size != maxPageSize {
		t.Fatalf("expected size capped at %d, got %d", maxPageSize, page.Size)
	}
}

func TestBugService_ListBugs_RejectsUnknownPriority(t *testing.T) {
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(), nil, zerolog.Nop())

	if _, err := svc.ListBugs(context.Background(), ports.ListBugsFilter{Priority: "SEVERE"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBugService_UpdateBug_PartialFields(t *testing.T) {
	project := &domain.Project{ID: 1, ManagerID: 1}
	repo := newStubBugRepo()
	svc := NewBugService(repo, newStubProjectRepo(project), nil, zerolog.Nop())

	created, err := svc.AddBug(context.Background(), ports.CreateBugInput{Title: "Original", Priority: "LOW", ProjectID: 1})
	if err != nil {
		t.Fatalf("AddBug returned error: %v", err)
	}

	updated, err := svc.UpdateBug(context.Background(), created.ID, ports.CreateBugInput{Priority: "critical"})
	if err != nil {
		t.Fatalf("UpdateBug returned error: %v", err)
	}
	if updated.Title != "Original" {
		t.Fatalf("title should be unchanged, got %q", updated.Title)
	}
	if updated.Priority != domain.PriorityCritical {
		t.Fatalf("expected CRITICAL, got %s", updated.Priority)
	}
}

func TestBugService_DeleteBug_NotFound(t *testing.T) {
	svc := NewBugService(newStubBugRepo(), newStubProjectRepo(), nil, zerolog.Nop())

	if err := svc.DeleteBug(context.Background(), 404); !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
}
