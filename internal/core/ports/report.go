package ports

import (
	"context"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// ReportRepository defines persistence operations for analytic reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id int64) (*domain.Report, error)
	FindAll(ctx context.Context) ([]*domain.Report, error)
	FindByType(ctx context.Context, reportType string) ([]*domain.Report, error)
	FindByCreator(ctx context.Context, generatedBy string) ([]*domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
	Delete(ctx context.Context, id int64) error
}

// ReportInput carries the fields for creating or updating a report.
type ReportInput struct {
	Type        string
	Parameters  string
	GeneratedBy string
	ReportURL   string
	Format      string
}

// ReportService defines use-case operations for analytic reports.
type ReportService interface {
	CreateReport(ctx context.Context, input ReportInput) (*domain.Report, error)
	GetReport(ctx context.Context, id int64) (*domain.Report, error)
	GetAllReports(ctx context.Context) ([]*domain.Report, error)
	GetReportsByType(ctx context.Context, reportType string) ([]*domain.Report, error)
	GetReportsByCreator(ctx context.Context, generatedBy string) ([]*domain.Report, error)
	UpdateReport(ctx context.Context, id int64, input ReportInput) (*domain.Report, error)
	DeleteReport(ctx context.Context, id int64) error
}
