package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type ReportService struct {
	reports ports.ReportRepository
}

func NewReportService(reports ports.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) CreateReport(ctx context.Context, input ports.ReportInput) (*domain.Report, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: report type is required", domain.ErrInvalidInput)
	}

	return s.reports.Create(ctx, &domain.Report{
		Type:          input.Type,
		Parameters:    input.Parameters,
		GeneratedDate: time.Now().UTC(),
		GeneratedBy:   input.GeneratedBy,
		ReportURL:     input.ReportURL,
		Format:        input.Format,
	})
}

func (s *ReportService) GetReport(ctx context.Context, id int64) (*domain.Report, error) {
	return s.reports.FindByID(ctx, id)
}

func (s *ReportService) GetAllReports(ctx context.Context) ([]*domain.Report, error) {
	return s.reports.FindAll(ctx)
}

func (s *ReportService) GetReportsByType(ctx context.Context, reportType string) ([]*domain.Report, error) {
	return s.reports.FindByType(ctx, reportType)
}

func (s *ReportService) GetReportsByCreator(ctx context.Context, generatedBy string) ([]*domain.Report, error) {
	return s.reports.FindByCreator(ctx, generatedBy)
}

func (s *ReportService) UpdateReport(ctx context.Context, id int64, input ports.ReportInput) (*domain.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Type) != "" {
		report.Type = input.Type
	}
	if input.Parameters != "" {
		report.Parameters = input.Parameters
	}
	if input.ReportURL != "" {
		report.ReportURL = input.ReportURL
	}
	if input.Format != "" {
		report.Format = input.Format
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id int64) error {
	if _, err := s.reports.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}
