package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type ReportHandler struct {
	reportService ports.ReportService
}

func NewReportHandler(reportService ports.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type reportRequest struct {
	Type       string `json:"type" validate:"required"`
	Parameters string `json:"parameters"`
	ReportURL  string `json:"reportUrl"`
	Format     string `json:"format"`
}

func (h *ReportHandler) Create(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.CreateReport(c.Request().Context(), ports.ReportInput{
		Type:        req.Type,
		Parameters:  req.Parameters,
		GeneratedBy: username,
		ReportURL:   req.ReportURL,
		Format:      req.Format,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetAll(c echo.Context) error {
	reports, err := h.reportService.GetAllReports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	report, err := h.reportService.GetReport(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetByType(c echo.Context) error {
	reportType := c.Param("type")
	if reportType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	reports, err := h.reportService.GetReportsByType(c.Request().Context(), reportType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetByCreator(c echo.Context) error {
	creator := c.Param("username")
	if creator == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid username")
	}
	reports, err := h.reportService.GetReportsByCreator(c.Request().Context(), creator)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Download redirects to the rendered artifact referenced by the report.
func (h *ReportHandler) Download(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	report, err := h.reportService.GetReport(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if report.ReportURL == "" {
		return echo.NewHTTPError(http.StatusNotFound, "report has no rendered artifact")
	}
	return c.Redirect(http.StatusFound, report.ReportURL)
}

func (h *ReportHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	report, err := h.reportService.UpdateReport(c.Request().Context(), id, ports.ReportInput{
		Type:       req.Type,
		Parameters: req.Parameters,
		ReportURL:  req.ReportURL,
		Format:     req.Format,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reportService.DeleteReport(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "report deleted successfully"})
}
