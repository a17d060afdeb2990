package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type QualityHandler struct {
	qualityService ports.QualityService
}

func NewQualityHandler(qualityService ports.QualityService) *QualityHandler {
	return &QualityHandler{qualityService: qualityService}
}

type qualityRequest struct {
	ProjectID     int64   `json:"projectId" validate:"required"`
	BugCount      int     `json:"bugCount" validate:"gte=0"`
	ResolvedCount int     `json:"resolvedCount" validate:"gte=0"`
	QualityScore  float64 `json:"qualityScore"`
}

func (r qualityRequest) toInput() ports.QualityInput {
	return ports.QualityInput{
		ProjectID:     r.ProjectID,
		BugCount:      r.BugCount,
		ResolvedCount: r.ResolvedCount,
		QualityScore:  r.QualityScore,
	}
}

func (h *QualityHandler) Add(c echo.Context) error {
	var req qualityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quality, err := h.qualityService.AddQuality(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, quality)
}

func (h *QualityHandler) GetAll(c echo.Context) error {
	qualities, err := h.qualityService.GetAllQualities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, qualities)
}

func (h *QualityHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	quality, err := h.qualityService.GetQuality(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quality)
}

func (h *QualityHandler) GetByProject(c echo.Context) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	qualities, err := h.qualityService.GetQualitiesByProject(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, qualities)
}

func (h *QualityHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req qualityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	quality, err := h.qualityService.UpdateQuality(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quality)
}

func (h *QualityHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.qualityService.DeleteQuality(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "quality metric deleted successfully"})
}
