package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	ProjectID int64  `json:"projectId"`
	Name      string `json:"projectName" validate:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ManagerID int64  `json:"managerId" validate:"required"`
}

func (r projectRequest) toInput() (ports.CreateProjectInput, error) {
	input := ports.CreateProjectInput{Name: r.Name, ManagerID: r.ManagerID}
	if r.StartDate != "" {
		t, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		}
		input.StartDate = t
	}
	if r.EndDate != "" {
		t, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		}
		input.EndDate = t
	}
	return input, nil
}

func (h *ProjectHandler) Add(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	project, err := h.projectService.AddProject(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetAll(c echo.Context) error {
	projects, err := h.projectService.GetAllProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	project, err := h.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update keeps the original API shape: the target project travels in the body.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProjectID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "projectId is required")
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), req.ProjectID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "project deleted successfully"})
}
