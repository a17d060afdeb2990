package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/api/metrics"
	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type BugHandler struct {
	bugService ports.BugService
}

func NewBugHandler(bugService ports.BugService) *BugHandler {
	return &BugHandler{bugService: bugService}
}

type bugRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	ProjectID   int64  `json:"projectId" validate:"required"`
}

// Add files a new bug.
//
// @Summary      File a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Param        body  body      bugRequest  true  "Bug details"
// @Success      201   {object}  domain.Bug
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/bugs/add [post]
func (h *BugHandler) Add(c echo.Context) error {
	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bug, err := h.bugService.AddBug(c.Request().Context(), ports.CreateBugInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return err
	}

	metrics.BugsCreatedTotal.WithLabelValues(string(bug.Priority)).Inc()
	return c.JSON(http.StatusCreated, bug)
}

func (h *BugHandler) GetAll(c echo.Context) error {
	bugs, err := h.bugService.GetAllBugs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bugs)
}

func (h *BugHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bug, err := h.bugService.GetBug(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

func (h *BugHandler) GetByProject(c echo.Context) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	bugs, err := h.bugService.GetBugsByProject(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bugs)
}

// ListPaginated returns one page of bugs with optional priority filter and
// sorting, mirroring the original paginated endpoint's query parameters.
//
// @Summary      List bugs with pagination
// @Tags         bugs
// @Produce      json
// @Param        page      query  int     false  "0-based page"       default(0)
// @Param        size      query  int     false  "page size"          default(10)
// @Param        sortBy    query  string  false  "priority|title|createdDate"
// @Param        sortDir   query  string  false  "asc|desc"
// @Param        priority  query  string  false  "filter by priority"
// @Param        projectId query  int     false  "filter by project"
// @Success      200  {object}  ports.BugPage
// @Security     BearerAuth
// @Router       /api/bugs/paginated [get]
func (h *BugHandler) ListPaginated(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	projectID, _ := strconv.ParseInt(c.QueryParam("projectId"), 10, 64)

	filter := ports.ListBugsFilter{
		ProjectID: projectID,
		Priority:  domain.Priority(c.QueryParam("priority")),
		Page:      page,
		Size:      size,
		SortBy:    c.QueryParam("sortBy"),
		SortDesc:  c.QueryParam("sortDir") == "desc",
	}

	pageResult, err := h.bugService.ListBugs(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResult)
}

func (h *BugHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bug, err := h.bugService.UpdateBug(c.Request().Context(), id, ports.CreateBugInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

func (h *BugHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bugService.DeleteBug(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "bug deleted successfully"})
}

// pathID parses the named path parameter as a positive integer identifier.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
