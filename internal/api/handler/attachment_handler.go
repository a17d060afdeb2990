package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/api/metrics"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

// maxUploadBytes caps a single attachment at 10 MiB, matching the original
// service limit.
const maxUploadBytes = 10 << 20

type AttachmentHandler struct {
	attachmentService ports.AttachmentService
}

func NewAttachmentHandler(attachmentService ports.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload stores a multipart file against a bug.
//
// @Summary      Upload a bug attachment
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        bugId  path      int   true  "Bug ID"
// @Param        file   formData  file  true  "File to attach"
// @Success      201    {object}  domain.BugAttachment
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/bugattachments/upload/{bugId} [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	bugID, err := pathID(c, "bugId")
	if err != nil {
		return err
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds the 10MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	attachment, err := h.attachmentService.Upload(c.Request().Context(), ports.UploadAttachmentInput{
		BugID:      bugID,
		FileName:   fileHeader.Filename,
		FileType:   fileHeader.Header.Get("Content-Type"),
		FileSize:   fileHeader.Size,
		UploadedBy: username,
		Content:    src,
	})
	if err != nil {
		return err
	}

	metrics.AttachmentBytesTotal.Add(float64(attachment.FileSize))
	return c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) GetAll(c echo.Context) error {
	attachments, err := h.attachmentService.GetAllAttachments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attachments)
}

func (h *AttachmentHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	attachment, err := h.attachmentService.GetAttachment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attachment)
}

func (h *AttachmentHandler) GetByBug(c echo.Context) error {
	bugID, err := pathID(c, "bugId")
	if err != nil {
		return err
	}
	attachments, err := h.attachmentService.GetAttachmentsByBug(c.Request().Context(), bugID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attachments)
}

// Download streams the stored file back with its original name and type.
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	attachment, content, err := h.attachmentService.Open(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer content.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	contentType := attachment.FileType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, content)
}

func (h *AttachmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.attachmentService.DeleteAttachment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "attachment deleted successfully"})
}
