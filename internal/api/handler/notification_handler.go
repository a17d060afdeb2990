package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type notificationRequest struct {
	UserID  int64  `json:"userId" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
	Read    bool   `json:"isRead"`
}

func (h *NotificationHandler) Add(c echo.Context) error {
	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notification, err := h.notificationService.AddNotification(c.Request().Context(), ports.NotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Message: req.Message,
		Read:    req.Read,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) GetAll(c echo.Context) error {
	notifications, err := h.notificationService.GetAllNotifications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	notification, err := h.notificationService.GetNotification(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}

// GetByUser returns the notifications addressed to one user, newest first.
// Clients poll this endpoint to surface unseen notifications.
func (h *NotificationHandler) GetByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	notifications, err := h.notificationService.GetNotificationsByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	notification, err := h.notificationService.UpdateNotification(c.Request().Context(), id, ports.NotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Message: req.Message,
		Read:    req.Read,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationService.DeleteNotification(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted successfully"})
}
