package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentboard/internal/domain"
	"talentboard/internal/middleware"
	"talentboard/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

type fanOutInput struct {
	domain.CreateNotificationInput
	TargetRole string     `json:"target_role"`
	UserID     *uuid.UUID `json:"user_id"`
}

// NotifySystemWide handles POST /notifications/system (admin only).
func (h *NotificationHandler) NotifySystemWide(c *fiber.Ctx) error {
	var input fanOutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	adminID := middleware.GetCurrentUserID(c)
	count, err := h.notifService.NotifySystemWide(c.Context(), input.CreateNotificationInput, &adminID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recipients": count})
}

// NotifyRole handles POST /notifications/role (admin only).
func (h *NotificationHandler) NotifyRole(c *fiber.Ctx) error {
	var input fanOutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	adminID := middleware.GetCurrentUserID(c)
	count, err := h.notifService.NotifyRole(c.Context(), input.TargetRole, input.CreateNotificationInput, &adminID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recipients": count})
}

// NotifyUser handles POST /notifications/user (admin only).
func (h *NotificationHandler) NotifyUser(c *fiber.Ctx) error {
	var input fanOutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserID == nil {
		return middleware.BadRequest("user_id is required")
	}

	adminID := middleware.GetCurrentUserID(c)
	notif, err := h.notifService.NotifyUser(c.Context(), *input.UserID, input.CreateNotificationInput, &adminID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	params := domain.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 0 {
		params.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size", "20")); err == nil && pageSize > 0 {
		params.PageSize = pageSize
	}
	params.Validate()

	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifService.List(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListUnread handles GET /notifications/unread.
func (h *NotificationHandler) ListUnread(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	params := domain.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 0 {
		params.Page = page
	}
	params.Validate()

	result, err := h.notifService.List(c.Context(), userID, true, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	userID := middleware.GetCurrentUserID(c)
	notif, err := h.notifService.GetByID(c.Context(), userID, notifID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notif)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.notifService.MarkAsRead(c.Context(), userID, notifID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.notifService.Delete(c.Context(), userID, notifID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
