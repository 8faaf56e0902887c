package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentboard/internal/domain"
	"talentboard/internal/middleware"
	"talentboard/internal/service/message"
)

type MessageHandler struct {
	messageService message.Service
}

func NewMessageHandler(messageService message.Service) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send handles POST /messages/send. The sender is always the
// authenticated caller; the body only names the receiver and content.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	senderID := middleware.GetCurrentUserID(c)
	msg, err := h.messageService.Send(c.Context(), senderID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) ListConversations(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	conversations, err := h.messageService.ListConversations(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(conversations)
}

func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	otherID, err := uuid.Parse(c.Params("otherUserId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	userID := middleware.GetCurrentUserID(c)
	messages, err := h.messageService.GetConversation(c.Context(), userID, otherID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(messages)
}

func (h *MessageHandler) MarkAsRead(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.messageService.MarkAsRead(c.Context(), userID, messageID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MessageHandler) MarkConversationAsRead(c *fiber.Ctx) error {
	otherID, err := uuid.Parse(c.Params("otherUserId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.messageService.MarkConversationAsRead(c.Context(), userID, otherID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MessageHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.messageService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}
