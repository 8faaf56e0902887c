package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"talentboard/internal/domain"
	"talentboard/internal/middleware"
	"talentboard/internal/service/event"
)

// EventHandler is the intake for domain events emitted by the job,
// application and employer subsystems. Handlers return 202 once the
// payload validates; fan-out outcomes are not part of the response.
type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) JobPosted(c *fiber.Ctx) error {
	var ev domain.JobPostedEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.eventService.HandleJobPosted(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *EventHandler) ApplicationStatus(c *fiber.Ctx) error {
	var ev domain.ApplicationStatusEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.eventService.HandleApplicationStatus(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *EventHandler) InterviewScheduled(c *fiber.Ctx) error {
	return h.handleInterview(c, h.eventService.HandleInterviewScheduled)
}

func (h *EventHandler) InterviewUpdated(c *fiber.Ctx) error {
	return h.handleInterview(c, h.eventService.HandleInterviewUpdated)
}

func (h *EventHandler) InterviewCancelled(c *fiber.Ctx) error {
	return h.handleInterview(c, h.eventService.HandleInterviewCancelled)
}

func (h *EventHandler) AssessmentAssigned(c *fiber.Ctx) error {
	return h.handleAssessment(c, h.eventService.HandleAssessmentAssigned)
}

func (h *EventHandler) AssessmentScored(c *fiber.Ctx) error {
	return h.handleAssessment(c, h.eventService.HandleAssessmentScored)
}

func (h *EventHandler) EmployerApproved(c *fiber.Ctx) error {
	var ev domain.EmployerModerationEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	ev.AdminID = middleware.GetCurrentUserID(c)

	if err := h.eventService.HandleEmployerApproved(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *EventHandler) EmployerRejected(c *fiber.Ctx) error {
	var ev domain.EmployerModerationEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	ev.AdminID = middleware.GetCurrentUserID(c)

	if err := h.eventService.HandleEmployerRejected(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *EventHandler) handleInterview(c *fiber.Ctx, handle func(ctx context.Context, ev domain.InterviewEvent) error) error {
	var ev domain.InterviewEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := handle(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *EventHandler) handleAssessment(c *fiber.Ctx, handle func(ctx context.Context, ev domain.AssessmentEvent) error) error {
	var ev domain.AssessmentEvent
	if err := c.BodyParser(&ev); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := handle(c.Context(), ev); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}
