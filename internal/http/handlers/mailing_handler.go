package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/http/dto"
	"github.com/x986x/CW6/internal/middleware"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/repositories"
	"github.com/x986x/CW6/internal/services"
	"go.uber.org/zap"
)

type MailingHandler struct {
	mailingService *services.MailingService
	messageRepo    *repositories.MessageRepo
	log            *zap.Logger
}

func NewMailingHandler(mailingService *services.MailingService, messageRepo *repositories.MessageRepo, log *zap.Logger) *MailingHandler {
	return &MailingHandler{mailingService: mailingService, messageRepo: messageRepo, log: log}
}

func (h *MailingHandler) CreateMailing(c *fiber.Ctx) error {
	var req dto.CreateMailingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.StartTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "start_time is required"})
	}

	m := &models.Mailing{
		StartTime:    req.StartTime,
		Frequency:    req.Frequency,
		Status:       req.Status,
		RecipientIDs: req.RecipientIDs,
	}
	if err := h.mailingService.Create(c.Context(), middleware.GetUserID(c), m); err != nil {
		h.log.Error("mailing create failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MailingHandler) ListMailings(c *fiber.Ctx) error {
	filter := repositories.MailingFilter{Limit: 20}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	mailings, err := h.mailingService.List(c.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), filter)
	if err != nil {
		h.log.Error("list mailings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: mailings})
}

// GetMailing returns a mailing together with its messages.
func (h *MailingHandler) GetMailing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}

	m, err := h.mailingService.GetByID(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mailing not found"})
	}

	messages, err := h.messageRepo.ListByMailing(c.Context(), id)
	if err != nil {
		h.log.Error("list messages failed", zap.String("mailing_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MailingDetailResponse{Mailing: m, Messages: messages}})
}

func (h *MailingHandler) UpdateMailing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}

	var req dto.UpdateMailingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	m := &models.Mailing{
		StartTime:    req.StartTime,
		Frequency:    req.Frequency,
		Status:       req.Status,
		RecipientIDs: req.RecipientIDs,
	}
	if err := h.mailingService.Update(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// ToggleMailing activates or deactivates a mailing.
func (h *MailingHandler) ToggleMailing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}

	action := c.Params("action")
	if action != "activate" && action != "deactivate" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "action must be activate or deactivate"})
	}

	m, err := h.mailingService.ToggleStatus(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), action == "activate")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mailing not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MailingHandler) DeleteMailing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}

	if err := h.mailingService.Delete(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mailing not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
