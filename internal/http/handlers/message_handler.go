package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/http/dto"
	"github.com/x986x/CW6/internal/middleware"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/rbac"
	"github.com/x986x/CW6/internal/repositories"
	"github.com/x986x/CW6/internal/services"
	"go.uber.org/zap"
)

// MessageHandler manages the messages nested under a mailing. Access goes
// through the mailing: whoever can see the mailing can see its messages.
type MessageHandler struct {
	messageRepo    *repositories.MessageRepo
	mailingService *services.MailingService
	log            *zap.Logger
}

func NewMessageHandler(messageRepo *repositories.MessageRepo, mailingService *services.MailingService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo, mailingService: mailingService, log: log}
}

func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	mailingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}
	if _, err := h.mailingService.GetByID(c.Context(), mailingID, middleware.GetUserID(c), middleware.GetUserRole(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mailing not found"})
	}

	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Subject == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "subject and body are required"})
	}

	userID := middleware.GetUserID(c)
	m := &models.Message{
		MailingID: mailingID,
		Subject:   req.Subject,
		Body:      req.Body,
		OwnerID:   &userID,
	}
	if err := h.messageRepo.Create(c.Context(), m); err != nil {
		h.log.Error("message create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	mailingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid mailing id"})
	}
	if _, err := h.mailingService.GetByID(c.Context(), mailingID, middleware.GetUserID(c), middleware.GetUserRole(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "mailing not found"})
	}

	messages, err := h.messageRepo.ListByMailing(c.Context(), mailingID)
	if err != nil {
		h.log.Error("list messages failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: messages})
}

func (h *MessageHandler) UpdateMessage(c *fiber.Ctx) error {
	m, err := h.loadEditable(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "message not found"})
	}

	var req dto.UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Subject == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "subject and body are required"})
	}

	m.Subject = req.Subject
	m.Body = req.Body
	if err := h.messageRepo.Update(c.Context(), m); err != nil {
		h.log.Error("message update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	m, err := h.loadEditable(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "message not found"})
	}

	if err := h.messageRepo.Delete(c.Context(), m.ID); err != nil {
		h.log.Error("message delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *MessageHandler) loadEditable(c *fiber.Ctx) (*models.Message, error) {
	id, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return nil, err
	}
	m, err := h.messageRepo.GetByID(c.Context(), id)
	if err != nil {
		return nil, err
	}
	userID := middleware.GetUserID(c)
	if rbac.HasPermission(middleware.GetUserRole(c), rbac.PermEditAnyRecord) {
		return m, nil
	}
	if m.OwnerID == nil || *m.OwnerID != userID {
		return nil, fiber.ErrNotFound
	}
	return m, nil
}
