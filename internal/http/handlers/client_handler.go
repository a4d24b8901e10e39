package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/http/dto"
	"github.com/x986x/CW6/internal/middleware"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/rbac"
	"github.com/x986x/CW6/internal/repositories"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientRepo *repositories.ClientRepo
	log        *zap.Logger
}

func NewClientHandler(clientRepo *repositories.ClientRepo, log *zap.Logger) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, log: log}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Email == "" || req.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "email and full_name are required"})
	}

	userID := middleware.GetUserID(c)
	client := &models.Client{
		Email:    req.Email,
		FullName: req.FullName,
		Comment:  req.Comment,
		IsActive: true,
		OwnerID:  &userID,
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := h.clientRepo.Create(c.Context(), client); err != nil {
		h.log.Error("client create failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "could not create client"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	filter := repositories.ClientFilter{Limit: 20}

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
	if !rbac.HasPermission(middleware.GetUserRole(c), rbac.PermViewAllClients) {
		filter.OwnerID = &userID
	}

	clients, err := h.clientRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: clients})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.loadVisible(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	client, err := h.loadEditable(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}

	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Email == "" || req.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "email and full_name are required"})
	}

	client.Email = req.Email
	client.FullName = req.FullName
	client.Comment = req.Comment
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := h.clientRepo.Update(c.Context(), client); err != nil {
		h.log.Error("client update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

// SetClientActive toggles the active flag. Managers may block any client.
func (h *ClientHandler) SetClientActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	client, err := h.clientRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}

	userID := middleware.GetUserID(c)
	role := middleware.GetUserRole(c)
	isOwner := client.OwnerID != nil && *client.OwnerID == userID
	if !isOwner && !rbac.HasPermission(role, rbac.PermBlockClients) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}

	active := c.Params("action") == "activate"
	if err := h.clientRepo.SetActive(c.Context(), id, active); err != nil {
		h.log.Error("client toggle failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	client.IsActive = active
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	client, err := h.loadEditable(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}

	if err := h.clientRepo.Delete(c.Context(), client.ID); err != nil {
		h.log.Error("client delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ClientHandler) loadVisible(c *fiber.Ctx) (*models.Client, error) {
	client, err := h.load(c)
	if err != nil {
		return nil, err
	}
	userID := middleware.GetUserID(c)
	if rbac.HasPermission(middleware.GetUserRole(c), rbac.PermViewAllClients) {
		return client, nil
	}
	if client.OwnerID == nil || *client.OwnerID != userID {
		return nil, fiber.ErrNotFound
	}
	return client, nil
}

func (h *ClientHandler) loadEditable(c *fiber.Ctx) (*models.Client, error) {
	client, err := h.load(c)
	if err != nil {
		return nil, err
	}
	userID := middleware.GetUserID(c)
	if rbac.HasPermission(middleware.GetUserRole(c), rbac.PermEditAnyRecord) {
		return client, nil
	}
	if client.OwnerID == nil || *client.OwnerID != userID {
		return nil, fiber.ErrNotFound
	}
	return client, nil
}

func (h *ClientHandler) load(c *fiber.Ctx) (*models.Client, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, err
	}
	return h.clientRepo.GetByID(c.Context(), id)
}
