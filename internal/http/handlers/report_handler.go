package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/x986x/CW6/internal/http/dto"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/repositories"
	"go.uber.org/zap"
)

type ReportHandler struct {
	mailingRepo *repositories.MailingRepo
	clientRepo  *repositories.ClientRepo
	blogRepo    *repositories.BlogRepo
	logRepo     *repositories.LogRepo
	log         *zap.Logger
}

func NewReportHandler(mailingRepo *repositories.MailingRepo, clientRepo *repositories.ClientRepo,
	blogRepo *repositories.BlogRepo, logRepo *repositories.LogRepo, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		mailingRepo: mailingRepo,
		clientRepo:  clientRepo,
		blogRepo:    blogRepo,
		logRepo:     logRepo,
		log:         log,
	}
}

// HomeStats backs the landing page: totals plus a few random blog posts.
func (h *ReportHandler) HomeStats(c *fiber.Ctx) error {
	ctx := c.Context()

	total, err := h.mailingRepo.CountAll(ctx)
	if err != nil {
		h.log.Error("count mailings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	active, err := h.mailingRepo.CountActive(ctx)
	if err != nil {
		h.log.Error("count active mailings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	clients, err := h.clientRepo.CountActive(ctx)
	if err != nil {
		h.log.Error("count active clients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	posts, err := h.blogRepo.RandomPublished(ctx, 3)
	if err != nil {
		h.log.Error("random blog posts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.HomeStatsResponse{
		MailingsCount:       total,
		ActiveMailingsCount: active,
		ActiveClientsCount:  clients,
		RandomBlogPosts:     posts,
	}})
}

// DeliveryReport lists delivery log entries filtered by status,
// successful attempts by default.
func (h *ReportHandler) DeliveryReport(c *fiber.Ctx) error {
	status := c.Query("status", models.LogStatusSuccess)
	if status != models.LogStatusSuccess && status != models.LogStatusError {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status must be success or error"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	logs, err := h.logRepo.ListByStatus(c.Context(), status, limit, offset)
	if err != nil {
		h.log.Error("delivery report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}
