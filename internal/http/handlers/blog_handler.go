package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/x986x/CW6/internal/http/dto"
	"github.com/x986x/CW6/internal/middleware"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/rbac"
	"github.com/x986x/CW6/internal/repositories"
	"go.uber.org/zap"
)

// BlogHandler serves the content section. Reading is public; writing
// requires the manage-blog permission.
type BlogHandler struct {
	blogRepo *repositories.BlogRepo
	log      *zap.Logger
}

func NewBlogHandler(blogRepo *repositories.BlogRepo, log *zap.Logger) *BlogHandler {
	return &BlogHandler{blogRepo: blogRepo, log: log}
}

func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	posts, err := h.blogRepo.ListPublished(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list blog posts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: posts})
}

// GetPost looks a post up by slug and bumps its view counter.
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.blogRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil || !post.IsPublished {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "post not found"})
	}

	views, err := h.blogRepo.IncrementViews(c.Context(), post.ID)
	if err != nil {
		h.log.Warn("views increment failed", zap.String("slug", post.Slug), zap.Error(err))
	} else {
		post.ViewsCount = views
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: post})
}

func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	if !rbac.HasPermission(middleware.GetUserRole(c), rbac.PermManageBlog) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "forbidden"})
	}

	var req dto.CreateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "title and content are required"})
	}

	userID := middleware.GetUserID(c)
	post := &models.BlogPost{
		Title:        req.Title,
		Slug:         models.Slugify(req.Title),
		Content:      req.Content,
		PreviewImage: req.PreviewImage,
		IsPublished:  true,
		OwnerID:      &userID,
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := h.blogRepo.Create(c.Context(), post); err != nil {
		h.log.Error("blog create failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "could not create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: post})
}

func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	if !rbac.HasPermission(middleware.GetUserRole(c), rbac.PermManageBlog) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "forbidden"})
	}

	post, err := h.blogRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "post not found"})
	}

	var req dto.UpdateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "title and content are required"})
	}

	// Renaming regenerates the slug, so old links may stop resolving.
	if req.Title != post.Title {
		post.Slug = models.Slugify(req.Title)
	}
	post.Title = req.Title
	post.Content = req.Content
	post.PreviewImage = req.PreviewImage
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := h.blogRepo.Update(c.Context(), post); err != nil {
		h.log.Error("blog update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: post})
}

func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	if !rbac.HasPermission(middleware.GetUserRole(c), rbac.PermManageBlog) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "forbidden"})
	}

	post, err := h.blogRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "post not found"})
	}
	if err := h.blogRepo.Delete(c.Context(), post.ID); err != nil {
		h.log.Error("blog delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
