package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/x986x/CW6/internal/config"
	"github.com/x986x/CW6/internal/http/handlers"
	"github.com/x986x/CW6/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	mailingHandler *handlers.MailingHandler,
	messageHandler *handlers.MessageHandler,
	blogHandler *handlers.BlogHandler,
	reportHandler *handlers.ReportHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	cached := middleware.CacheMiddleware(rdb, cfg.CacheTTL)

	// Public endpoints, rate-limited
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Auth
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/verify", authHandler.VerifyEmail)
	api.Post("/auth/recover", authHandler.RecoverPassword)

	// Home page stats and blog are readable without an account
	api.Get("/home", cached, reportHandler.HomeStats)
	api.Get("/blog", blogHandler.ListPosts)
	api.Get("/blog/:slug", cached, blogHandler.GetPost)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Profile
	protected.Get("/me", userHandler.GetMe)
	protected.Put("/me", userHandler.UpdateProfile)

	// Clients
	protected.Post("/clients", clientHandler.CreateClient)
	protected.Get("/clients", clientHandler.ListClients)
	protected.Get("/clients/:id", clientHandler.GetClient)
	protected.Put("/clients/:id", clientHandler.UpdateClient)
	protected.Delete("/clients/:id", clientHandler.DeleteClient)
	protected.Post("/clients/:id/:action", clientHandler.SetClientActive)

	// Mailings
	protected.Post("/mailings", mailingHandler.CreateMailing)
	protected.Get("/mailings", mailingHandler.ListMailings)
	protected.Get("/mailings/:id", cached, mailingHandler.GetMailing)
	protected.Put("/mailings/:id", mailingHandler.UpdateMailing)
	protected.Delete("/mailings/:id", mailingHandler.DeleteMailing)

	// Messages (nested under a mailing). Registered before the toggle route
	// so "messages" is not swallowed by the :action parameter.
	protected.Post("/mailings/:id/messages", messageHandler.CreateMessage)
	protected.Get("/mailings/:id/messages", messageHandler.ListMessages)
	protected.Put("/messages/:messageId", messageHandler.UpdateMessage)
	protected.Delete("/messages/:messageId", messageHandler.DeleteMessage)

	protected.Post("/mailings/:id/:action", mailingHandler.ToggleMailing)

	// Blog management
	protected.Post("/blog", blogHandler.CreatePost)
	protected.Put("/blog/:slug", blogHandler.UpdatePost)
	protected.Delete("/blog/:slug", blogHandler.DeletePost)

	// Reports
	protected.Get("/reports/deliveries", cached, reportHandler.DeliveryReport)
}
