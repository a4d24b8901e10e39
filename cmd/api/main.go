package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/x986x/CW6/internal/config"
	"github.com/x986x/CW6/internal/db"
	apphttp "github.com/x986x/CW6/internal/http"
	"github.com/x986x/CW6/internal/http/handlers"
	"github.com/x986x/CW6/internal/mail"
	"github.com/x986x/CW6/internal/repositories"
	"github.com/x986x/CW6/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	mailingRepo := repositories.NewMailingRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	logRepo := repositories.NewLogRepo(pool)
	blogRepo := repositories.NewBlogRepo(pool)

	// Outbound mail (verification and recovery emails)
	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.MailRate, log)

	// Services
	userService := services.NewUserService(userRepo, mailer, cfg, log)
	mailingService := services.NewMailingService(mailingRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, log)
	clientHandler := handlers.NewClientHandler(clientRepo, log)
	mailingHandler := handlers.NewMailingHandler(mailingService, messageRepo, log)
	messageHandler := handlers.NewMessageHandler(messageRepo, mailingService, log)
	blogHandler := handlers.NewBlogHandler(blogRepo, log)
	reportHandler := handlers.NewReportHandler(mailingRepo, clientRepo, blogRepo, logRepo, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, clientHandler, mailingHandler, messageHandler, blogHandler, reportHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
