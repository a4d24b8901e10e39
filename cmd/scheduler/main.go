package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/x986x/CW6/internal/config"
	"github.com/x986x/CW6/internal/db"
	"github.com/x986x/CW6/internal/mail"
	"github.com/x986x/CW6/internal/metrics"
	"github.com/x986x/CW6/internal/repositories"
	"github.com/x986x/CW6/internal/scheduler"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.String("tz", cfg.Timezone), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	mailingRepo := repositories.NewMailingRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	logRepo := repositories.NewLogRepo(pool)
	jobExecRepo := repositories.NewJobExecutionRepo(pool)

	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.MailRate, log)

	// Jobs
	dispatch := scheduler.NewDispatchJob(mailingRepo, messageRepo, logRepo, mailer, loc, log)
	cleanup := scheduler.NewCleanupJob(jobExecRepo, cfg.CleanupRetention, log)

	sched := scheduler.New(cfg.DispatchInterval, loc, jobExecRepo, log)
	sched.AddJob("send_mailings", scheduler.EveryTick(), dispatch.Run)
	sched.AddJob("delete_old_job_executions", scheduler.WeeklyAt(time.Monday, 0, 0), cleanup.Run)

	// Metrics endpoint
	metrics.Init()
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info("metrics server listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	sched.Start(ctx)
	log.Info("scheduler worker started", zap.String("timezone", cfg.Timezone))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down scheduler")
	sched.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
}
