package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"erp_backend/internal/adapters"
	"erp_backend/internal/events"
	identityrepo "erp_backend/internal/identity/repository"
	"erp_backend/internal/notification"
	"erp_backend/internal/notification/email"
	quotationrepo "erp_backend/internal/quotations/repository"
	quotationsvc "erp_backend/internal/quotations/service"
	"erp_backend/internal/scheduler"
	"erp_backend/platform/config"
	"erp_backend/platform/db"
	"erp_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	// Worker-side quotation wiring (no HTTP handlers required).
	quotesSvc := quotationsvc.New(quotationrepo.New(pool), log)
	quotesSvc.SetEventBus(eventBus)
	quotesSvc.SetCustomerReader(adapters.NewCustomerReader(identityrepo.New(pool)))

	notificationModule := notification.NewModule(newEmailSender(cfg, log), log)
	notificationModule.Subscribe(eventBus)

	worker, err := scheduler.NewWorker(cfg, quotesSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	// Sweep once at startup so overdue drafts expire without waiting a
	// full interval.
	if client, err := scheduler.NewClient(cfg); err == nil {
		if err := client.EnqueueExpirySweep(ctx, scheduler.QuotationExpirySweepPayload{SweepAt: time.Now()}); err != nil {
			log.Warn("failed to enqueue startup expiry sweep", "error", err)
		}
		_ = client.Close()
	}

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	case err := <-workerErr:
		if err != nil {
			log.Error("scheduler worker error", "error", err)
			panic("scheduler worker error: " + err.Error())
		}
	}
}

func newEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.EmailEnabled {
		log.Warn("email delivery disabled; finalize notifications will be skipped")
		return nil
	}
	return email.NewSMTPSender(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.EmailFromAddress, cfg.EmailFromName,
	)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
