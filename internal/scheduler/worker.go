package scheduler

import (
	"context"
	"fmt"
	"time"

	quotationsvc "erp_backend/internal/quotations/service"
	"erp_backend/platform/config"
	"erp_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes scheduler tasks. The expiry sweep is also registered
// as a periodic task so drafts age out without manual intervention.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	quotes    *quotationsvc.Service
	log       *logger.Logger
}

// NewWorker creates an asynq server plus periodic scheduler wired to
// the quotations service.
func NewWorker(cfg config.SchedulerConfig, quotes *quotationsvc.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	periodic := asynq.NewScheduler(opt, nil)

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		scheduler: periodic,
		mux:       mux,
		quotes:    quotes,
		log:       log,
	}

	mux.HandleFunc(TaskQuotationExpirySweep, w.handleQuotationExpirySweep)

	interval := cfg.GetExpirySweepInterval()
	if interval < time.Minute {
		interval = time.Hour
	}
	task, err := NewQuotationExpirySweepTask(QuotationExpirySweepPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := periodic.Register(fmt.Sprintf("@every %s", interval), task, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("failed to register expiry sweep: %w", err)
	}

	return w, nil
}

func (w *Worker) handleQuotationExpirySweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuotationExpirySweepPayload(task)
	if err != nil {
		return err
	}

	sweepAt := payload.SweepAt
	if sweepAt.IsZero() {
		sweepAt = time.Now()
	}

	count, err := w.quotes.ExpireDue(ctx, sweepAt)
	if err != nil {
		return err
	}

	w.log.Info("quotation expiry sweep complete", "expired", count)
	return nil
}

// Run starts the periodic scheduler and blocks processing tasks until
// the server stops.
func (w *Worker) Run() error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start periodic scheduler: %w", err)
	}
	return w.server.Run(w.mux)
}

// Shutdown stops task processing and the periodic scheduler.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.scheduler.Shutdown()
}
