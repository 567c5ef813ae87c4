package scheduler

import (
	"context"
	"fmt"

	"outreach_backend/platform/config"
	"outreach_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Recomputer is the narrow interface the worker needs from the scoring
// service.
type Recomputer interface {
	Recompute(ctx context.Context, tenantID, prospectID uuid.UUID) error
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	scoring Recomputer
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scoring Recomputer, log *logger.Logger) (*Worker, error) {
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

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		scoring: scoring,
		log:     log,
	}

	mux.HandleFunc(TaskProspectRecompute, w.handleProspectRecompute)

	return w, nil
}

func (w *Worker) handleProspectRecompute(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProspectRecomputePayload(task)
	if err != nil {
		return err
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return err
	}
	prospectID, err := uuid.Parse(payload.ProspectID)
	if err != nil {
		return err
	}

	return w.scoring.Recompute(ctx, tenantID, prospectID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("recompute worker stopped", "error", err)
	}
}
