package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"unistay/internal/domain"
	"unistay/internal/metrics"
	"unistay/internal/queue"
	"unistay/internal/service/dispatch"
)

// JobSource yields dispatch jobs, blocking until one arrives or ctx ends.
type JobSource interface {
	Next(ctx context.Context) (queue.DispatchJob, error)
}

type Worker struct {
	source     JobSource
	dispatcher dispatch.Service
	sweep      time.Duration
	backoff    time.Duration
	logger     *zap.Logger
}

// New builds a worker. source may be nil to run sweeps only; sweep 0
// disables the periodic full pass.
func New(source JobSource, dispatcher dispatch.Service, sweep time.Duration, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		source:     source,
		dispatcher: dispatcher,
		sweep:      sweep,
		backoff:    time.Second,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runSweeps(ctx)
	}()

	if w.source != nil {
		w.consume(ctx)
	} else {
		<-ctx.Done()
	}

	<-done
	return nil
}

func (w *Worker) consume(ctx context.Context) {
	for {
		job, err := w.source.Next(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, queue.ErrMalformedJob) {
				metrics.QueueJobsTotal.WithLabelValues("malformed").Inc()
				w.logger.Warn("skipping malformed dispatch job", zap.Error(err))
				continue
			}
			w.logger.Error("failed to read dispatch job", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.backoff):
			}
			continue
		}

		metrics.QueueJobsTotal.WithLabelValues("consumed").Inc()
		w.Handle(ctx, job)
	}
}

func (w *Worker) Handle(ctx context.Context, job queue.DispatchJob) domain.DispatchResult {
	var result domain.DispatchResult
	if job.UserID == nil {
		result = w.dispatcher.ProcessAllPending(ctx)
	} else {
		result = w.dispatcher.ProcessPendingForUser(ctx, *job.UserID)
	}

	if result.Processed > 0 {
		w.logger.Info("dispatched pending notifications",
			zap.String("job", job.Key()),
			zap.Int("processed", result.Processed),
			zap.Int("success", result.Success),
			zap.Int("failed", result.Failed),
		)
	}
	return result
}

func (w *Worker) runSweeps(ctx context.Context) {
	if w.sweep <= 0 {
		return
	}
	ticker := time.NewTicker(w.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Handle(ctx, queue.AllUsersJob())
		}
	}
}
